package physics

import (
	"iter"

	"github.com/dm-vev/rubble/item"
	"github.com/go-gl/mathgl/mgl64"
)

// Collector is an agent able to pick up loose block bodies: anything that
// has a world position and can receive items.
type Collector interface {
	// Position returns the current world position of the collector.
	Position() mgl64.Vec3
	// Collect offers the stack passed to the collector. Collect reports
	// whether the stack ended up retained in a container; if not, the item
	// representation is destroyed.
	Collect(s item.Stack) bool
}

// AgentSource enumerates the collectors currently present in the world. The
// pickup scan calls it once per body per tick; iteration order decides the
// tie-break between equidistant collectors.
type AgentSource interface {
	Collectors() iter.Seq[Collector]
}

// AgentSourceFunc wraps a function to implement AgentSource.
type AgentSourceFunc func() iter.Seq[Collector]

// Collectors calls the wrapped function.
func (f AgentSourceFunc) Collectors() iter.Seq[Collector] {
	return f()
}

// SoundPlayer plays fire-and-forget sound cues by identifier.
type SoundPlayer interface {
	PlaySound(name string)
}

// SoundPlayerFunc wraps a function to implement SoundPlayer.
type SoundPlayerFunc func(name string)

// PlaySound calls the wrapped function.
func (f SoundPlayerFunc) PlaySound(name string) {
	f(name)
}

// SoundLoot is the sound cue fired when a body is collected by an agent.
const SoundLoot = "rubble:loot"

// nopAgentSource is the AgentSource used when none is configured.
type nopAgentSource struct{}

func (nopAgentSource) Collectors() iter.Seq[Collector] {
	return func(func(Collector) bool) {}
}

// nopSoundPlayer is the SoundPlayer used when none is configured.
type nopSoundPlayer struct{}

func (nopSoundPlayer) PlaySound(string) {}
