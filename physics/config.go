package physics

import (
	"log/slog"
	"time"

	"github.com/dm-vev/rubble/block"
	"github.com/dm-vev/rubble/world"
)

// Config holds the collaborators and tunable parameters of a Simulation.
// Engine is the only field that must be set; sensible defaults are applied
// to everything else.
type Config struct {
	// Log is the Logger used for warnings such as contained engine faults.
	// If nil, Log is set to slog.Default().
	Log *slog.Logger
	// Engine is the rigid-body simulator driven by the Simulation. Engine
	// must not be nil.
	Engine Engine
	// Blocks is the registry answering block-type metadata such as mass and
	// translucency. If nil, an empty registry is used, so every type answers
	// the unknown-type defaults.
	Blocks *block.Registry
	// Handles resolves voxel positions hit by rays to stable entity handles,
	// creating them on demand. If nil, an in-memory registry is used.
	Handles *world.Handles
	// Agents enumerates the collectors considered by the pickup scan. If
	// nil, no body is ever picked up.
	Agents AgentSource
	// Sound plays the loot cue when a body is collected. If nil, cues are
	// dropped.
	Sound SoundPlayer
	// Now returns the current time, used to age bodies. If nil, time.Now is
	// used.
	Now func() time.Time

	// MaxTemporary is the registry size above which temporary bodies are
	// evicted. Defaults to 128.
	MaxTemporary int
	// MaxAge is the age above which temporary bodies are evicted. Defaults
	// to 10 seconds.
	MaxAge time.Duration
	// PickupRadius is the distance below which the nearest agent claims an
	// eligible body. Defaults to 8.
	PickupRadius float64
	// MagnetRadius is the distance below which a claimed body homes in on
	// the nearest agent. Defaults to 32.
	MagnetRadius float64
	// CollectDistance is the distance at or below which a claimed body is
	// collected. Defaults to 1.
	CollectDistance float64
	// MagnetImpulse is the magnitude of the central impulse pulling a
	// claimed body towards the nearest agent. Defaults to 16000.
	MagnetImpulse float64
	// WakeRadius is the half-size of the volume around a changed voxel in
	// which resting bodies are woken. Defaults to 0.6.
	WakeRadius float64
}

func (conf Config) withDefaults() Config {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Blocks == nil {
		conf.Blocks = block.NewRegistry()
	}
	if conf.Handles == nil {
		conf.Handles = world.NewHandles()
	}
	if conf.Agents == nil {
		conf.Agents = nopAgentSource{}
	}
	if conf.Sound == nil {
		conf.Sound = nopSoundPlayer{}
	}
	if conf.Now == nil {
		conf.Now = time.Now
	}
	if conf.MaxTemporary <= 0 {
		conf.MaxTemporary = 128
	}
	if conf.MaxAge <= 0 {
		conf.MaxAge = time.Second * 10
	}
	if conf.PickupRadius <= 0 {
		conf.PickupRadius = 8
	}
	if conf.MagnetRadius <= 0 {
		conf.MagnetRadius = 32
	}
	if conf.CollectDistance <= 0 {
		conf.CollectDistance = 1
	}
	if conf.MagnetImpulse <= 0 {
		conf.MagnetImpulse = 16000
	}
	if conf.WakeRadius <= 0 {
		conf.WakeRadius = 0.6
	}
	return conf
}

// New creates a Simulation using the Config. New panics if Engine is nil.
func (conf Config) New() *Simulation {
	if conf.Engine == nil {
		panic("physics.Config: Engine must not be nil")
	}
	conf = conf.withDefaults()
	return &Simulation{
		conf:    conf,
		byState: make(map[*BodyState]*Body),
		metrics: &Metrics{},
	}
}
