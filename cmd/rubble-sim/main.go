// Command rubble-sim runs a self-contained demonstration of the loose-block
// physics subsystem: a flat voxel world, a handful of debris bursts, a loot
// drop and one agent walking in to collect it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/dm-vev/rubble/block"
	"github.com/dm-vev/rubble/cube"
	"github.com/dm-vev/rubble/item"
	"github.com/dm-vev/rubble/physics"
	"github.com/dm-vev/rubble/physics/boxsim"
	"github.com/dm-vev/rubble/world"
	"github.com/dm-vev/rubble/world/handledb"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml"
)

func main() {
	log := slog.Default()
	if err := run(log); err != nil {
		log.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	configPath := flag.String("config", "rubble.toml", "path to the TOML configuration file")
	dataDir := flag.String("data", "rubble-data", "directory for the block-entity handle database")
	duration := flag.Duration("duration", time.Second*15, "how long to run the simulation")
	flag.Parse()

	uc, err := readConfig(*configPath)
	if err != nil {
		return err
	}

	blocks := block.NewRegistry()
	stone := blocks.Register(block.Properties{Name: "stone", Mass: 3})
	dirt := blocks.Register(block.Properties{Name: "dirt", Mass: 1.5})
	glass := blocks.Register(block.Properties{Name: "glass", Mass: 1, Translucent: true})

	src := flatWorld{surface: 0, block: stone}
	engine := boxsim.Config{Log: log, World: src}.New()

	db, err := handledb.Open(*dataDir)
	if err != nil {
		return err
	}
	defer db.Close()
	handles, err := world.LoadHandles(db)
	if err != nil {
		return err
	}

	walker := &agent{pos: mgl64.Vec3{20, 1, 0}, speed: 4, log: log}

	conf := uc.Config()
	conf.Log = log
	conf.Engine = engine
	conf.Blocks = blocks
	conf.Handles = handles
	conf.Agents = physics.AgentSourceFunc(func() iter.Seq[physics.Collector] {
		return func(yield func(physics.Collector) bool) {
			yield(walker)
		}
	})
	conf.Sound = physics.SoundPlayerFunc(func(name string) {
		log.Info("sound cue", "name", name)
	})
	sim := conf.New()

	// A loot drop the walker will collect, plus debris kicked up around it.
	if _, ok := sim.SpawnLootable(mgl64.Vec3{0, 3, 0}, dirt); !ok {
		return errors.New("loot body rejected")
	}
	if _, ok := sim.SpawnLootable(mgl64.Vec3{0, 3, 0}, glass); ok {
		return errors.New("translucent loot body not rejected")
	}
	for range 160 {
		impulse := mgl64.Vec3{rand.Float64()*40 - 20, rand.Float64() * 60, rand.Float64()*40 - 20}
		pos := mgl64.Vec3{rand.Float64()*8 - 4, 2 + rand.Float64()*2, rand.Float64()*8 - 4}
		sim.CreateTemporaryWithImpulse(pos, stone, impulse, physics.Half)
	}

	ticker := physics.NewTicker(sim, time.Second/20)
	defer ticker.Close()

	deadline := time.Now().Add(*duration)
	for time.Now().Before(deadline) {
		time.Sleep(time.Second / 20)
		walker.moveToward(mgl64.Vec3{0, 1, 0}, 1.0/20)

		// Mimic a world edit next to the debris so resting bodies wake up.
		if rand.IntN(40) == 0 {
			sim.BlockChanged(cube.Pos{rand.IntN(8) - 4, 0, rand.IntN(8) - 4})
		}
	}

	if hit, ok := sim.RayTrace(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, 32); ok {
		log.Info("ray hit", "entity", hit.Entity, "pos", fmt.Sprintf("%.2f", hit.Position), "body", hit.Body != nil)
	}

	count := 0
	for range sim.Render() {
		count++
	}
	m := sim.Metrics().Snapshot()
	log.Info("simulation finished",
		"tps", fmt.Sprintf("%.1f", ticker.TPS()),
		"bodies", count,
		"admitted", m.Admitted,
		"evicted", m.Evicted,
		"collected", m.Collected,
		"rejected", m.Rejected,
		"handles", handles.Len(),
	)
	return nil
}

// readConfig reads the UserConfig at the path passed, writing out a default
// configuration file if none exists yet.
func readConfig(path string) (physics.UserConfig, error) {
	c := physics.DefaultUserConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// flatWorld is a Source with solid ground at and below a fixed height.
type flatWorld struct {
	surface int
	block   block.Type
}

func (f flatWorld) Solid(pos cube.Pos) bool {
	return pos.Y() <= f.surface
}

func (f flatWorld) Block(pos cube.Pos) block.Type {
	if pos.Y() <= f.surface {
		return f.block
	}
	return 0
}

// agent is a scripted collector walking toward a target position. The
// position is locked: the pickup scan reads it from the tick goroutine.
type agent struct {
	mu    sync.Mutex
	pos   mgl64.Vec3
	speed float64
	log   *slog.Logger
}

func (a *agent) Position() mgl64.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

func (a *agent) Collect(s item.Stack) bool {
	a.log.Info("collected stack", "family", s.Family(), "count", s.Count())
	return true
}

func (a *agent) moveToward(target mgl64.Vec3, dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delta := target.Sub(a.pos)
	if dist := delta.Len(); dist > a.speed*dt {
		a.pos = a.pos.Add(delta.Mul(a.speed * dt / dist))
	} else {
		a.pos = target
	}
}
