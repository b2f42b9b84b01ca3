package physics

import "time"

// UserConfig is the representation of the tunable Config parameters as they
// appear in a TOML configuration file. Collaborators such as the engine and
// the block registry cannot be expressed in a file and are set on the Config
// returned by UserConfig.Config.
type UserConfig struct {
	Bodies struct {
		// MaxTemporary is the registry size above which temporary bodies
		// are evicted.
		MaxTemporary int
		// MaxAgeSeconds is the age in seconds above which temporary bodies
		// are evicted.
		MaxAgeSeconds float64
	}
	Pickup struct {
		// Radius is the distance below which the nearest agent claims an
		// eligible body.
		Radius float64
		// MagnetRadius is the distance below which a claimed body homes in
		// on the nearest agent.
		MagnetRadius float64
		// CollectDistance is the distance at or below which a claimed body
		// is collected.
		CollectDistance float64
		// Impulse is the magnitude of the homing impulse.
		Impulse float64
	}
	World struct {
		// WakeRadius is the half-size of the volume around a changed voxel
		// in which resting bodies are woken.
		WakeRadius float64
	}
}

// DefaultUserConfig returns a UserConfig with the default values filled out.
func DefaultUserConfig() UserConfig {
	c := UserConfig{}
	c.Bodies.MaxTemporary = 128
	c.Bodies.MaxAgeSeconds = 10
	c.Pickup.Radius = 8
	c.Pickup.MagnetRadius = 32
	c.Pickup.CollectDistance = 1
	c.Pickup.Impulse = 16000
	c.World.WakeRadius = 0.6
	return c
}

// Config converts the UserConfig to a Config. The caller must still set the
// Engine and any collaborators before calling Config.New.
func (uc UserConfig) Config() Config {
	return Config{
		MaxTemporary:    uc.Bodies.MaxTemporary,
		MaxAge:          time.Duration(uc.Bodies.MaxAgeSeconds * float64(time.Second)),
		PickupRadius:    uc.Pickup.Radius,
		MagnetRadius:    uc.Pickup.MagnetRadius,
		CollectDistance: uc.Pickup.CollectDistance,
		MagnetImpulse:   uc.Pickup.Impulse,
		WakeRadius:      uc.World.WakeRadius,
	}
}
