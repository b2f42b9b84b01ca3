package physics

import (
	"testing"
	"time"
)

func TestUserConfigConversion(t *testing.T) {
	uc := DefaultUserConfig()
	uc.Bodies.MaxTemporary = 64
	uc.Bodies.MaxAgeSeconds = 2.5
	uc.Pickup.Radius = 4

	conf := uc.Config()
	if conf.MaxTemporary != 64 {
		t.Fatalf("MaxTemporary = %v, want 64", conf.MaxTemporary)
	}
	if want := time.Millisecond * 2500; conf.MaxAge != want {
		t.Fatalf("MaxAge = %v, want %v", conf.MaxAge, want)
	}
	if conf.PickupRadius != 4 {
		t.Fatalf("PickupRadius = %v, want 4", conf.PickupRadius)
	}
}

func TestUserConfigDefaultsMatchConfigDefaults(t *testing.T) {
	fromUser := DefaultUserConfig().Config()
	fromUser.Engine = newFakeEngine()
	base := Config{Engine: fromUser.Engine}.withDefaults()

	if fromUser.MaxTemporary != base.MaxTemporary ||
		fromUser.MaxAge != base.MaxAge ||
		fromUser.PickupRadius != base.PickupRadius ||
		fromUser.MagnetRadius != base.MagnetRadius ||
		fromUser.CollectDistance != base.CollectDistance ||
		fromUser.MagnetImpulse != base.MagnetImpulse ||
		fromUser.WakeRadius != base.WakeRadius {
		t.Fatalf("DefaultUserConfig() = %+v, differs from Config defaults %+v", fromUser, base)
	}
}
