package locomotion

import (
	"fmt"

	"github.com/milk9111/fpscontroller/common"
)

// AllLayers matches every collision layer.
const AllLayers = ^uint32(0)

// Config holds the locomotion tunables of one character.
type Config struct {
	CrouchSpeedMultiplier    float64
	SprintSpeedMultiplier    float64
	CrouchHeightMultiplier   float64
	CrouchTransitionDuration float64

	DashForce              float64
	DashDuration           float64
	DashCooldown           float64
	DashRotationMultiplier float64

	// StandUpMask selects the layers that can block standing up.
	StandUpMask uint32
	// StandUpClearance is added to the probe distance.
	StandUpClearance float64
}

func DefaultConfig() Config {
	return Config{
		CrouchSpeedMultiplier:    0.5,
		SprintSpeedMultiplier:    1.5,
		CrouchHeightMultiplier:   0.5,
		CrouchTransitionDuration: 0.2,
		DashForce:                20,
		DashDuration:             0.3,
		DashCooldown:             2,
		DashRotationMultiplier:   0.3,
		StandUpMask:              AllLayers,
		StandUpClearance:         0.1,
	}
}

func (c Config) Validate() error {
	switch {
	case c.CrouchSpeedMultiplier < 0 || c.SprintSpeedMultiplier < 0:
		return fmt.Errorf("locomotion: speed multipliers must be non-negative")
	case c.CrouchHeightMultiplier <= 0 || c.CrouchHeightMultiplier > 1:
		return fmt.Errorf("locomotion: crouch height multiplier must be in (0,1], got %v", c.CrouchHeightMultiplier)
	case c.CrouchTransitionDuration < 0:
		return fmt.Errorf("locomotion: crouch transition duration must be non-negative")
	case c.DashDuration <= 0:
		return fmt.Errorf("locomotion: dash duration must be positive, got %v", c.DashDuration)
	case c.DashCooldown < 0:
		return fmt.Errorf("locomotion: dash cooldown must be non-negative")
	case c.DashRotationMultiplier < 0:
		return fmt.Errorf("locomotion: dash rotation multiplier must be non-negative")
	}
	return nil
}

// Capsule is the character collision shape: total height and center offset
// from the feet.
type Capsule struct {
	Height float64
	Center common.Vec3
}

func (c Capsule) lerp(to Capsule, t float64) Capsule {
	return Capsule{
		Height: common.Lerp(c.Height, to.Height, t),
		Center: c.Center.Lerp(to.Center, t),
	}
}
