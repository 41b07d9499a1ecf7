package prefabs

import (
	"fmt"

	"github.com/milk9111/fpscontroller/ability"
	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/controller"
	"github.com/milk9111/fpscontroller/locomotion"
	"github.com/milk9111/fpscontroller/movement"
	"github.com/milk9111/fpscontroller/physics"
)

// DefaultCharacterSpec mirrors the runtime defaults of every subsystem.
func DefaultCharacterSpec() CharacterSpec {
	loco := locomotion.DefaultConfig()
	mov := movement.DefaultConfig()
	cam := camera.DefaultConfig()
	return CharacterSpec{
		Abilities: AbilitySpec{
			FirstCooldown:      5,
			SecondCooldown:     8,
			PassiveCooldown:    20,
			UltimateChargeRate: 2,
		},
		Capsule: CapsuleSpec{Height: 2, Radius: 0.4},
		Locomotion: LocomotionSpec{
			CrouchSpeedMultiplier:    loco.CrouchSpeedMultiplier,
			SprintSpeedMultiplier:    loco.SprintSpeedMultiplier,
			CrouchHeightMultiplier:   loco.CrouchHeightMultiplier,
			CrouchTransitionDuration: loco.CrouchTransitionDuration,
			DashForce:                loco.DashForce,
			DashDuration:             loco.DashDuration,
			DashCooldown:             loco.DashCooldown,
			DashRotationMultiplier:   loco.DashRotationMultiplier,
			StandUpMask:              loco.StandUpMask,
			StandUpClearance:         loco.StandUpClearance,
		},
		Movement: MovementSpec{
			MoveSpeed:     mov.MoveSpeed,
			Gravity:       mov.Gravity,
			JumpForce:     mov.JumpForce,
			StickVelocity: mov.StickVelocity,
		},
		Camera: CameraSpec{
			Sensitivity:    cam.Sensitivity,
			Offset:         vecToSlice(cam.BaseOffset),
			CrouchOffset:   cam.CrouchOffset,
			Smoothing:      cam.Smoothing,
			PitchLimit:     cam.PitchLimit,
			ShakeIntensity: cam.ShakeIntensity,
			ShakeDuration:  cam.ShakeDuration,
			Seed:           cam.Seed,
		},
	}
}

// Template builds the immutable character template.
func (s CharacterSpec) Template() (character.Template, error) {
	pos, err := sliceToVec(s.Stats.Position)
	if err != nil {
		return character.Template{}, fmt.Errorf("prefabs: %s stats.position: %w", s.Name, err)
	}
	stats := character.Stats{
		Name:         s.Name,
		Level:        s.Stats.Level,
		Class:        s.Stats.Class,
		Health:       s.Stats.Health,
		MaxHealth:    s.Stats.MaxHealth,
		Stamina:      s.Stats.Stamina,
		MaxStamina:   s.Stats.MaxStamina,
		Strength:     s.Stats.Strength,
		Agility:      s.Stats.Agility,
		Intelligence: s.Stats.Intelligence,
		Inventory:    s.Stats.Inventory,
		Position:     pos,
	}
	if stats.Health == 0 {
		stats.Health = stats.MaxHealth
	}
	if stats.Stamina == 0 {
		stats.Stamina = stats.MaxStamina
	}
	return character.NewTemplate(s.VariantName(), stats), nil
}

// VariantName is the registry key characters from this spec use. Scripted
// characters are keyed by their script path.
func (s CharacterSpec) VariantName() string {
	if s.Script != "" {
		return cleanScriptPath(s.Script)
	}
	return s.Variant
}

// ScriptDefinition loads the ability script of a scripted character.
func (s CharacterSpec) ScriptDefinition() (ability.Definition, error) {
	if s.Script == "" {
		return ability.Definition{}, fmt.Errorf("prefabs: %s has no script", s.Name)
	}
	src, err := LoadScript(s.Script)
	if err != nil {
		return ability.Definition{}, fmt.Errorf("prefabs: load script %s: %w", s.Script, err)
	}
	return ability.Definition{
		Name:               s.VariantName(),
		FirstCooldown:      s.Abilities.FirstCooldown,
		SecondCooldown:     s.Abilities.SecondCooldown,
		PassiveCooldown:    s.Abilities.PassiveCooldown,
		UltimateChargeRate: s.Abilities.UltimateChargeRate,
		Source:             src,
		Path:               cleanScriptPath(s.Script),
	}, nil
}

func (s CharacterSpec) LocomotionConfig() locomotion.Config {
	l := s.Locomotion
	return locomotion.Config{
		CrouchSpeedMultiplier:    l.CrouchSpeedMultiplier,
		SprintSpeedMultiplier:    l.SprintSpeedMultiplier,
		CrouchHeightMultiplier:   l.CrouchHeightMultiplier,
		CrouchTransitionDuration: l.CrouchTransitionDuration,
		DashForce:                l.DashForce,
		DashDuration:             l.DashDuration,
		DashCooldown:             l.DashCooldown,
		DashRotationMultiplier:   l.DashRotationMultiplier,
		StandUpMask:              l.StandUpMask,
		StandUpClearance:         l.StandUpClearance,
	}
}

func (s CharacterSpec) MovementConfig() movement.Config {
	return movement.Config{
		MoveSpeed:     s.Movement.MoveSpeed,
		Gravity:       s.Movement.Gravity,
		JumpForce:     s.Movement.JumpForce,
		StickVelocity: s.Movement.StickVelocity,
	}
}

func (s CharacterSpec) CameraConfig() (camera.Config, error) {
	offset, err := sliceToVec(s.Camera.Offset)
	if err != nil {
		return camera.Config{}, fmt.Errorf("prefabs: %s camera.offset: %w", s.Name, err)
	}
	return camera.Config{
		Sensitivity:    s.Camera.Sensitivity,
		BaseOffset:     offset,
		CrouchOffset:   s.Camera.CrouchOffset,
		Smoothing:      s.Camera.Smoothing,
		PitchLimit:     s.Camera.PitchLimit,
		ShakeIntensity: s.Camera.ShakeIntensity,
		ShakeDuration:  s.Camera.ShakeDuration,
		Seed:           s.Camera.Seed,
	}, nil
}

// ControllerConfig assembles the full controller configuration.
func (s CharacterSpec) ControllerConfig() (controller.Config, error) {
	cam, err := s.CameraConfig()
	if err != nil {
		return controller.Config{}, err
	}
	cfg := controller.DefaultConfig()
	cfg.Locomotion = s.LocomotionConfig()
	cfg.Movement = s.MovementConfig()
	cfg.Camera = cam
	cfg.Standing = s.StandingCapsule()
	if err := cfg.Validate(); err != nil {
		return controller.Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, s.Name, err)
	}
	return cfg, nil
}

// StandingCapsule is the full-height collision shape, centered half way up.
func (s CharacterSpec) StandingCapsule() locomotion.Capsule {
	return locomotion.Capsule{Height: s.Capsule.Height, Center: common.Vec3{Y: s.Capsule.Height / 2}}
}

// PhysicsBoxes converts level geometry for the physics world.
func (l LevelSpec) PhysicsBoxes() ([]physics.Box, error) {
	out := make([]physics.Box, 0, len(l.Boxes))
	for i, b := range l.Boxes {
		lo, err := sliceToVec(b.Min)
		if err != nil {
			return nil, fmt.Errorf("prefabs: level %s box %d min: %w", l.Name, i, err)
		}
		hi, err := sliceToVec(b.Max)
		if err != nil {
			return nil, fmt.Errorf("prefabs: level %s box %d max: %w", l.Name, i, err)
		}
		if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
			return nil, fmt.Errorf("prefabs: level %s box %d: min exceeds max", l.Name, i)
		}
		out = append(out, physics.Box{Min: lo, Max: hi, Layer: b.Layer})
	}
	return out, nil
}

// Vec2 reads an optional two-element axis.
func Vec2(v []float64) (common.Vec2, error) {
	switch len(v) {
	case 0:
		return common.Vec2{}, nil
	case 2:
		return common.Vec2{X: v[0], Y: v[1]}, nil
	default:
		return common.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(v))
	}
}

func sliceToVec(v []float64) (common.Vec3, error) {
	switch len(v) {
	case 0:
		return common.Vec3{}, nil
	case 3:
		return common.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return common.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
}

func vecToSlice(v common.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
