package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTemplate = errors.New("prefabs: invalid template")

// LoadSpec decodes a prefab into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes a prefab over the values already in spec, so fields
// the file omits keep their defaults.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// CharacterSpec is an authored character template: starting stats, the
// variant that supplies its abilities and the tunables of every subsystem.
type CharacterSpec struct {
	Name string `yaml:"name" json:"name"`
	// Variant names a built-in variant. Ignored when Script is set.
	Variant string `yaml:"variant" json:"variant"`
	// Script is a tengo file under scripts/ implementing the abilities.
	Script     string         `yaml:"script,omitempty" json:"script,omitempty"`
	Abilities  AbilitySpec    `yaml:"abilities" json:"abilities"`
	Stats      StatsSpec      `yaml:"stats" json:"stats"`
	Capsule    CapsuleSpec    `yaml:"capsule" json:"capsule"`
	Locomotion LocomotionSpec `yaml:"locomotion" json:"locomotion"`
	Movement   MovementSpec   `yaml:"movement" json:"movement"`
	Camera     CameraSpec     `yaml:"camera" json:"camera"`
}

// AbilitySpec holds the gate tunables of scripted variants.
type AbilitySpec struct {
	FirstCooldown      float64 `yaml:"first_cooldown" json:"first_cooldown"`
	SecondCooldown     float64 `yaml:"second_cooldown" json:"second_cooldown"`
	PassiveCooldown    float64 `yaml:"passive_cooldown" json:"passive_cooldown"`
	UltimateChargeRate float64 `yaml:"ultimate_charge_rate" json:"ultimate_charge_rate"`
}

type StatsSpec struct {
	Level        int       `yaml:"level" json:"level"`
	Class        string    `yaml:"class" json:"class"`
	Health       int       `yaml:"health" json:"health"`
	MaxHealth    int       `yaml:"max_health" json:"max_health"`
	Stamina      int       `yaml:"stamina" json:"stamina"`
	MaxStamina   int       `yaml:"max_stamina" json:"max_stamina"`
	Strength     int       `yaml:"strength" json:"strength"`
	Agility      int       `yaml:"agility" json:"agility"`
	Intelligence int       `yaml:"intelligence" json:"intelligence"`
	Inventory    []string  `yaml:"inventory" json:"inventory"`
	Position     []float64 `yaml:"position" json:"position"`
}

type CapsuleSpec struct {
	Height float64 `yaml:"height" json:"height"`
	Radius float64 `yaml:"radius" json:"radius"`
}

type LocomotionSpec struct {
	CrouchSpeedMultiplier    float64 `yaml:"crouch_speed_multiplier" json:"crouch_speed_multiplier"`
	SprintSpeedMultiplier    float64 `yaml:"sprint_speed_multiplier" json:"sprint_speed_multiplier"`
	CrouchHeightMultiplier   float64 `yaml:"crouch_height_multiplier" json:"crouch_height_multiplier"`
	CrouchTransitionDuration float64 `yaml:"crouch_transition_duration" json:"crouch_transition_duration"`
	DashForce                float64 `yaml:"dash_force" json:"dash_force"`
	DashDuration             float64 `yaml:"dash_duration" json:"dash_duration"`
	DashCooldown             float64 `yaml:"dash_cooldown" json:"dash_cooldown"`
	DashRotationMultiplier   float64 `yaml:"dash_rotation_multiplier" json:"dash_rotation_multiplier"`
	StandUpMask              uint32  `yaml:"stand_up_mask" json:"stand_up_mask"`
	StandUpClearance         float64 `yaml:"stand_up_clearance" json:"stand_up_clearance"`
}

type MovementSpec struct {
	MoveSpeed     float64 `yaml:"move_speed" json:"move_speed"`
	Gravity       float64 `yaml:"gravity" json:"gravity"`
	JumpForce     float64 `yaml:"jump_force" json:"jump_force"`
	StickVelocity float64 `yaml:"stick_velocity" json:"stick_velocity"`
}

type CameraSpec struct {
	Sensitivity    float64   `yaml:"sensitivity" json:"sensitivity"`
	Offset         []float64 `yaml:"offset" json:"offset"`
	CrouchOffset   float64   `yaml:"crouch_offset" json:"crouch_offset"`
	Smoothing      float64   `yaml:"smoothing" json:"smoothing"`
	PitchLimit     float64   `yaml:"pitch_limit" json:"pitch_limit"`
	ShakeIntensity float64   `yaml:"shake_intensity" json:"shake_intensity"`
	ShakeDuration  float64   `yaml:"shake_duration" json:"shake_duration"`
	Seed           uint64    `yaml:"seed" json:"seed"`
}

// LoadCharacterSpec validates a character prefab against the template schema
// and decodes it over the built-in defaults.
func LoadCharacterSpec(filename string) (CharacterSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return CharacterSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseCharacterSpec(filename, data)
}

// ParseCharacterSpec is LoadCharacterSpec for bytes already in hand.
func ParseCharacterSpec(filename string, data []byte) (CharacterSpec, error) {
	if err := ValidateCharacter(data); err != nil {
		return CharacterSpec{}, fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, filename, err)
	}
	spec := DefaultCharacterSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return CharacterSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if spec.Variant == "" && spec.Script == "" {
		return CharacterSpec{}, fmt.Errorf("%w: %s: variant or script is required", ErrInvalidTemplate, filename)
	}
	return spec, nil
}

// LevelSpec is static geometry for the reference physics world.
type LevelSpec struct {
	Name  string    `yaml:"name"`
	Boxes []BoxSpec `yaml:"boxes"`
}

type BoxSpec struct {
	Min   []float64 `yaml:"min"`
	Max   []float64 `yaml:"max"`
	Layer uint32    `yaml:"layer"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	return LoadSpec[LevelSpec](filename)
}

// ScenarioSpec drives a headless run: a character and level plus a list of
// input steps, each held for a number of seconds.
type ScenarioSpec struct {
	Name      string     `yaml:"name"`
	Character string     `yaml:"character"`
	Level     string     `yaml:"level"`
	TickRate  float64    `yaml:"tick_rate"`
	Steps     []StepSpec `yaml:"steps"`
}

type StepSpec struct {
	Seconds float64   `yaml:"seconds"`
	Move    []float64 `yaml:"move"`
	Look    []float64 `yaml:"look"`
	Hold    []string  `yaml:"hold"`
	// Damage is applied once at the start of the step.
	Damage int    `yaml:"damage"`
	Note   string `yaml:"note"`
}

func LoadScenarioSpec(filename string) (ScenarioSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return ScenarioSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseScenarioSpec(filename, data)
}

// ParseScenarioSpec decodes a scenario. The tick rate defaults to 60 Hz.
func ParseScenarioSpec(filename string, data []byte) (ScenarioSpec, error) {
	spec := ScenarioSpec{TickRate: 60}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ScenarioSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if spec.TickRate <= 0 {
		return ScenarioSpec{}, fmt.Errorf("prefabs: %s: tick_rate must be positive", filename)
	}
	if spec.Character == "" {
		return ScenarioSpec{}, fmt.Errorf("prefabs: %s: character is required", filename)
	}
	return spec, nil
}
