// Package locomotion is the movement-mode state machine of a character:
// sprint and crouch intents, the dash override with its cooldown, and the
// crouch height transition.
package locomotion

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/logger"
)

// Mode is the vertical contact mode.
type Mode uint8

const (
	Grounded Mode = iota
	Airborne
)

func (m Mode) String() string {
	if m == Airborne {
		return "airborne"
	}
	return "grounded"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "grounded":
		*m = Grounded
	case "airborne":
		*m = Airborne
	default:
		return fmt.Errorf("locomotion: unknown mode %q", b)
	}
	return nil
}

//go:generate mockgen -destination=mock/mock_probe.go -package=locomotionmock github.com/milk9111/fpscontroller/locomotion Probe

// Probe reports whether blocking geometry intersects a ray. It is used only
// to decide whether a crouched character can stand.
type Probe interface {
	Blocked(origin, direction common.Vec3, distance float64, mask uint32) bool
}

// Hooks connect the machine to the body it drives. The machine never holds
// the body itself.
type Hooks struct {
	// Position returns the feet position of the body.
	Position func() common.Vec3
	// DashDirection returns the world direction used when a dash is
	// triggered by conflicting sprint and crouch requests.
	DashDirection func() common.Vec3
}

type dashState struct {
	active    bool
	elapsed   float64
	direction common.Vec3
}

type crouchTween struct {
	active  bool
	elapsed float64
	from    Capsule
	to      Capsule
}

// Machine tracks one character's locomotion state. All methods must be
// called from that character's tick.
type Machine struct {
	cfg   Config
	probe Probe
	hooks Hooks
	log   *slog.Logger

	now  float64
	mode Mode

	sprinting bool
	crouching bool

	verticalVelocity float64

	lastDashTime float64
	dash         dashState

	standing Capsule
	capsule  Capsule
	tween    crouchTween

	dashCurve   common.Curve
	crouchCurve common.Curve
}

// New returns an idle, grounded machine standing at the given capsule size.
func New(cfg Config, standing Capsule, probe Probe, hooks Hooks, log *slog.Logger) *Machine {
	return &Machine{
		cfg:          cfg,
		probe:        probe,
		hooks:        hooks,
		log:          logger.Or(log),
		lastDashTime: math.Inf(-1),
		standing:     standing,
		capsule:      standing,
		dashCurve:    common.EaseInOut(1, 0),
		crouchCurve:  common.EaseInOut(0, 1),
	}
}

func (m *Machine) Config() Config {
	return m.cfg
}

func (m *Machine) Sprinting() bool {
	return m != nil && m.sprinting
}

func (m *Machine) Crouching() bool {
	return m != nil && m.crouching
}

func (m *Machine) Dashing() bool {
	return m != nil && m.dash.active
}

func (m *Machine) Mode() Mode {
	if m == nil {
		return Grounded
	}
	return m.mode
}

// Now is the machine clock: total seconds advanced so far.
func (m *Machine) Now() float64 {
	if m == nil {
		return 0
	}
	return m.now
}

func (m *Machine) LastDashTime() float64 {
	if m == nil {
		return math.Inf(-1)
	}
	return m.lastDashTime
}

// Capsule is the current, possibly mid-transition, collision shape.
func (m *Machine) Capsule() Capsule {
	if m == nil {
		return Capsule{}
	}
	return m.capsule
}

func (m *Machine) StandingCapsule() Capsule {
	if m == nil {
		return Capsule{}
	}
	return m.standing
}

// CrouchTransitioning reports whether a height transition is in flight.
func (m *Machine) CrouchTransitioning() bool {
	return m != nil && m.tween.active
}

func (m *Machine) VerticalVelocity() float64 {
	if m == nil {
		return 0
	}
	return m.verticalVelocity
}

func (m *Machine) SetVerticalVelocity(v float64) {
	if m == nil {
		return
	}
	m.verticalVelocity = v
}

// SetGrounded records the contact state reported by the movement executor.
func (m *Machine) SetGrounded(grounded bool) {
	if m == nil {
		return
	}
	if grounded {
		m.mode = Grounded
	} else {
		m.mode = Airborne
	}
}
