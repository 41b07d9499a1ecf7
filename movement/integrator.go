package movement

import (
	"fmt"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/locomotion"
)

type Config struct {
	MoveSpeed float64
	Gravity   float64
	JumpForce float64
	// StickVelocity replaces a downward vertical velocity while grounded so
	// the body keeps contact on slopes and steps.
	StickVelocity float64
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:     10,
		Gravity:       -30,
		JumpForce:     10,
		StickVelocity: -2,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MoveSpeed < 0:
		return fmt.Errorf("movement: move speed must be non-negative, got %v", c.MoveSpeed)
	case c.Gravity > 0:
		return fmt.Errorf("movement: gravity must point down, got %v", c.Gravity)
	case c.JumpForce < 0:
		return fmt.Errorf("movement: jump force must be non-negative, got %v", c.JumpForce)
	case c.StickVelocity > 0:
		return fmt.Errorf("movement: stick velocity must be non-positive, got %v", c.StickVelocity)
	}
	return nil
}

// Integrator composes horizontal and vertical velocity for one body. The
// vertical velocity lives on the locomotion machine so observers see it.
type Integrator struct {
	cfg     Config
	exec    Executor
	machine *locomotion.Machine
}

func NewIntegrator(cfg Config, exec Executor, machine *locomotion.Machine) *Integrator {
	return &Integrator{cfg: cfg, exec: exec, machine: machine}
}

func (in *Integrator) Config() Config {
	return in.cfg
}

// Jump launches the body when it is on the ground. Airborne requests are
// dropped.
func (in *Integrator) Jump() bool {
	if in == nil || in.exec == nil || !in.exec.Grounded() {
		return false
	}
	in.machine.SetVerticalVelocity(in.cfg.JumpForce)
	in.machine.SetGrounded(false)
	return true
}

// Horizontal is the input-driven horizontal velocity for the given move axis
// and body yaw. The axis is clamped to unit length.
func (in *Integrator) Horizontal(axis common.Vec2, yawDeg float64) common.Vec3 {
	if in == nil {
		return common.Vec3{}
	}
	axis = axis.Clamp(1)
	forward, right := common.YawBasis(yawDeg)
	move := forward.Scale(axis.Y).Add(right.Scale(axis.X))
	return move.Scale(in.cfg.MoveSpeed * in.machine.SpeedMultiplier())
}

// Step integrates one tick and submits the displacement to the executor.
// While dashing the dash velocity replaces the input; gravity applies either
// way. It returns the submitted displacement.
func (in *Integrator) Step(axis common.Vec2, yawDeg, dt float64) common.Vec3 {
	if in == nil || in.exec == nil || dt <= 0 {
		return common.Vec3{}
	}

	grounded := in.exec.Grounded()

	var horizontal common.Vec3
	if in.machine.Dashing() {
		horizontal = in.machine.DashVelocity()
	} else {
		horizontal = in.Horizontal(axis, yawDeg)
	}

	v := in.machine.VerticalVelocity()
	if grounded && v < 0 {
		v = in.cfg.StickVelocity
	}
	v += in.cfg.Gravity * dt
	in.machine.SetVerticalVelocity(v)

	delta := horizontal.Add(common.Up.Scale(v)).Scale(dt)
	in.exec.Move(delta)
	in.machine.SetGrounded(in.exec.Grounded())
	return delta
}

// SyncCapsule pushes the machine's current collision shape to the executor.
func (in *Integrator) SyncCapsule() {
	if in == nil || in.exec == nil {
		return
	}
	c := in.machine.Capsule()
	in.exec.SetCapsule(c.Height, c.Center)
}
