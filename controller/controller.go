// Package controller is the input-facing façade of one playable character.
// Input calls only record intent or flip locomotion flags; Tick does the
// work in a fixed order.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/gate"
	"github.com/milk9111/fpscontroller/locomotion"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/movement"
)

var (
	ErrNoCharacter = errors.New("controller: character is required")
	ErrNoExecutor  = errors.New("controller: movement executor is required")
)

type Config struct {
	Locomotion locomotion.Config
	Movement   movement.Config
	Camera     camera.Config
	Standing   locomotion.Capsule
	// DashDeadzone is the move-axis length below which a dash goes straight
	// ahead.
	DashDeadzone float64
}

func DefaultConfig() Config {
	return Config{
		Locomotion:   locomotion.DefaultConfig(),
		Movement:     movement.DefaultConfig(),
		Camera:       camera.DefaultConfig(),
		Standing:     locomotion.Capsule{Height: 2, Center: common.Vec3{Y: 1}},
		DashDeadzone: 0.1,
	}
}

func (c Config) Validate() error {
	if err := c.Locomotion.Validate(); err != nil {
		return err
	}
	if err := c.Movement.Validate(); err != nil {
		return err
	}
	if err := c.Camera.Validate(); err != nil {
		return err
	}
	if c.Standing.Height <= 0 {
		return fmt.Errorf("controller: standing height must be positive, got %v", c.Standing.Height)
	}
	return nil
}

// Deps are the collaborators of a controller. Probe and Targeter are
// optional: without a probe standing up is never blocked, without a
// targeter casts aim at the zero vector.
type Deps struct {
	Character *character.Character
	Executor  movement.Executor
	Probe     locomotion.Probe
	Targeter  character.Targeter
	Logger    *slog.Logger
}

type held struct {
	sprint bool
	crouch bool
}

type Controller struct {
	cfg        Config
	char       *character.Character
	exec       movement.Executor
	machine    *locomotion.Machine
	integrator *movement.Integrator
	rig        *camera.Rig
	targeter   character.Targeter
	log        *slog.Logger

	yaw  float64
	move common.Vec2
	look common.Vec2
	held held
}

func New(cfg Config, deps Deps) (*Controller, error) {
	if deps.Character == nil {
		return nil, ErrNoCharacter
	}
	if deps.Executor == nil {
		return nil, ErrNoExecutor
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:      cfg,
		char:     deps.Character,
		exec:     deps.Executor,
		rig:      camera.NewRig(cfg.Camera),
		targeter: deps.Targeter,
		log:      logger.Or(deps.Logger).With("character", deps.Character.Name()),
	}
	c.machine = locomotion.New(cfg.Locomotion, cfg.Standing, deps.Probe, locomotion.Hooks{
		Position:      c.exec.Position,
		DashDirection: func() common.Vec3 { return c.dashDirection(c.move) },
	}, c.log)
	c.integrator = movement.NewIntegrator(cfg.Movement, c.exec, c.machine)
	c.integrator.SyncCapsule()
	c.machine.SetGrounded(c.exec.Grounded())
	c.char.SetPosition(c.exec.Position())
	return c, nil
}

// HandleMovement records the move axis for the next tick and reconciles the
// held sprint and crouch buttons with the locomotion machine on edges.
func (c *Controller) HandleMovement(axis common.Vec2, sprint, crouch bool) {
	if c == nil {
		return
	}
	c.move = axis
	if sprint != c.held.sprint {
		c.held.sprint = sprint
		if sprint {
			c.machine.StartSprint()
		} else {
			c.machine.StopSprint()
		}
	}
	if crouch != c.held.crouch {
		c.held.crouch = crouch
		if crouch {
			c.machine.StartCrouch()
		} else {
			c.machine.StopCrouch()
		}
	}
}

// HandleRotation records the look axis for the next tick.
func (c *Controller) HandleRotation(axis common.Vec2) {
	if c == nil {
		return
	}
	c.look = axis
}

func (c *Controller) Jump() {
	if c == nil {
		return
	}
	if !c.integrator.Jump() {
		c.log.Debug("jump rejected: airborne")
	}
}

func (c *Controller) StartCrouch() {
	if c == nil {
		return
	}
	c.held.crouch = true
	c.machine.StartCrouch()
}

func (c *Controller) StopCrouch() {
	if c == nil {
		return
	}
	c.held.crouch = false
	c.machine.StopCrouch()
}

func (c *Controller) StartSprint() {
	if c == nil {
		return
	}
	c.held.sprint = true
	c.machine.StartSprint()
}

func (c *Controller) StopSprint() {
	if c == nil {
		return
	}
	c.held.sprint = false
	c.machine.StopSprint()
}

// PerformDash dashes along the move axis in body space, or straight ahead
// when the axis is inside the deadzone.
func (c *Controller) PerformDash(axis common.Vec2) {
	if c == nil {
		return
	}
	c.machine.Dash(c.dashDirection(axis))
}

func (c *Controller) AskForFirstSkill(hold float64) {
	c.ask(gate.SlotFirst, hold)
}

func (c *Controller) AskForSecondSkill(hold float64) {
	c.ask(gate.SlotSecond, hold)
}

func (c *Controller) AskForUltimate(hold float64) {
	c.ask(gate.SlotUltimate, hold)
}

func (c *Controller) AskForPassive(hold float64) {
	c.ask(gate.SlotPassive, hold)
}

func (c *Controller) ask(slot gate.Slot, hold float64) {
	if c == nil {
		return
	}
	c.char.Activate(slot, func(caster *character.Character) character.CastContext {
		return c.castContext(caster, hold)
	})
}

// castContext is only called once the gate has been spent.
func (c *Controller) castContext(caster *character.Character, hold float64) character.CastContext {
	pos := c.exec.Position()
	forward, _ := common.YawBasis(c.yaw)
	b := character.NewCastContext().
		WithCaster(caster).
		AtPosition(pos).
		InDirection(forward).
		WithHoldDuration(hold)
	if c.targeter != nil {
		b.WithTarget(c.targeter.Target(c.EyePosition(), c.LookDirection()))
	}
	return b.Build()
}

// Tick advances the character by dt seconds: look, movement, locomotion
// timers, collision shape, ability gates, then the camera.
func (c *Controller) Tick(dt float64) {
	if c == nil || dt <= 0 {
		return
	}
	c.yaw = wrapDegrees(c.yaw + c.rig.Look(c.look, c.machine, dt))

	c.integrator.Step(c.move, c.yaw, dt)
	c.char.SetPosition(c.exec.Position())

	c.machine.Advance(dt)
	c.integrator.SyncCapsule()

	c.char.Tick(dt)
	c.rig.Update(c.machine, dt)
}

// TakeDamage forwards to the character.
func (c *Controller) TakeDamage(amount int) {
	if c == nil {
		return
	}
	c.char.TakeDamage(amount)
}

func (c *Controller) dashDirection(axis common.Vec2) common.Vec3 {
	forward, right := common.YawBasis(c.yaw)
	if axis.Length() <= c.cfg.DashDeadzone {
		return forward
	}
	return forward.Scale(axis.Y).Add(right.Scale(axis.X)).Normalize()
}

// EyePosition is the camera position in world space.
func (c *Controller) EyePosition() common.Vec3 {
	if c == nil {
		return common.Vec3{}
	}
	return c.exec.Position().Add(c.rig.Offset())
}

// LookDirection is the unit view direction including pitch. Positive pitch
// looks down.
func (c *Controller) LookDirection() common.Vec3 {
	if c == nil {
		return common.Forward3
	}
	forward, _ := common.YawBasis(c.yaw)
	p := c.rig.Pitch() * math.Pi / 180
	return forward.Scale(math.Cos(p)).Add(common.Up.Scale(-math.Sin(p))).Normalize()
}

func wrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
