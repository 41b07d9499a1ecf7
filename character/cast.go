package character

import "github.com/milk9111/fpscontroller/common"

// CastContext is the snapshot handed to an ability hook. It is immutable once
// built.
type CastContext struct {
	caster    *Character
	target    common.Vec3
	position  common.Vec3
	direction common.Vec3
	hold      float64
}

// Caster is the activating character. The context does not own it.
func (c CastContext) Caster() *Character {
	return c.caster
}

func (c CastContext) Target() common.Vec3 {
	return c.target
}

func (c CastContext) Position() common.Vec3 {
	return c.position
}

// Direction is a unit vector, or zero when no direction was supplied.
func (c CastContext) Direction() common.Vec3 {
	return c.direction
}

// HoldDuration is how long, in seconds, the input was held before release.
func (c CastContext) HoldDuration() float64 {
	return c.hold
}

// CastContextBuilder accumulates the fields of a CastContext.
type CastContextBuilder struct {
	ctx CastContext
}

func NewCastContext() *CastContextBuilder {
	return &CastContextBuilder{}
}

func (b *CastContextBuilder) WithCaster(c *Character) *CastContextBuilder {
	b.ctx.caster = c
	return b
}

func (b *CastContextBuilder) WithTarget(target common.Vec3) *CastContextBuilder {
	b.ctx.target = target
	return b
}

func (b *CastContextBuilder) AtPosition(pos common.Vec3) *CastContextBuilder {
	b.ctx.position = pos
	return b
}

func (b *CastContextBuilder) InDirection(dir common.Vec3) *CastContextBuilder {
	b.ctx.direction = dir.Normalize()
	return b
}

func (b *CastContextBuilder) WithHoldDuration(seconds float64) *CastContextBuilder {
	if seconds < 0 {
		seconds = 0
	}
	b.ctx.hold = seconds
	return b
}

// Build returns the finished context. The builder may keep being used; later
// calls do not affect contexts already built.
func (b *CastContextBuilder) Build() CastContext {
	return b.ctx
}

// Targeter resolves the point an ability is aimed at from where it is cast
// and the direction it is cast in.
type Targeter interface {
	Target(origin, direction common.Vec3) common.Vec3
}

// TargeterFunc adapts a function to Targeter.
type TargeterFunc func(origin, direction common.Vec3) common.Vec3

func (f TargeterFunc) Target(origin, direction common.Vec3) common.Vec3 {
	return f(origin, direction)
}
