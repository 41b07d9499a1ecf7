package character

import "github.com/milk9111/fpscontroller/gate"

// ContextFunc builds the cast context for an accepted activation.
type ContextFunc func(caster *Character) CastContext

// Activate runs the ability in slot if its gate is ready. The gate is spent
// and the hook invoked in the same call; a rejected request changes nothing.
// The return value only serves diagnostics and tests.
func (c *Character) Activate(slot gate.Slot, build ContextFunc) bool {
	if c == nil {
		return false
	}
	if c.defeated {
		c.log.Debug("ability rejected: defeated", "slot", slot)
		return false
	}
	if !c.gates.Ready(slot) {
		g := c.gates.Gate(slot)
		c.log.Debug("ability rejected: gate not ready", "slot", slot, "gate", g.Kind(), "value", g.Value())
		return false
	}

	c.gates.Consume(slot)

	var ctx CastContext
	if build != nil {
		ctx = build(c)
	} else {
		ctx = NewCastContext().WithCaster(c).AtPosition(c.stats.Position).Build()
	}
	c.log.Debug("ability activated", "slot", slot, "hold", ctx.HoldDuration())
	c.variant.hook(slot)(ctx)
	return true
}

func (c *Character) AskForFirstSkill(build ContextFunc) bool {
	return c.Activate(gate.SlotFirst, build)
}

func (c *Character) AskForSecondSkill(build ContextFunc) bool {
	return c.Activate(gate.SlotSecond, build)
}

func (c *Character) AskForUltimate(build ContextFunc) bool {
	return c.Activate(gate.SlotUltimate, build)
}

func (c *Character) AskForPassive(build ContextFunc) bool {
	return c.Activate(gate.SlotPassive, build)
}
