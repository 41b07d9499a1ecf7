package character

// HugoName is the registry key of the built-in example variant.
const HugoName = "hugo"

// Hugo is the example variant shipped with the controller. Its abilities have
// no gameplay body; they only report that they fired.
func Hugo() *Variant {
	return &Variant{
		Name:               HugoName,
		FirstCooldown:      100,
		SecondCooldown:     100,
		PassiveCooldown:    100,
		UltimateChargeRate: 100,
		OnFirstSkill:       logHook("first skill"),
		OnSecondSkill:      logHook("second skill"),
		OnUltimate:         logHook("ultimate"),
		OnPassive:          logHook("passive"),
		OnSpawn: func(c *Character) {
			c.Logger().Info("hugo is ready for battle")
		},
		OnDamaged: func(c *Character, amount int) {
			c.Logger().Debug("hugo grunts loudly", "amount", amount)
		},
		OnDeath: func(c *Character) {
			c.Logger().Info("hugo falls and drops his sword")
		},
	}
}

func logHook(name string) Hook {
	return func(ctx CastContext) {
		ctx.Caster().Logger().Info(name+" cast", "hold", ctx.HoldDuration(), "target", ctx.Target())
	}
}

// DefaultRegistry returns a registry holding the built-in variants.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(HugoName, func() (*Variant, error) { return Hugo(), nil })
	return r
}
