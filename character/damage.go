package character

// TakeDamage subtracts amount from health, clamped to [0, max health]. The
// instant health reaches zero the character is defeated and the death hook
// fires; once defeated further calls do nothing.
func (c *Character) TakeDamage(amount int) {
	if c == nil || c.defeated {
		return
	}

	c.stats.Health = clampInt(c.stats.Health-amount, 0, c.stats.MaxHealth)
	c.stats.Alive = c.stats.Health > 0
	c.log.Info("took damage", "amount", amount, "health", c.stats.Health)

	// Defeat is latched before any hook runs, so a damaged hook that deals
	// more damage cannot fire the death hook a second time.
	killed := c.stats.Health == 0
	if killed {
		c.defeated = true
	}

	if c.variant.OnDamaged != nil {
		c.variant.OnDamaged(c, amount)
	}

	if !killed {
		return
	}
	c.log.Info("character defeated")
	if c.variant.OnDeath != nil {
		c.variant.OnDeath(c)
	}
}
