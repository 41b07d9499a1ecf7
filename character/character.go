// Package character owns per-character combat state: stats, the four ability
// gates, damage and defeat, and dispatch of ability hooks.
package character

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/gate"
	"github.com/milk9111/fpscontroller/logger"
)

// Character is a spawned runtime instance. It is owned by a single controller
// and must only be mutated from that controller's tick.
type Character struct {
	stats    Stats
	gates    gate.Set
	variant  *Variant
	defeated bool
	log      *slog.Logger
}

// Spawn creates a character from a private copy of the template. A nil or
// invalid variant is a configuration error.
func Spawn(t Template, v *Variant, log *slog.Logger) (*Character, error) {
	if v == nil {
		return nil, fmt.Errorf("spawn %q: %w", t.Name(), ErrNoVariant)
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("spawn %q: %w", t.Name(), err)
	}

	stats := t.Stats()
	stats.normalize()

	c := &Character{
		stats:    stats,
		gates:    gate.NewSet(v.gateDefaults()),
		variant:  v,
		defeated: !stats.Alive,
		log:      logger.Or(log).With("character", stats.Name, "variant", v.Name),
	}
	c.gates.Restore(stats.Resources)

	c.log.Info("character spawned", "health", stats.Health, "max_health", stats.MaxHealth)
	if v.OnSpawn != nil {
		v.OnSpawn(c)
	}
	return c, nil
}

func (c *Character) Name() string {
	if c == nil {
		return ""
	}
	return c.stats.Name
}

func (c *Character) Variant() string {
	if c == nil || c.variant == nil {
		return ""
	}
	return c.variant.Name
}

// Stats returns a copy of the current stats with the live gate values.
func (c *Character) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	s := c.stats.Clone()
	s.Resources = c.gates.State()
	return s
}

func (c *Character) Health() int {
	if c == nil {
		return 0
	}
	return c.stats.Health
}

func (c *Character) MaxHealth() int {
	if c == nil {
		return 0
	}
	return c.stats.MaxHealth
}

func (c *Character) Alive() bool {
	return c != nil && c.stats.Alive
}

// Defeated reports whether the character has reached zero health.
func (c *Character) Defeated() bool {
	return c == nil || c.defeated
}

func (c *Character) Position() common.Vec3 {
	if c == nil {
		return common.Vec3{}
	}
	return c.stats.Position
}

// SetPosition records the world position reported by the movement executor.
func (c *Character) SetPosition(p common.Vec3) {
	if c == nil {
		return
	}
	c.stats.Position = p
}

// Ready reports whether slot could be activated now.
func (c *Character) Ready(slot gate.Slot) bool {
	if c == nil {
		return false
	}
	return c.gates.Ready(slot)
}

// Resources snapshots the four gates.
func (c *Character) Resources() gate.State {
	if c == nil {
		return gate.State{}
	}
	return c.gates.State()
}

// Logger returns the character-scoped logger.
func (c *Character) Logger() *slog.Logger {
	if c == nil {
		return logger.L()
	}
	return c.log
}

// Tick advances cooldowns and ultimate charge by dt seconds.
func (c *Character) Tick(dt float64) {
	if c == nil {
		return
	}
	c.gates.Tick(dt)
}

// Restore overwrites the mutable state from a snapshot. Identity and stat
// caps come from s; health is clamped and defeat derived from it.
func (c *Character) Restore(s Stats) {
	if c == nil {
		return
	}
	s = s.Clone()
	s.normalize()
	c.stats = s
	c.gates.Restore(s.Resources)
	c.defeated = !s.Alive
}
