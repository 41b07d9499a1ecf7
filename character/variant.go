package character

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/milk9111/fpscontroller/gate"
)

var (
	ErrNoVariant      = errors.New("character: no variant assigned")
	ErrUnknownVariant = errors.New("character: unknown variant")
	ErrInvalidVariant = errors.New("character: invalid variant")
)

// Hook is an ability effect.
type Hook func(ctx CastContext)

// Variant is the capability table of one playable character: gate defaults
// plus the effect hooks the core calls. Nil hooks are treated as no-ops.
type Variant struct {
	Name string

	FirstCooldown      float64
	SecondCooldown     float64
	PassiveCooldown    float64
	UltimateChargeRate float64

	OnFirstSkill  Hook
	OnSecondSkill Hook
	OnUltimate    Hook
	OnPassive     Hook

	OnSpawn   func(c *Character)
	OnDamaged func(c *Character, amount int)
	OnDeath   func(c *Character)
}

// Validate rejects tables the gate model cannot run.
func (v *Variant) Validate() error {
	if v == nil {
		return ErrNoVariant
	}
	if v.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidVariant)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"first_cooldown", v.FirstCooldown},
		{"second_cooldown", v.SecondCooldown},
		{"passive_cooldown", v.PassiveCooldown},
	} {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s %s must be a finite non-negative number", ErrInvalidVariant, v.Name, f.name)
		}
	}
	if !(v.UltimateChargeRate > 0) || math.IsInf(v.UltimateChargeRate, 0) {
		return fmt.Errorf("%w: %s ultimate_charge_rate must be positive", ErrInvalidVariant, v.Name)
	}
	return nil
}

func (v *Variant) gateDefaults() gate.Defaults {
	return gate.Defaults{
		FirstCooldown:      v.FirstCooldown,
		SecondCooldown:     v.SecondCooldown,
		PassiveCooldown:    v.PassiveCooldown,
		UltimateChargeRate: v.UltimateChargeRate,
	}
}

func (v *Variant) hook(slot gate.Slot) Hook {
	var h Hook
	switch slot {
	case gate.SlotFirst:
		h = v.OnFirstSkill
	case gate.SlotSecond:
		h = v.OnSecondSkill
	case gate.SlotUltimate:
		h = v.OnUltimate
	case gate.SlotPassive:
		h = v.OnPassive
	}
	if h == nil {
		return func(CastContext) {}
	}
	return h
}

// Factory builds a fresh variant for one character. Variants with private
// state (scripted ones) must not be shared between characters.
type Factory func() (*Variant, error)

// Registry maps variant names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	if r == nil || name == "" || f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// New builds the variant registered under name.
func (r *Registry) New(name string) (*Variant, error) {
	if r == nil {
		return nil, ErrNoVariant
	}
	if name == "" {
		return nil, ErrNoVariant
	}
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	v, err := f()
	if err != nil {
		return nil, fmt.Errorf("character: build variant %q: %w", name, err)
	}
	return v, nil
}

// Names lists the registered variants in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
