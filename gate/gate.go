// Package gate models the readiness resources that guard ability slots:
// cooldown timers that count down to zero and a charge meter that fills to
// MaxCharge.
package gate

import (
	"math"

	"github.com/milk9111/fpscontroller/common"
)

// MaxCharge is the value a charge gate must reach to be ready.
const MaxCharge = 100

// Kind selects the comparison direction of a Gate.
type Kind uint8

const (
	KindCooldown Kind = iota
	KindCharge
)

func (k Kind) String() string {
	switch k {
	case KindCooldown:
		return "cooldown"
	case KindCharge:
		return "charge"
	default:
		return "unknown"
	}
}

// Gate is one readiness resource. A cooldown gate is ready at zero and is
// reset to its default duration when consumed; a charge gate is ready at
// MaxCharge and is reset to zero.
type Gate struct {
	kind  Kind
	value float64
	reset float64
	rate  float64
}

// NewCooldown returns a ready cooldown gate whose spent value is
// defaultCooldown seconds.
func NewCooldown(defaultCooldown float64) Gate {
	return Gate{kind: KindCooldown, reset: math.Max(0, defaultCooldown)}
}

// NewCharge returns an empty charge gate filling at rate units per second.
func NewCharge(rate float64) Gate {
	return Gate{kind: KindCharge, rate: math.Max(0, rate)}
}

func (g Gate) Kind() Kind {
	return g.kind
}

// Value is the remaining cooldown in seconds, or the current charge.
func (g Gate) Value() float64 {
	return g.value
}

// Default is the cooldown applied on consume, or the charge rate for charge
// gates.
func (g Gate) Default() float64 {
	if g.kind == KindCharge {
		return g.rate
	}
	return g.reset
}

// Tick advances the gate by dt seconds.
func (g *Gate) Tick(dt float64) {
	if g == nil || dt <= 0 {
		return
	}
	switch g.kind {
	case KindCooldown:
		if g.value <= 0 {
			return
		}
		g.value -= dt
		if g.value <= common.Epsilon {
			g.value = 0
		}
	case KindCharge:
		if g.value >= MaxCharge {
			return
		}
		g.value += g.rate * dt
		if g.value >= MaxCharge-common.Epsilon {
			g.value = MaxCharge
		}
	}
}

// Ready reports whether the gate would allow an activation. It never mutates
// the gate.
func (g Gate) Ready() bool {
	if g.kind == KindCharge {
		return g.value >= MaxCharge
	}
	return g.value == 0
}

// Consume spends the gate. It returns false and leaves the gate untouched
// when the gate is not ready.
func (g *Gate) Consume() bool {
	if g == nil || !g.Ready() {
		return false
	}
	if g.kind == KindCharge {
		g.value = 0
	} else {
		g.value = g.reset
	}
	return true
}

// set overwrites the current value, clamped to the gate's range.
func (g *Gate) set(v float64) {
	if g == nil {
		return
	}
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if g.kind == KindCharge && v > MaxCharge {
		v = MaxCharge
	}
	g.value = v
}
