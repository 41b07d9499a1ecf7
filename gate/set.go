package gate

import "math"

// Slot names one of the four ability slots of a character.
type Slot uint8

const (
	SlotFirst Slot = iota
	SlotSecond
	SlotUltimate
	SlotPassive

	slotCount
)

// Slots lists every slot in dispatch order.
var Slots = [...]Slot{SlotFirst, SlotSecond, SlotUltimate, SlotPassive}

func (s Slot) String() string {
	switch s {
	case SlotFirst:
		return "first"
	case SlotSecond:
		return "second"
	case SlotUltimate:
		return "ultimate"
	case SlotPassive:
		return "passive"
	default:
		return "unknown"
	}
}

// Defaults are the per-character gate parameters.
type Defaults struct {
	FirstCooldown      float64
	SecondCooldown     float64
	PassiveCooldown    float64
	UltimateChargeRate float64
}

// State is the serialisable view of a Set.
type State struct {
	FirstSkillCooldown  float64 `json:"first_skill_cooldown" yaml:"first_skill_cooldown"`
	SecondSkillCooldown float64 `json:"second_skill_cooldown" yaml:"second_skill_cooldown"`
	UltimateCharge      int     `json:"ultimate_charge" yaml:"ultimate_charge"`
	PassiveCooldown     float64 `json:"passive_cooldown" yaml:"passive_cooldown"`
	// ChargeRemainder is the fractional progress toward the next whole
	// point of UltimateCharge, in [0,1).
	ChargeRemainder float64 `json:"charge_remainder,omitempty" yaml:"charge_remainder,omitempty"`
}

// Set holds the four gates of a character.
type Set struct {
	gates [slotCount]Gate
}

func NewSet(d Defaults) Set {
	var s Set
	s.gates[SlotFirst] = NewCooldown(d.FirstCooldown)
	s.gates[SlotSecond] = NewCooldown(d.SecondCooldown)
	s.gates[SlotUltimate] = NewCharge(d.UltimateChargeRate)
	s.gates[SlotPassive] = NewCooldown(d.PassiveCooldown)
	return s
}

// Tick advances every gate by dt seconds.
func (s *Set) Tick(dt float64) {
	if s == nil {
		return
	}
	for i := range s.gates {
		s.gates[i].Tick(dt)
	}
}

func (s *Set) Ready(slot Slot) bool {
	if s == nil || slot >= slotCount {
		return false
	}
	return s.gates[slot].Ready()
}

// Consume spends the gate for slot; false means it was not ready.
func (s *Set) Consume(slot Slot) bool {
	if s == nil || slot >= slotCount {
		return false
	}
	return s.gates[slot].Consume()
}

func (s *Set) Gate(slot Slot) Gate {
	if s == nil || slot >= slotCount {
		return Gate{}
	}
	return s.gates[slot]
}

// State snapshots the gate values. The charge is split into its whole
// points and the fraction toward the next one, so Restore(State()) loses
// nothing.
func (s *Set) State() State {
	if s == nil {
		return State{}
	}
	charge := s.gates[SlotUltimate].Value()
	whole := math.Floor(charge)
	return State{
		FirstSkillCooldown:  s.gates[SlotFirst].Value(),
		SecondSkillCooldown: s.gates[SlotSecond].Value(),
		UltimateCharge:      int(whole),
		ChargeRemainder:     charge - whole,
		PassiveCooldown:     s.gates[SlotPassive].Value(),
	}
}

// Restore overwrites gate values from st, clamping each into range.
func (s *Set) Restore(st State) {
	if s == nil {
		return
	}
	s.gates[SlotFirst].set(st.FirstSkillCooldown)
	s.gates[SlotSecond].set(st.SecondSkillCooldown)
	rem := st.ChargeRemainder
	if !(rem > 0 && rem < 1) {
		rem = 0
	}
	s.gates[SlotUltimate].set(float64(st.UltimateCharge) + rem)
	s.gates[SlotPassive].set(st.PassiveCooldown)
}
