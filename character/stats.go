package character

import (
	"slices"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/gate"
)

// Stats is the gameplay state of one character.
type Stats struct {
	Name         string      `json:"name" yaml:"name"`
	Level        int         `json:"level" yaml:"level"`
	Class        string      `json:"class" yaml:"class"`
	Health       int         `json:"health" yaml:"health"`
	MaxHealth    int         `json:"max_health" yaml:"max_health"`
	Stamina      int         `json:"stamina" yaml:"stamina"`
	MaxStamina   int         `json:"max_stamina" yaml:"max_stamina"`
	Strength     int         `json:"strength" yaml:"strength"`
	Agility      int         `json:"agility" yaml:"agility"`
	Intelligence int         `json:"intelligence" yaml:"intelligence"`
	Inventory    []string    `json:"inventory" yaml:"inventory"`
	Position     common.Vec3 `json:"position" yaml:"position"`
	Alive        bool        `json:"alive" yaml:"alive"`
	Resources    gate.State  `json:"resources" yaml:"resources"`
}

// Clone returns a deep copy of s.
func (s Stats) Clone() Stats {
	s.Inventory = slices.Clone(s.Inventory)
	return s
}

// normalize enforces 0 <= health <= maxHealth and alive == health > 0.
func (s *Stats) normalize() {
	if s.MaxHealth < 0 {
		s.MaxHealth = 0
	}
	s.Health = clampInt(s.Health, 0, s.MaxHealth)
	if s.MaxStamina < 0 {
		s.MaxStamina = 0
	}
	s.Stamina = clampInt(s.Stamina, 0, s.MaxStamina)
	s.Alive = s.Health > 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
