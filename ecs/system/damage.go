package system

import (
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// EventDefeated is pushed once when a character's health reaches zero.
const EventDefeated = "character_defeated"

// DamageSystem applies queued damage requests and removes them.
type DamageSystem struct{}

func NewDamageSystem() *DamageSystem {
	return &DamageSystem{}
}

func (s *DamageSystem) Update(w *ecs.World, _ float64) error {
	if w == nil {
		return nil
	}
	ecs.ForEach(w, component.DamageRequestComponent.Kind(), func(e ecs.Entity, req *component.DamageRequest) {
		_ = ecs.Remove(w, e, component.DamageRequestComponent.Kind())
		char, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if !ok || char.Controller == nil {
			return
		}
		c := char.Controller.Character()
		wasDefeated := c.Defeated()
		char.Controller.TakeDamage(req.Amount)
		if !wasDefeated && c.Defeated() {
			w.Events().Push(ecs.Event{Type: EventDefeated, Entity: e, Data: c.Name()})
		}
	})
	return nil
}
