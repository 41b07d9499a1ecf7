package system

import (
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// InputSystem feeds each entity's sampled snapshot to its input handler.
// Snapshots are written by whatever drives the world: a device poller, a
// scenario or a test.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (s *InputSystem) Update(w *ecs.World, dt float64) error {
	if w == nil {
		return nil
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		if in.Handler == nil {
			return
		}
		in.Handler.Update(in.Snapshot, dt)
	})
	return nil
}
