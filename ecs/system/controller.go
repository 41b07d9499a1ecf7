package system

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/milk9111/fpscontroller/controller"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
)

// ControllerSystem ticks every character controller. Characters share no
// state, so distinct controllers run in parallel, bounded by Workers.
type ControllerSystem struct {
	// Workers limits concurrent ticks. Zero or less means unbounded.
	Workers int
}

func NewControllerSystem(workers int) *ControllerSystem {
	return &ControllerSystem{Workers: workers}
}

func (s *ControllerSystem) Update(w *ecs.World, dt float64) error {
	if w == nil {
		return nil
	}

	var ctrls []*controller.Controller
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, c *component.Character) {
		if c.Controller != nil {
			ctrls = append(ctrls, c.Controller)
		}
	})

	var g errgroup.Group
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}
	for _, c := range ctrls {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("tick %s: %v", c.Character().Name(), r)
				}
			}()
			c.Tick(dt)
			return nil
		})
	}
	return g.Wait()
}
