package ecs

import "fmt"

// System advances one concern of the world by dt seconds.
type System interface {
	Update(w *World, dt float64) error
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once and stops at the first error.
func (s *Scheduler) Update(w *World, dt float64) error {
	if s == nil || w == nil {
		return nil
	}
	for _, system := range s.systems {
		if err := system.Update(w, dt); err != nil {
			return fmt.Errorf("ecs: %T: %w", system, err)
		}
	}
	return nil
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
