// Package ecs hosts characters as entities with typed components and runs
// systems over them in a fixed order each tick.
package ecs

import "github.com/milk9111/fpscontroller/ecs/component"

var (
	ErrEntityNotAlive = component.ErrEntityNotAlive
	ErrNilComponent   = component.ErrNilComponent
	ErrInvalidKind    = component.ErrInvalidKind
)

// World owns entities and their component stores. It is not safe for
// concurrent mutation; systems that fan out work must collect components
// first and write back on the calling goroutine.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity drops e and all of its components. It reports whether e was
// alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities lists the live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}
