package system

import (
	"path/filepath"

	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/ecs/entity"
	"github.com/milk9111/fpscontroller/prefabs"
)

// ReloadSystem rebuilds characters whose prefab or ability script changed on
// disk. Failed reloads are logged and the old character keeps running.
type ReloadSystem struct {
	changes <-chan prefabs.Change
	builder *entity.Builder
}

func NewReloadSystem(changes <-chan prefabs.Change, builder *entity.Builder) *ReloadSystem {
	return &ReloadSystem{changes: changes, builder: builder}
}

func (r *ReloadSystem) Update(w *ecs.World, _ float64) error {
	if r == nil || r.changes == nil || w == nil {
		return nil
	}
	for {
		select {
		case change, ok := <-r.changes:
			if !ok {
				r.changes = nil
				return nil
			}
			r.apply(w, change)
		default:
			return nil
		}
	}
}

func (r *ReloadSystem) apply(w *ecs.World, change prefabs.Change) {
	if change.Removed {
		return
	}
	if change.Kind == prefabs.ChangeScript {
		r.builder.Forget(change.Name)
	}
	ecs.ForEach(w, component.PrefabComponent.Kind(), func(e ecs.Entity, src *component.Prefab) {
		if !affected(src, change) {
			return
		}
		if err := r.builder.Rebuild(w, e); err != nil {
			r.builder.Log.Error("reload failed", "entity", e.String(), "file", change.Path, "err", err)
		}
	})
}

func affected(src *component.Prefab, change prefabs.Change) bool {
	switch change.Kind {
	case prefabs.ChangeScript:
		return src.Script != "" && filepath.Base(src.Script) == filepath.Base(change.Name)
	default:
		return filepath.Base(src.Name) == change.Name
	}
}
