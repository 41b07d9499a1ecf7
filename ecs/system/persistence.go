package system

import (
	"context"
	"fmt"

	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/store"
)

// PersistenceSystem saves the state of persistent characters on their
// interval.
type PersistenceSystem struct {
	ctx  context.Context
	repo store.Repository
}

func NewPersistenceSystem(ctx context.Context, repo store.Repository) *PersistenceSystem {
	if ctx == nil {
		ctx = context.Background()
	}
	return &PersistenceSystem{ctx: ctx, repo: repo}
}

func (p *PersistenceSystem) Update(w *ecs.World, dt float64) error {
	if p == nil || p.repo == nil || w == nil {
		return nil
	}
	var err error
	ecs.ForEach2(w, component.PersistentComponent.Kind(), component.CharacterComponent.Kind(), func(e ecs.Entity, pc *component.Persistent, c *component.Character) {
		if err != nil || !pc.Due(dt) {
			return
		}
		if _, saveErr := p.repo.Save(p.ctx, store.SaveInput{ID: pc.SnapshotID, State: c.Controller.State()}); saveErr != nil {
			err = fmt.Errorf("persist %s: %w", pc.SnapshotID, saveErr)
		}
	})
	return err
}
