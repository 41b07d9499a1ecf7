// Package store persists controller snapshots so a character can be
// suspended and resumed across runs.
package store

//go:generate mockgen -destination=mock/mock_repository.go -package=storemock github.com/milk9111/fpscontroller/store Repository

import (
	"context"
	"errors"
	"time"

	"github.com/milk9111/fpscontroller/controller"
)

var (
	ErrNotFound        = errors.New("store: snapshot not found")
	ErrInvalidArgument = errors.New("store: invalid argument")
)

// Snapshot is one saved controller state.
type Snapshot struct {
	ID      string           `json:"id"`
	SavedAt time.Time        `json:"saved_at"`
	State   controller.State `json:"state"`
}

// Repository stores snapshots by id.
type Repository interface {
	// Save writes or replaces a snapshot.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	// List returns every snapshot id in sorted order.
	List(ctx context.Context, input ListInput) (*ListOutput, error)
	// Delete returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

type SaveInput struct {
	ID    string
	State controller.State
}

type SaveOutput struct {
	Snapshot Snapshot
}

type GetInput struct {
	ID string
}

type GetOutput struct {
	Snapshot Snapshot
}

type ListInput struct{}

type ListOutput struct {
	IDs []string
}

type DeleteInput struct {
	ID string
}

type DeleteOutput struct{}
