package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotKeyPrefix = "fpscontroller:snapshot:"
	snapshotIndexKey  = "fpscontroller:snapshots"
)

type RedisConfig struct {
	Client redis.UniversalClient
	// Now defaults to time.Now.
	Now func() time.Time
}

func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return fmt.Errorf("%w: config cannot be nil", ErrInvalidArgument)
	}
	if cfg.Client == nil {
		return fmt.Errorf("%w: client cannot be nil", ErrInvalidArgument)
	}
	return nil
}

type redisRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &redisRepository{client: cfg.Client, now: now}, nil
}

// NewClient connects to a single redis instance.
func NewClient(addr string) (redis.UniversalClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("%w: redis address is required", ErrInvalidArgument)
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: snapshot id cannot be empty", ErrInvalidArgument)
	}

	snap := Snapshot{ID: input.ID, SavedAt: r.now().UTC(), State: input.State}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("store: marshal snapshot %s: %w", input.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKeyPrefix+input.ID, data, 0)
	pipe.SAdd(ctx, snapshotIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store: save snapshot %s: %w", input.ID, err)
	}
	return &SaveOutput{Snapshot: snap}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: snapshot id cannot be empty", ErrInvalidArgument)
	}

	raw, err := r.client.Get(ctx, snapshotKeyPrefix+input.ID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, input.ID)
		}
		return nil, fmt.Errorf("store: get snapshot %s: %w", input.ID, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("store: unmarshal snapshot %s: %w", input.ID, err)
	}
	return &GetOutput{Snapshot: snap}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, snapshotIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list snapshots: %w", err)
	}
	slices.Sort(ids)
	return &ListOutput{IDs: ids}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: snapshot id cannot be empty", ErrInvalidArgument)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, snapshotKeyPrefix+input.ID)
	pipe.SRem(ctx, snapshotIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store: delete snapshot %s: %w", input.ID, err)
	}
	if del.Val() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, input.ID)
	}
	return &DeleteOutput{}, nil
}
