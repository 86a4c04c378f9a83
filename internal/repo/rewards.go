package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hogar/internal/core"
	"hogar/internal/store"
)

// Rewards stores only the household's custom rewards; the fixed
// catalogue is compiled in (core.FixedRewards) and never persisted.
type Rewards struct {
	c collection[core.Reward]
}

func NewRewards(st store.Store) *Rewards {
	return &Rewards{c: collection[core.Reward]{st: st, key: store.KeyCustomRewards}}
}

func (r *Rewards) ListCustom(ctx context.Context) ([]core.Reward, error) {
	return r.c.items(ctx)
}

// All returns the fixed catalogue followed by the custom rewards.
func (r *Rewards) All(ctx context.Context) ([]core.Reward, error) {
	custom, err := r.c.items(ctx)
	if err != nil {
		return nil, err
	}
	return append(core.FixedRewards(), custom...), nil
}

// Get looks the reward up in the fixed catalogue first, then the custom
// collection.
func (r *Rewards) Get(ctx context.Context, id string) (core.Reward, error) {
	for _, rw := range core.FixedRewards() {
		if rw.ID == id {
			return rw, nil
		}
	}
	custom, err := r.c.items(ctx)
	if err != nil {
		return core.Reward{}, err
	}
	for _, rw := range custom {
		if rw.ID == id {
			return rw, nil
		}
	}
	return core.Reward{}, fmt.Errorf("reward %s: %w", id, core.ErrNotFound)
}

func (r *Rewards) AddCustom(ctx context.Context, rw core.Reward) (string, error) {
	rw.ID = uuid.NewString()
	rw.IsCustom = true
	err := r.c.mutate(ctx, func(rewards []core.Reward) ([]core.Reward, error) {
		return append(rewards, rw), nil
	})
	if err != nil {
		return "", err
	}
	return rw.ID, nil
}

// RemoveCustom deletes a custom reward. Fixed rewards are immutable seed
// data and refuse deletion.
func (r *Rewards) RemoveCustom(ctx context.Context, id string) error {
	for _, rw := range core.FixedRewards() {
		if rw.ID == id {
			return core.ErrFixedReward
		}
	}
	return r.c.mutate(ctx, func(rewards []core.Reward) ([]core.Reward, error) {
		for i, rw := range rewards {
			if rw.ID == id {
				return append(rewards[:i], rewards[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("reward %s: %w", id, core.ErrNotFound)
	})
}
