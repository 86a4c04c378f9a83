package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hogar/internal/core"
	"hogar/internal/store"
)

// Shopping holds the household shopping list. Same mechanics as tasks,
// but completing an item never awards points.
type Shopping struct {
	c collection[core.ShoppingItem]
}

func NewShopping(st store.Store) *Shopping {
	return &Shopping{c: collection[core.ShoppingItem]{st: st, key: store.KeyShopping}}
}

func (r *Shopping) List(ctx context.Context) ([]core.ShoppingItem, error) {
	return r.c.items(ctx)
}

func (r *Shopping) Add(ctx context.Context, item core.ShoppingItem) (string, error) {
	item.ID = uuid.NewString()
	err := r.c.mutate(ctx, func(items []core.ShoppingItem) ([]core.ShoppingItem, error) {
		return append(items, item), nil
	})
	if err != nil {
		return "", err
	}
	return item.ID, nil
}

func (r *Shopping) Update(ctx context.Context, id string, fn func(*core.ShoppingItem)) (core.ShoppingItem, error) {
	var updated core.ShoppingItem
	err := r.c.mutate(ctx, func(items []core.ShoppingItem) ([]core.ShoppingItem, error) {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
				updated = items[i]
				return items, nil
			}
		}
		return nil, fmt.Errorf("shopping item %s: %w", id, core.ErrNotFound)
	})
	if err != nil {
		return core.ShoppingItem{}, err
	}
	return updated, nil
}

func (r *Shopping) Remove(ctx context.Context, id string) error {
	return r.c.mutate(ctx, func(items []core.ShoppingItem) ([]core.ShoppingItem, error) {
		for i, it := range items {
			if it.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("shopping item %s: %w", id, core.ErrNotFound)
	})
}

// Reassign moves the item to a new owner; absent ids replay as no-ops.
func (r *Shopping) Reassign(ctx context.Context, id string, owner core.Owner) error {
	return r.c.mutate(ctx, func(items []core.ShoppingItem) ([]core.ShoppingItem, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Owner = owner
				return items, nil
			}
		}
		return items, nil
	})
}

func (r *Shopping) ReassignAllFrom(ctx context.Context, displayName string, to core.Owner) error {
	return r.c.mutate(ctx, func(items []core.ShoppingItem) ([]core.ShoppingItem, error) {
		for i := range items {
			if items[i].Owner.Is(displayName) {
				items[i].Owner = to
			}
		}
		return items, nil
	})
}
