package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hogar/internal/core"
	"hogar/internal/store"
)

type Expenses struct {
	c collection[core.Expense]
}

func NewExpenses(st store.Store) *Expenses {
	return &Expenses{c: collection[core.Expense]{st: st, key: store.KeyExpenses}}
}

func (r *Expenses) List(ctx context.Context) ([]core.Expense, error) {
	return r.c.items(ctx)
}

func (r *Expenses) Get(ctx context.Context, id string) (core.Expense, error) {
	expenses, err := r.c.items(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	for _, e := range expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
}

func (r *Expenses) Add(ctx context.Context, e core.Expense) (string, error) {
	e.ID = uuid.NewString()
	err := r.c.mutate(ctx, func(expenses []core.Expense) ([]core.Expense, error) {
		return append(expenses, e), nil
	})
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

func (r *Expenses) Remove(ctx context.Context, id string) error {
	return r.c.mutate(ctx, func(expenses []core.Expense) ([]core.Expense, error) {
		for i, e := range expenses {
			if e.ID == id {
				return append(expenses[:i], expenses[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	})
}

// Reassign moves the expense to a new owner. Dropping an expense onto a
// concrete user forces it individual: it cannot stay in the shared pool
// while billed to one person. Absent ids replay as no-ops.
func (r *Expenses) Reassign(ctx context.Context, id string, owner core.Owner) (core.Expense, bool, error) {
	var (
		moved   core.Expense
		changed bool
	)
	err := r.c.mutate(ctx, func(expenses []core.Expense) ([]core.Expense, error) {
		for i := range expenses {
			if expenses[i].ID == id {
				if expenses[i].Owner == owner && !(owner.IsUser() && expenses[i].IsShared) {
					moved = expenses[i]
					return expenses, nil
				}
				expenses[i].Owner = owner
				if owner.IsUser() {
					expenses[i].IsShared = false
				}
				if owner.IsShared() {
					expenses[i].IsShared = true
				}
				moved = expenses[i]
				changed = true
				return expenses, nil
			}
		}
		return expenses, nil
	})
	return moved, changed, err
}

// ReassignAllFrom relabels every expense owned by displayName. The
// expenses stay individual: a deleted user's spending is not silently
// redistributed to the rest of the household.
func (r *Expenses) ReassignAllFrom(ctx context.Context, displayName string, to core.Owner) error {
	return r.c.mutate(ctx, func(expenses []core.Expense) ([]core.Expense, error) {
		for i := range expenses {
			if expenses[i].Owner.Is(displayName) {
				expenses[i].Owner = to
			}
		}
		return expenses, nil
	})
}
