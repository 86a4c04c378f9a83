package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hogar/internal/core"
	"hogar/internal/store"
)

type Tasks struct {
	c collection[core.Task]
}

func NewTasks(st store.Store) *Tasks {
	return &Tasks{c: collection[core.Task]{st: st, key: store.KeyTasks}}
}

func (r *Tasks) List(ctx context.Context) ([]core.Task, error) {
	return r.c.items(ctx)
}

func (r *Tasks) Get(ctx context.Context, id string) (core.Task, error) {
	tasks, err := r.c.items(ctx)
	if err != nil {
		return core.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Task{}, fmt.Errorf("task %s: %w", id, core.ErrNotFound)
}

func (r *Tasks) Add(ctx context.Context, t core.Task) (string, error) {
	t.ID = uuid.NewString()
	err := r.c.mutate(ctx, func(tasks []core.Task) ([]core.Task, error) {
		return append(tasks, t), nil
	})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (r *Tasks) Update(ctx context.Context, id string, fn func(*core.Task)) (core.Task, error) {
	var updated core.Task
	err := r.c.mutate(ctx, func(tasks []core.Task) ([]core.Task, error) {
		for i := range tasks {
			if tasks[i].ID == id {
				fn(&tasks[i])
				updated = tasks[i]
				return tasks, nil
			}
		}
		return nil, fmt.Errorf("task %s: %w", id, core.ErrNotFound)
	})
	if err != nil {
		return core.Task{}, err
	}
	return updated, nil
}

func (r *Tasks) Remove(ctx context.Context, id string) error {
	return r.c.mutate(ctx, func(tasks []core.Task) ([]core.Task, error) {
		for i, t := range tasks {
			if t.ID == id {
				return append(tasks[:i], tasks[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("task %s: %w", id, core.ErrNotFound)
	})
}

// Reassign moves the task to a new owner. An absent id is a no-op, not an
// error: stale drag events replay safely. Returns the task and whether
// anything changed.
func (r *Tasks) Reassign(ctx context.Context, id string, owner core.Owner) (core.Task, bool, error) {
	var (
		moved   core.Task
		changed bool
	)
	err := r.c.mutate(ctx, func(tasks []core.Task) ([]core.Task, error) {
		for i := range tasks {
			if tasks[i].ID == id {
				if tasks[i].Owner == owner {
					moved = tasks[i]
					return tasks, nil
				}
				tasks[i].Owner = owner
				moved = tasks[i]
				changed = true
				return tasks, nil
			}
		}
		return tasks, nil
	})
	return moved, changed, err
}

// ReassignAllFrom relabels every task owned by displayName to the given
// owner. Used by the user-delete cascade; safe to re-run.
func (r *Tasks) ReassignAllFrom(ctx context.Context, displayName string, to core.Owner) error {
	return r.c.mutate(ctx, func(tasks []core.Task) ([]core.Task, error) {
		for i := range tasks {
			if tasks[i].Owner.Is(displayName) {
				tasks[i].Owner = to
			}
		}
		return tasks, nil
	})
}
