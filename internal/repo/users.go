package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hogar/internal/core"
	"hogar/internal/store"
)

type Users struct {
	c collection[core.User]
}

func NewUsers(st store.Store) *Users {
	return &Users{c: collection[core.User]{st: st, key: store.KeyUsers}}
}

// List returns users in registration order. Rankings depend on this order
// for tie-breaking, so it must stay stable.
func (r *Users) List(ctx context.Context) ([]core.User, error) {
	return r.c.items(ctx)
}

func (r *Users) Get(ctx context.Context, id string) (core.User, error) {
	users, err := r.c.items(ctx)
	if err != nil {
		return core.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, fmt.Errorf("user %s: %w", id, core.ErrNotFound)
}

func (r *Users) GetByName(ctx context.Context, displayName string) (core.User, bool, error) {
	users, err := r.c.items(ctx)
	if err != nil {
		return core.User{}, false, err
	}
	for _, u := range users {
		if u.DisplayName == displayName {
			return u, true, nil
		}
	}
	return core.User{}, false, nil
}

// Add assigns a fresh ID and appends the user. Validation is the
// service's job; the repository only guarantees ID uniqueness.
func (r *Users) Add(ctx context.Context, u core.User) (string, error) {
	u.ID = uuid.NewString()
	err := r.c.mutate(ctx, func(users []core.User) ([]core.User, error) {
		return append(users, u), nil
	})
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// Update applies mutate to the user with the given id and persists the
// result. Returns the updated user, or ErrNotFound.
func (r *Users) Update(ctx context.Context, id string, fn func(*core.User)) (core.User, error) {
	var updated core.User
	err := r.c.mutate(ctx, func(users []core.User) ([]core.User, error) {
		for i := range users {
			if users[i].ID == id {
				fn(&users[i])
				updated = users[i]
				return users, nil
			}
		}
		return nil, fmt.Errorf("user %s: %w", id, core.ErrNotFound)
	})
	if err != nil {
		return core.User{}, err
	}
	return updated, nil
}

// Remove deletes the user and returns the removed record so the caller
// can run the referential cascade.
func (r *Users) Remove(ctx context.Context, id string) (core.User, error) {
	var removed core.User
	err := r.c.mutate(ctx, func(users []core.User) ([]core.User, error) {
		for i, u := range users {
			if u.ID == id {
				removed = u
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("user %s: %w", id, core.ErrNotFound)
	})
	if err != nil {
		return core.User{}, err
	}
	return removed, nil
}
