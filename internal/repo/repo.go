// Package repo provides the typed repositories over the document store.
// Each repository owns exactly one store key and serializes its own
// read-modify-write cycles.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"hogar/internal/log"
	"hogar/internal/store"
)

// collection manages one store key holding a JSON array of T.
type collection[T any] struct {
	st  store.Store
	key string
	mu  sync.Mutex
}

// items loads the collection. An absent key reads as an empty collection,
// and so does a document that fails to decode.
func (c *collection[T]) items(ctx context.Context) ([]T, error) {
	doc, ok, err := c.st.Read(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !ok {
		return nil, nil
	}

	var out []T
	if err := json.Unmarshal(doc, &out); err != nil {
		slog.WarnContext(ctx, "Corrupt document, recovering with empty collection",
			log.FieldKey, c.key, log.FieldError, err)
		return nil, nil
	}
	return out, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.st.Write(ctx, c.key, doc); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

// mutate runs fn over the current items under the collection lock and
// persists the result fn returns.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.items(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}
