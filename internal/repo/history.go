package repo

import (
	"context"

	"github.com/google/uuid"

	"hogar/internal/core"
	"hogar/internal/store"
)

// History is the append-only redemption log. Records are never mutated;
// the only destructive operation is an explicit bulk clear.
type History struct {
	c collection[core.RedemptionRecord]
}

func NewHistory(st store.Store) *History {
	return &History{c: collection[core.RedemptionRecord]{st: st, key: store.KeyHistory}}
}

// List returns records newest first.
func (r *History) List(ctx context.Context) ([]core.RedemptionRecord, error) {
	return r.c.items(ctx)
}

func (r *History) Count(ctx context.Context) (int, error) {
	records, err := r.c.items(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Append prepends the record so the document reads newest first.
func (r *History) Append(ctx context.Context, rec core.RedemptionRecord) (string, error) {
	rec.ID = uuid.NewString()
	err := r.c.mutate(ctx, func(records []core.RedemptionRecord) ([]core.RedemptionRecord, error) {
		return append([]core.RedemptionRecord{rec}, records...), nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Clear wipes the whole log.
func (r *History) Clear(ctx context.Context) error {
	return r.c.mutate(ctx, func([]core.RedemptionRecord) ([]core.RedemptionRecord, error) {
		return nil, nil
	})
}
