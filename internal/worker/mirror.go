// Package worker keeps the Google spreadsheet mirror of the household
// data in step with the store.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hogar/internal/log"
	"hogar/internal/repo"
	"hogar/internal/sheets"
	"hogar/internal/store"
)

// MirrorWorker re-reads the mirrored collections after change events and
// rewrites the spreadsheet tabs. A periodic full pass backs up lost
// events.
type MirrorWorker struct {
	expenses      *repo.Expenses
	history       *repo.History
	expenseMirror sheets.ExpenseMirror
	historyMirror sheets.HistoryMirror
	interval      time.Duration

	mu    sync.Mutex
	dirty map[string]bool
}

func NewMirrorWorker(expenses *repo.Expenses, history *repo.History, em sheets.ExpenseMirror, hm sheets.HistoryMirror, interval time.Duration) *MirrorWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &MirrorWorker{
		expenses:      expenses,
		history:       history,
		expenseMirror: em,
		historyMirror: hm,
		interval:      interval,
		dirty:         make(map[string]bool),
	}
}

// HandleChange marks a changed key for the next flush. Keys outside the
// mirrored collections are ignored.
func (w *MirrorWorker) HandleChange(key string) {
	switch key {
	case store.KeyExpenses, store.KeyHistory:
	default:
		return
	}
	w.mu.Lock()
	w.dirty[key] = true
	w.mu.Unlock()
}

// Run mirrors everything once at startup, then flushes dirty collections
// on each tick until ctx is cancelled.
func (w *MirrorWorker) Run(ctx context.Context) error {
	if err := w.MirrorAll(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup mirror failed", log.FieldError, err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Flush(ctx); err != nil {
				slog.ErrorContext(ctx, "Mirror flush failed", log.FieldError, err)
			}
		}
	}
}

// Flush mirrors the collections marked dirty since the last flush. A
// failed mirror leaves the key dirty so the next tick retries it.
func (w *MirrorWorker) Flush(ctx context.Context) error {
	w.mu.Lock()
	pending := make([]string, 0, len(w.dirty))
	for key := range w.dirty {
		pending = append(pending, key)
		delete(w.dirty, key)
	}
	w.mu.Unlock()

	var firstErr error
	for _, key := range pending {
		if err := w.mirrorKey(ctx, key); err != nil {
			w.mu.Lock()
			w.dirty[key] = true
			w.mu.Unlock()
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// MirrorAll rewrites every mirrored tab regardless of dirty state.
func (w *MirrorWorker) MirrorAll(ctx context.Context) error {
	for _, key := range []string{store.KeyExpenses, store.KeyHistory} {
		if err := w.mirrorKey(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (w *MirrorWorker) mirrorKey(ctx context.Context, key string) error {
	switch key {
	case store.KeyExpenses:
		expenses, err := w.expenses.List(ctx)
		if err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		ref, err := w.expenseMirror.MirrorExpenses(ctx, expenses)
		if err != nil {
			return fmt.Errorf("mirror expenses: %w", err)
		}
		slog.InfoContext(ctx, "Mirrored expenses", "count", len(expenses), log.FieldSheetsRef, ref)
	case store.KeyHistory:
		records, err := w.history.List(ctx)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		ref, err := w.historyMirror.MirrorHistory(ctx, records)
		if err != nil {
			return fmt.Errorf("mirror history: %w", err)
		}
		slog.InfoContext(ctx, "Mirrored redemption history", "count", len(records), log.FieldSheetsRef, ref)
	default:
		return fmt.Errorf("unmirrored key: %s", key)
	}
	return nil
}
