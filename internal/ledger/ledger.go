// Package ledger maintains the per-user points balances. Two writers
// touch it (task completion and reward redemption), so every mutation
// runs as one mutex-guarded read-modify-write cycle: no interleaved
// reads, no lost updates.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"hogar/internal/core"
	"hogar/internal/log"
	"hogar/internal/store"
)

type Ledger struct {
	st store.Store
	mu sync.Mutex
}

func New(st store.Store) *Ledger {
	return &Ledger{st: st}
}

// Balance reads one user's balance. Unknown users read as 0.
func (l *Ledger) Balance(ctx context.Context, user string) (int, error) {
	balances, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	return balances[user], nil
}

// Balances returns the whole ledger.
func (l *Ledger) Balances(ctx context.Context) (map[string]int, error) {
	return l.load(ctx)
}

// Award adds delta (negative for un-completion) and clamps the result at
// zero. Returns the new balance. Toggling a task twice restores the
// original balance unless the floor was hit in between; that loss is the
// intended behavior of the floor, not a defect.
func (l *Ledger) Award(ctx context.Context, user string, delta int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balances, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	next := balances[user] + delta
	if next < 0 {
		next = 0
	}
	balances[user] = next
	if err := l.save(ctx, balances); err != nil {
		return 0, err
	}
	return next, nil
}

// Debit subtracts amount only when the balance covers it; otherwise it
// fails with ErrInsufficientBalance and leaves the balance untouched.
func (l *Ledger) Debit(ctx context.Context, user string, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balances, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	current := balances[user]
	if current < amount {
		return current, fmt.Errorf("debit %d from %s (balance %d): %w",
			amount, user, current, core.ErrInsufficientBalance)
	}
	balances[user] = current - amount
	if err := l.save(ctx, balances); err != nil {
		return 0, err
	}
	return balances[user], nil
}

// Seed creates a zero entry for a newly registered user. Existing
// balances are preserved, so replaying a registration is harmless.
func (l *Ledger) Seed(ctx context.Context, user string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balances, err := l.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := balances[user]; ok {
		return nil
	}
	balances[user] = 0
	return l.save(ctx, balances)
}

// Forget drops a user's entry as part of the delete cascade. Safe to
// re-run.
func (l *Ledger) Forget(ctx context.Context, user string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balances, err := l.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := balances[user]; !ok {
		return nil
	}
	delete(balances, user)
	return l.save(ctx, balances)
}

func (l *Ledger) load(ctx context.Context) (map[string]int, error) {
	doc, ok, err := l.st.Read(ctx, store.KeyPoints)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if !ok {
		return map[string]int{}, nil
	}

	var balances map[string]int
	if err := json.Unmarshal(doc, &balances); err != nil {
		slog.WarnContext(ctx, "Corrupt points ledger, recovering with zero balances", log.FieldError, err)
		return map[string]int{}, nil
	}
	if balances == nil {
		balances = map[string]int{}
	}
	// A hand-edited document could smuggle in negatives; clamp on load
	// so the floor invariant survives storage corruption too.
	for user, bal := range balances {
		if bal < 0 {
			balances[user] = 0
		}
	}
	return balances, nil
}

func (l *Ledger) save(ctx context.Context, balances map[string]int) error {
	doc, err := json.Marshal(balances)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := l.st.Write(ctx, store.KeyPoints, doc); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
