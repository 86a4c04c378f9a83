package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"hogar/internal/core"
	"hogar/internal/store"
)

func TestAwardAndFloor(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMemoryStore())

	bal, err := l.Award(ctx, "Alice", 10)
	if err != nil || bal != 10 {
		t.Fatalf("award = %d, %v", bal, err)
	}
	bal, _ = l.Award(ctx, "Alice", -10)
	if bal != 0 {
		t.Fatalf("symmetric award should return to 0, got %d", bal)
	}

	// Floor clamp is lossy on purpose: 5 - 10 clamps to 0, and the
	// following +10 lands on 10, not back on 5.
	l.Award(ctx, "Bob", 5)
	if bal, _ = l.Award(ctx, "Bob", -10); bal != 0 {
		t.Fatalf("expected clamp to 0, got %d", bal)
	}
	if bal, _ = l.Award(ctx, "Bob", 10); bal != 10 {
		t.Fatalf("expected 10 after clamped sequence, got %d", bal)
	}
}

func TestBalanceUnknownUserIsZero(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMemoryStore())

	bal, err := l.Balance(ctx, "nadie")
	if err != nil || bal != 0 {
		t.Fatalf("balance = %d, %v; want 0, nil", bal, err)
	}
}

func TestDebit(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMemoryStore())
	l.Award(ctx, "Alice", 50)

	// Too expensive: fails, balance untouched
	if _, err := l.Debit(ctx, "Alice", 60); !errors.Is(err, core.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if bal, _ := l.Balance(ctx, "Alice"); bal != 50 {
		t.Fatalf("failed debit must not change balance, got %d", bal)
	}

	// Exact cost drains to zero
	l.Award(ctx, "Alice", 30)
	bal, err := l.Debit(ctx, "Alice", 80)
	if err != nil || bal != 0 {
		t.Fatalf("debit = %d, %v", bal, err)
	}
}

func TestSeedAndForget(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMemoryStore())

	if err := l.Seed(ctx, "Alice"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	l.Award(ctx, "Alice", 20)

	// Replaying the seed must not reset an existing balance
	if err := l.Seed(ctx, "Alice"); err != nil {
		t.Fatalf("seed replay: %v", err)
	}
	if bal, _ := l.Balance(ctx, "Alice"); bal != 20 {
		t.Fatalf("seed replay reset balance to %d", bal)
	}

	if err := l.Forget(ctx, "Alice"); err != nil {
		t.Fatalf("forget: %v", err)
	}
	balances, _ := l.Balances(ctx)
	if _, ok := balances["Alice"]; ok {
		t.Fatalf("entry still present after forget")
	}
	// Safe to re-run
	if err := l.Forget(ctx, "Alice"); err != nil {
		t.Fatalf("forget replay: %v", err)
	}
}

func TestCorruptLedgerRecovers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.Write(ctx, store.KeyPoints, json.RawMessage(`"not a map"`))

	l := New(st)
	if bal, err := l.Balance(ctx, "Alice"); err != nil || bal != 0 {
		t.Fatalf("balance after corruption = %d, %v", bal, err)
	}

	// Negative balances smuggled into storage are clamped on load
	st.Write(ctx, store.KeyPoints, json.RawMessage(`{"Alice":-7}`))
	if bal, _ := l.Balance(ctx, "Alice"); bal != 0 {
		t.Fatalf("negative stored balance should read 0, got %d", bal)
	}
}

func TestConcurrentAwardsLoseNoUpdates(t *testing.T) {
	ctx := context.Background()
	l := New(store.NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Award(ctx, "Alice", 1); err != nil {
				t.Errorf("award: %v", err)
			}
		}()
	}
	wg.Wait()

	if bal, _ := l.Balance(ctx, "Alice"); bal != 50 {
		t.Fatalf("lost updates: balance = %d, want 50", bal)
	}
}
