package rank

import (
	"testing"

	"hogar/internal/budget"
	"hogar/internal/core"
)

func users(names ...string) []core.User {
	out := make([]core.User, len(names))
	for i, n := range names {
		out[i] = core.User{DisplayName: n}
	}
	return out
}

func TestByPoints(t *testing.T) {
	entries := ByPoints(
		users("Alice", "Bob", "Carol"),
		map[string]int{"Alice": 20, "Bob": 50, "Carol": 20},
	)

	if entries[0].DisplayName != "Bob" || entries[0].Position != 1 {
		t.Fatalf("expected Bob first, got %+v", entries[0])
	}
	// Alice and Carol tie at 20; registration order breaks the tie
	if entries[1].DisplayName != "Alice" || entries[2].DisplayName != "Carol" {
		t.Fatalf("tie order wrong: %+v", entries)
	}
}

func TestByPointsStableAcrossAllTies(t *testing.T) {
	entries := ByPoints(users("X", "Y", "Z"), map[string]int{})
	for i, want := range []string{"X", "Y", "Z"} {
		if entries[i].DisplayName != want {
			t.Fatalf("all-tie order wrong at %d: %+v", i, entries)
		}
	}
}

func TestBySavings(t *testing.T) {
	budgets := []budget.UserBudget{
		{DisplayName: "Alice", Remaining: 120},
		{DisplayName: "Bob", Remaining: -40}, // overspender ranks at 0
		{DisplayName: "Carol", Remaining: 300},
	}

	entries := BySavings(budgets)
	if entries[0].DisplayName != "Carol" || entries[0].Savings != 300 {
		t.Fatalf("expected Carol first, got %+v", entries[0])
	}
	if entries[2].DisplayName != "Bob" || entries[2].Savings != 0 {
		t.Fatalf("overspender should rank last at 0, got %+v", entries[2])
	}
}

func TestBySavingsOverspendersKeepOrder(t *testing.T) {
	budgets := []budget.UserBudget{
		{DisplayName: "A", Remaining: -10},
		{DisplayName: "B", Remaining: -500},
		{DisplayName: "C", Remaining: 0},
	}

	entries := BySavings(budgets)
	// All three have key 0: registration order stands
	for i, want := range []string{"A", "B", "C"} {
		if entries[i].DisplayName != want {
			t.Fatalf("overspender tie order wrong at %d: %+v", i, entries)
		}
	}
}
