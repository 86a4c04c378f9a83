package budget

import (
	"math"
	"testing"

	"hogar/internal/core"
)

func user(name string, income, goal float64) core.User {
	return core.User{DisplayName: name, DeclaredIncome: income, SavingsGoal: goal, GoalCadence: core.Monthly}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComputeBasics(t *testing.T) {
	users := []core.User{user("Alice", 1000, 200)}
	expenses := []core.Expense{
		{ID: "1", Description: "luz", Amount: 100, Owner: core.UserOwner("Alice")},
		{ID: "2", Description: "agua", Amount: 50, Owner: core.UserOwner("Alice")},
	}

	ov := Compute(users, expenses)
	if len(ov.Budgets) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(ov.Budgets))
	}
	b := ov.Budgets[0]
	if !approx(b.Disposable, 800) {
		t.Errorf("disposable = %v, want 800", b.Disposable)
	}
	if !approx(b.IndividualSpent, 150) {
		t.Errorf("individualSpent = %v, want 150", b.IndividualSpent)
	}
	if !approx(b.Remaining, 650) {
		t.Errorf("remaining = %v, want 650", b.Remaining)
	}
	// savings = goal + max(0, remaining)
	if !approx(b.AccumulatedSavings, 850) {
		t.Errorf("savings = %v, want 850", b.AccumulatedSavings)
	}
	if !approx(b.UtilizationPercent, 150.0/800*100) {
		t.Errorf("utilization = %v", b.UtilizationPercent)
	}
}

func TestSharedPoolSplitsEqually(t *testing.T) {
	shared := core.Expense{ID: "s", Description: "alquiler", Amount: 100, Owner: core.SharedPool(), IsShared: true}

	two := Compute([]core.User{user("A", 500, 0), user("B", 500, 0)}, []core.Expense{shared})
	if !approx(two.SharedShare, 50) {
		t.Fatalf("share with 2 users = %v, want 50", two.SharedShare)
	}

	// Adding a third user changes the share without touching the expense
	three := Compute([]core.User{user("A", 500, 0), user("B", 500, 0), user("C", 500, 0)}, []core.Expense{shared})
	if !approx(three.SharedShare, 100.0/3) {
		t.Fatalf("share with 3 users = %v, want 33.33(3)", three.SharedShare)
	}
	for _, b := range three.Budgets {
		if !approx(b.SharedShare, 100.0/3) {
			t.Fatalf("user %s share = %v", b.DisplayName, b.SharedShare)
		}
	}
}

func TestSharedExpenseExcludedFromIndividual(t *testing.T) {
	users := []core.User{user("Alice", 1000, 0), user("Bob", 1000, 0)}
	expenses := []core.Expense{
		{ID: "1", Description: "cena", Amount: 60, Owner: core.UserOwner("Alice")},
		{ID: "2", Description: "internet", Amount: 40, Owner: core.SharedPool(), IsShared: true},
	}

	ov := Compute(users, expenses)
	alice, bob := ov.Budgets[0], ov.Budgets[1]
	if !approx(alice.IndividualSpent, 60) || !approx(bob.IndividualSpent, 0) {
		t.Fatalf("individual split wrong: %v / %v", alice.IndividualSpent, bob.IndividualSpent)
	}
	if !approx(alice.TotalSpent, 80) || !approx(bob.TotalSpent, 20) {
		t.Fatalf("total split wrong: %v / %v", alice.TotalSpent, bob.TotalSpent)
	}
}

func TestDisposableClampedWhenGoalExceedsIncome(t *testing.T) {
	ov := Compute([]core.User{user("A", 100, 300)}, nil)
	b := ov.Budgets[0]
	if b.Disposable != 0 {
		t.Fatalf("disposable = %v, want 0", b.Disposable)
	}
	if b.UtilizationPercent != 0 {
		t.Fatalf("utilization with zero disposable = %v, want 0", b.UtilizationPercent)
	}
}

func TestOverspendStaysNegative(t *testing.T) {
	ov := Compute(
		[]core.User{user("A", 100, 0)},
		[]core.Expense{{ID: "1", Description: "capricho", Amount: 250, Owner: core.UserOwner("A")}},
	)
	b := ov.Budgets[0]
	if !approx(b.Remaining, -150) {
		t.Fatalf("remaining = %v, want -150", b.Remaining)
	}
	// Overspend never counts toward savings
	if !approx(b.AccumulatedSavings, 0) {
		t.Fatalf("savings = %v, want 0", b.AccumulatedSavings)
	}
	if b.UtilizationPercent != 100 {
		t.Fatalf("utilization capped = %v, want 100", b.UtilizationPercent)
	}
}

func TestZeroUsers(t *testing.T) {
	ov := Compute(nil, []core.Expense{{ID: "1", Description: "x", Amount: 10, Owner: core.SharedPool(), IsShared: true}})
	if ov.SharedShare != 0 {
		t.Fatalf("share with zero users = %v, want 0", ov.SharedShare)
	}
	if len(ov.Budgets) != 0 {
		t.Fatalf("expected no budgets")
	}
}

func TestUnassignedExpenseCountsTowardNobody(t *testing.T) {
	ov := Compute(
		[]core.User{user("A", 100, 0)},
		[]core.Expense{{ID: "1", Description: "huérfano", Amount: 30, Owner: core.Unassigned()}},
	)
	if !approx(ov.Budgets[0].TotalSpent, 0) {
		t.Fatalf("unassigned expense leaked into a user: %v", ov.Budgets[0].TotalSpent)
	}
	if !approx(ov.SharedPool, 0) {
		t.Fatalf("unassigned expense leaked into the pool: %v", ov.SharedPool)
	}
}
