package core

import "testing"

func TestUserValidate(t *testing.T) {
	good := User{
		DisplayName:    "Alice",
		Email:          "alice@example.com",
		PasswordSecret: "hash",
		DeclaredIncome: 1200,
		SavingsGoal:    300,
		GoalCadence:    Monthly,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []User{
		{DisplayName: "  ", Email: "a@b", PasswordSecret: "x", GoalCadence: Monthly},
		{DisplayName: "Alice", Email: "", PasswordSecret: "x", GoalCadence: Monthly},
		{DisplayName: "Alice", Email: "a@b", PasswordSecret: "", GoalCadence: Monthly},
		{DisplayName: "Alice", Email: "a@b", PasswordSecret: "x", DeclaredIncome: -1, GoalCadence: Monthly},
		{DisplayName: "Alice", Email: "a@b", PasswordSecret: "x", SavingsGoal: -1, GoalCadence: Monthly},
		{DisplayName: "Alice", Email: "a@b", PasswordSecret: "x", GoalCadence: "daily"},
	}
	for i, u := range bads {
		err := u.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if _, ok := err.(*ValidationError); !ok {
			t.Fatalf("case %d expected ValidationError, got %T", i, err)
		}
	}
}

func TestNormalizeCadence(t *testing.T) {
	if got := NormalizeCadence("weekly"); got != Weekly {
		t.Fatalf("expected weekly, got %s", got)
	}
	if got := NormalizeCadence("yearly"); got != Monthly {
		t.Fatalf("expected monthly fallback, got %s", got)
	}
	if got := NormalizeCadence(""); got != Monthly {
		t.Fatalf("expected monthly fallback for empty, got %s", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	if err := (Expense{Description: "luz", Amount: 42.5, Owner: SharedPool(), IsShared: true}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Expense{Description: " ", Amount: 1}).Validate(); err == nil {
		t.Fatalf("expected error for blank description")
	}
	if err := (Expense{Description: "luz", Amount: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}

func TestRewardValidate(t *testing.T) {
	if err := (Reward{Title: "t", Description: "d", Cost: 10}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Reward{Title: "", Description: "d", Cost: 10}).Validate(); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if err := (Reward{Title: "t", Description: "d", Cost: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative cost")
	}
}

func TestFixedRewardsAreSeedData(t *testing.T) {
	fixed := FixedRewards()
	if len(fixed) != 5 {
		t.Fatalf("expected 5 fixed rewards, got %d", len(fixed))
	}
	for i, r := range fixed {
		if r.IsCustom {
			t.Fatalf("fixed reward %d marked custom", i)
		}
		if r.Cost <= 0 {
			t.Fatalf("fixed reward %d has no cost", i)
		}
	}
}
