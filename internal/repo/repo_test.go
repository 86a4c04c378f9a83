package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hogar/internal/core"
	"hogar/internal/store"
)

func TestCorruptDocumentRecoversEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	if err := st.Write(ctx, store.KeyTasks, json.RawMessage(`{broken`)); err != nil {
		t.Fatalf("seed corrupt doc: %v", err)
	}

	tasks := NewTasks(st)
	got, err := tasks.List(ctx)
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(got))
	}

	// The collection is usable again after recovery
	if _, err := tasks.Add(ctx, core.Task{Text: "fregar", Owner: core.Unassigned()}); err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
}

func TestTasksCRUD(t *testing.T) {
	ctx := context.Background()
	tasks := NewTasks(store.NewMemoryStore())

	id, err := tasks.Add(ctx, core.Task{Text: "sacar la basura", Owner: core.Unassigned()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id == "" {
		t.Fatalf("expected assigned id")
	}

	id2, _ := tasks.Add(ctx, core.Task{Text: "fregar", Owner: core.UserOwner("Alice")})
	if id2 == id {
		t.Fatalf("ids must be unique")
	}

	got, err := tasks.Get(ctx, id)
	if err != nil || got.Text != "sacar la basura" {
		t.Fatalf("get = %+v, %v", got, err)
	}

	updated, err := tasks.Update(ctx, id, func(tk *core.Task) { tk.Text = "sacar el vidrio" })
	if err != nil || updated.Text != "sacar el vidrio" {
		t.Fatalf("update = %+v, %v", updated, err)
	}

	if _, err := tasks.Update(ctx, "missing", func(*core.Task) {}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := tasks.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := tasks.Remove(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}

	left, _ := tasks.List(ctx)
	if len(left) != 1 || left[0].ID != id2 {
		t.Fatalf("expected only %s left, got %+v", id2, left)
	}
}

func TestTaskReassignIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tasks := NewTasks(store.NewMemoryStore())

	id, _ := tasks.Add(ctx, core.Task{Text: "cocinar", Owner: core.Unassigned()})

	moved, changed, err := tasks.Reassign(ctx, id, core.UserOwner("Bob"))
	if err != nil || !changed || !moved.Owner.Is("Bob") {
		t.Fatalf("reassign = %+v changed=%v err=%v", moved, changed, err)
	}

	// Same owner again: no-op
	_, changed, err = tasks.Reassign(ctx, id, core.UserOwner("Bob"))
	if err != nil || changed {
		t.Fatalf("expected no-op, changed=%v err=%v", changed, err)
	}

	// Absent id: swallowed, supports stale drag replays
	_, changed, err = tasks.Reassign(ctx, "ghost", core.UserOwner("Bob"))
	if err != nil || changed {
		t.Fatalf("expected absent id no-op, changed=%v err=%v", changed, err)
	}

	all, _ := tasks.List(ctx)
	if len(all) != 1 {
		t.Fatalf("reassign must never duplicate or drop items, got %d", len(all))
	}
}

func TestExpenseReassignForcesIndividual(t *testing.T) {
	ctx := context.Background()
	expenses := NewExpenses(store.NewMemoryStore())

	id, _ := expenses.Add(ctx, core.Expense{
		Description: "supermercado",
		Amount:      100,
		Owner:       core.SharedPool(),
		IsShared:    true,
	})

	moved, changed, err := expenses.Reassign(ctx, id, core.UserOwner("Alice"))
	if err != nil || !changed {
		t.Fatalf("reassign: changed=%v err=%v", changed, err)
	}
	if moved.IsShared {
		t.Fatalf("expense dropped on a user must not stay shared")
	}
	if !moved.Owner.Is("Alice") {
		t.Fatalf("owner = %v, want Alice", moved.Owner)
	}

	// And back to the pool flips it shared again
	moved, _, err = expenses.Reassign(ctx, id, core.SharedPool())
	if err != nil || !moved.IsShared || !moved.Owner.IsShared() {
		t.Fatalf("reassign to pool = %+v, %v", moved, err)
	}
}

func TestReassignAllFrom(t *testing.T) {
	ctx := context.Background()
	tasks := NewTasks(store.NewMemoryStore())

	tasks.Add(ctx, core.Task{Text: "a", Owner: core.UserOwner("Carol")})
	tasks.Add(ctx, core.Task{Text: "b", Owner: core.UserOwner("Dave")})
	tasks.Add(ctx, core.Task{Text: "c", Owner: core.UserOwner("Carol")})

	if err := tasks.ReassignAllFrom(ctx, "Carol", core.Unassigned()); err != nil {
		t.Fatalf("cascade: %v", err)
	}
	// Safe to re-run
	if err := tasks.ReassignAllFrom(ctx, "Carol", core.Unassigned()); err != nil {
		t.Fatalf("cascade replay: %v", err)
	}

	all, _ := tasks.List(ctx)
	for _, tk := range all {
		if tk.Owner.Is("Carol") {
			t.Fatalf("task %s still owned by deleted user", tk.ID)
		}
	}
	if !all[1].Owner.Is("Dave") {
		t.Fatalf("unrelated owner touched: %+v", all[1])
	}
}

func TestRewardsFixedAndCustom(t *testing.T) {
	ctx := context.Background()
	rewards := NewRewards(store.NewMemoryStore())

	all, err := rewards.All(ctx)
	if err != nil || len(all) != 5 {
		t.Fatalf("expected 5 seed rewards, got %d (%v)", len(all), err)
	}

	id, err := rewards.AddCustom(ctx, core.Reward{Title: "Cine", Description: "Película a elegir", Cost: 40})
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}

	got, err := rewards.Get(ctx, id)
	if err != nil || !got.IsCustom {
		t.Fatalf("get custom = %+v, %v", got, err)
	}

	if err := rewards.RemoveCustom(ctx, "1"); !errors.Is(err, core.ErrFixedReward) {
		t.Fatalf("expected ErrFixedReward, got %v", err)
	}
	if err := rewards.RemoveCustom(ctx, id); err != nil {
		t.Fatalf("remove custom: %v", err)
	}
	if err := rewards.RemoveCustom(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	ctx := context.Background()
	history := NewHistory(store.NewMemoryStore())

	history.Append(ctx, core.RedemptionRecord{User: "Alice", Title: "Day off 🛌"})
	history.Append(ctx, core.RedemptionRecord{User: "Bob", Title: "Cuponazo 🎁"})

	records, err := history.List(ctx)
	if err != nil || len(records) != 2 {
		t.Fatalf("list = %d records, %v", len(records), err)
	}
	if records[0].User != "Bob" {
		t.Fatalf("expected newest first, got %+v", records[0])
	}

	if err := history.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := history.Count(ctx); n != 0 {
		t.Fatalf("expected empty after clear, got %d", n)
	}
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(store.NewMemoryStore())

	id, err := users.Add(ctx, core.User{DisplayName: "Alice", Email: "a@b", PasswordSecret: "h", GoalCadence: core.Monthly})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	users.Add(ctx, core.User{DisplayName: "Bob", Email: "b@b", PasswordSecret: "h", GoalCadence: core.Weekly})

	u, found, err := users.GetByName(ctx, "Alice")
	if err != nil || !found || u.ID != id {
		t.Fatalf("GetByName = %+v found=%v err=%v", u, found, err)
	}

	updated, err := users.Update(ctx, id, func(u *core.User) { u.DeclaredIncome = 1500 })
	if err != nil || updated.DeclaredIncome != 1500 {
		t.Fatalf("update = %+v, %v", updated, err)
	}

	removed, err := users.Remove(ctx, id)
	if err != nil || removed.DisplayName != "Alice" {
		t.Fatalf("remove = %+v, %v", removed, err)
	}
	if _, err := users.Remove(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	left, _ := users.List(ctx)
	if len(left) != 1 || left[0].DisplayName != "Bob" {
		t.Fatalf("expected Bob left, got %+v", left)
	}
}
