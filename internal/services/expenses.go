package services

import (
	"context"
	"strings"
	"time"

	"hogar/internal/core"
	"hogar/internal/repo"
)

// ExpenseService manages the monthly expense list.
type ExpenseService struct {
	expenses *repo.Expenses
	now      func() time.Time
}

func NewExpenseService(expenses *repo.Expenses) *ExpenseService {
	return &ExpenseService{expenses: expenses, now: time.Now}
}

// Add records an expense. The raw amount defaults to 0 when unparsable
// and the date defaults to now when zero. A shared expense always sits
// in the shared pool regardless of the requested owner.
func (s *ExpenseService) Add(ctx context.Context, description, rawAmount string, date time.Time, owner core.Owner, shared bool) (core.Expense, error) {
	if shared {
		owner = core.SharedPool()
	}
	if date.IsZero() {
		date = s.now()
	}
	e := core.Expense{
		Description: strings.TrimSpace(description),
		Amount:      core.ParseAmount(rawAmount),
		Date:        date,
		Owner:       owner,
		IsShared:    shared,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	id, err := s.expenses.Add(ctx, e)
	if err != nil {
		return core.Expense{}, err
	}
	e.ID = id
	return e, nil
}

func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.expenses.Remove(ctx, id)
}

// Reassign moves the expense between budgets. Moving onto a user makes
// the expense individual; moving into the shared pool makes it shared.
func (s *ExpenseService) Reassign(ctx context.Context, id string, owner core.Owner) (core.Expense, error) {
	e, _, err := s.expenses.Reassign(ctx, id, owner)
	return e, err
}
