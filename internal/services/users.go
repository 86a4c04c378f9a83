// Package services implements the household operations on top of the
// repositories and the points ledger.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"hogar/internal/core"
	"hogar/internal/ledger"
	"hogar/internal/log"
	"hogar/internal/repo"
)

// UserService handles registration, budget edits and the delete cascade.
// The mutex serializes the duplicate-name check against the insert and
// keeps cascades from interleaving with registrations.
type UserService struct {
	users    *repo.Users
	tasks    *repo.Tasks
	shopping *repo.Shopping
	expenses *repo.Expenses
	ledger   *ledger.Ledger
	mu       sync.Mutex
}

func NewUserService(users *repo.Users, tasks *repo.Tasks, shopping *repo.Shopping, expenses *repo.Expenses, l *ledger.Ledger) *UserService {
	return &UserService{
		users:    users,
		tasks:    tasks,
		shopping: shopping,
		expenses: expenses,
		ledger:   l,
	}
}

// RegistrationInput carries raw form values. Numeric fields arrive as
// strings and default to 0 when unparsable; blank required fields abort
// with a ValidationError before any state changes.
type RegistrationInput struct {
	DisplayName string
	Email       string
	Password    string
	RawIncome   string
	RawGoal     string
	Cadence     string
}

func (s *UserService) Register(ctx context.Context, in RegistrationInput) (core.User, error) {
	u := core.User{
		DisplayName:    strings.TrimSpace(in.DisplayName),
		Email:          strings.TrimSpace(in.Email),
		PasswordSecret: in.Password,
		DeclaredIncome: core.ParseAmount(in.RawIncome),
		SavingsGoal:    core.ParseAmount(in.RawGoal),
		GoalCadence:    core.NormalizeCadence(core.GoalCadence(in.Cadence)),
	}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The tagged Owner type keeps sentinels out of the user namespace,
	// but duplicate display names would still merge two people's items
	// and points.
	if _, exists, err := s.users.GetByName(ctx, u.DisplayName); err != nil {
		return core.User{}, err
	} else if exists {
		return core.User{}, &core.ValidationError{Field: "displayName", Reason: "already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordSecret = string(hash)

	id, err := s.users.Add(ctx, u)
	if err != nil {
		return core.User{}, err
	}
	u.ID = id

	if err := s.ledger.Seed(ctx, u.DisplayName); err != nil {
		return core.User{}, fmt.Errorf("seed points entry: %w", err)
	}

	slog.InfoContext(ctx, "User registered",
		"id", u.ID,
		log.FieldUser, u.DisplayName,
		"cadence", u.GoalCadence)
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]core.User, error) {
	return s.users.List(ctx)
}

// UpdateBudget edits the only mutable user fields: income, goal and
// cadence. Raw numerics default to 0 when unparsable.
func (s *UserService) UpdateBudget(ctx context.Context, id, rawIncome, rawGoal, cadence string) (core.User, error) {
	return s.users.Update(ctx, id, func(u *core.User) {
		u.DeclaredIncome = core.ParseAmount(rawIncome)
		u.SavingsGoal = core.ParseAmount(rawGoal)
		if cadence != "" {
			u.GoalCadence = core.NormalizeCadence(core.GoalCadence(cadence))
		}
	})
}

// Delete removes the user and runs the referential cascade: their tasks
// and shopping items fall back to unassigned, their individual expenses
// lose their owner but stay individual, and their ledger entry goes away.
// Every step is idempotent, so a cascade interrupted by a crash can
// simply run again.
func (s *UserService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.users.Remove(ctx, id)
	if err != nil {
		return err
	}

	name := removed.DisplayName
	if err := s.tasks.ReassignAllFrom(ctx, name, core.Unassigned()); err != nil {
		return fmt.Errorf("cascade tasks: %w", err)
	}
	if err := s.shopping.ReassignAllFrom(ctx, name, core.Unassigned()); err != nil {
		return fmt.Errorf("cascade shopping: %w", err)
	}
	if err := s.expenses.ReassignAllFrom(ctx, name, core.Unassigned()); err != nil {
		return fmt.Errorf("cascade expenses: %w", err)
	}
	if err := s.ledger.Forget(ctx, name); err != nil {
		return fmt.Errorf("cascade ledger: %w", err)
	}

	slog.InfoContext(ctx, "User deleted with cascade", "id", id, log.FieldUser, name)
	return nil
}
