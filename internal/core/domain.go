package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Weekly  GoalCadence = "weekly"
	Monthly GoalCadence = "monthly"
)

// TaskPoints is the ledger delta applied when a task flips between
// pending and completed. Both directions must use the same magnitude or
// toggling stops being reversible.
const TaskPoints = 10

type (
	GoalCadence string

	User struct {
		ID             string      `json:"id"`
		DisplayName    string      `json:"displayName"`
		Email          string      `json:"email"`
		PasswordSecret string      `json:"passwordSecret"`
		DeclaredIncome float64     `json:"declaredIncome"`
		SavingsGoal    float64     `json:"savingsGoal"`
		GoalCadence    GoalCadence `json:"goalCadence"`
	}

	Task struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
		Owner     Owner  `json:"assignedUser"`
	}

	// ShoppingItem shares the task mechanics but never touches the
	// points ledger.
	ShoppingItem struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
		Owner     Owner  `json:"assignedUser"`
	}

	Expense struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Date        time.Time `json:"date"`
		Owner       Owner     `json:"assignedUser"`
		IsShared    bool      `json:"isShared"`
	}

	Reward struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Cost        int    `json:"cost"`
		IsCustom    bool   `json:"isCustom"`
	}

	// RedemptionRecord snapshots the reward at redemption time so later
	// edits or deletes never rewrite history.
	RedemptionRecord struct {
		ID          string    `json:"id"`
		User        string    `json:"user"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		RedeemedAt  time.Time `json:"redeemedAt"`
	}
)

var (
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrNotFound            = errors.New("not found")
	ErrFixedReward         = errors.New("fixed rewards cannot be removed")
)

// ValidationError reports a missing or invalid required field. The
// operation that raised it must not have changed any state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func blankErr(field string) error {
	return &ValidationError{Field: field, Reason: "must not be blank"}
}

func (c GoalCadence) Valid() bool {
	return c == Weekly || c == Monthly
}

// NormalizeCadence maps anything outside the known cadences to monthly.
func NormalizeCadence(c GoalCadence) GoalCadence {
	if c.Valid() {
		return c
	}
	return Monthly
}

func (u User) Validate() error {
	if strings.TrimSpace(u.DisplayName) == "" {
		return blankErr("displayName")
	}
	if strings.TrimSpace(u.Email) == "" {
		return blankErr("email")
	}
	if strings.TrimSpace(u.PasswordSecret) == "" {
		return blankErr("password")
	}
	if u.DeclaredIncome < 0 {
		return &ValidationError{Field: "declaredIncome", Reason: "must not be negative"}
	}
	if u.SavingsGoal < 0 {
		return &ValidationError{Field: "savingsGoal", Reason: "must not be negative"}
	}
	if !u.GoalCadence.Valid() {
		return &ValidationError{Field: "goalCadence", Reason: "must be weekly or monthly"}
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return blankErr("text")
	}
	return nil
}

func (i ShoppingItem) Validate() error {
	if strings.TrimSpace(i.Text) == "" {
		return blankErr("text")
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return blankErr("description")
	}
	if e.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return nil
}

func (r Reward) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return blankErr("title")
	}
	if strings.TrimSpace(r.Description) == "" {
		return blankErr("description")
	}
	if r.Cost < 0 {
		return &ValidationError{Field: "cost", Reason: "must not be negative"}
	}
	return nil
}
