// Package budget derives the per-user budget view from the current
// users and expenses. The aggregator is pure and pull-based: every read
// recomputes from the repositories, so it can never go stale relative to
// the last committed mutation.
package budget

import (
	"context"

	"hogar/internal/core"
	"hogar/internal/repo"
)

// UserBudget is one user's derived budget line. All values are
// full-precision; presentation rounds to two decimals.
type UserBudget struct {
	DisplayName        string
	Cadence            core.GoalCadence
	DeclaredIncome     float64
	SavingsGoal        float64
	Disposable         float64
	IndividualSpent    float64
	SharedShare        float64
	TotalSpent         float64
	Remaining          float64
	AccumulatedSavings float64
	UtilizationPercent float64
}

// Overview is the whole household's budget snapshot.
type Overview struct {
	UserCount   int
	SharedPool  float64
	SharedShare float64
	Budgets     []UserBudget
}

// Compute derives the overview from a consistent snapshot of users and
// expenses. Budgets come back in user registration order.
func Compute(users []core.User, expenses []core.Expense) Overview {
	individual := make(map[string]float64)
	var sharedPool float64
	for _, e := range expenses {
		if e.IsShared {
			sharedPool += e.Amount
			continue
		}
		if name, ok := e.Owner.UserName(); ok {
			individual[name] += e.Amount
		}
		// Unassigned individual expenses count toward nobody.
	}

	ov := Overview{
		UserCount:  len(users),
		SharedPool: sharedPool,
	}
	if len(users) > 0 {
		ov.SharedShare = sharedPool / float64(len(users))
	}

	for _, u := range users {
		disposable := u.DeclaredIncome - u.SavingsGoal
		if disposable < 0 {
			disposable = 0
		}

		spent := individual[u.DisplayName] + ov.SharedShare
		remaining := disposable - spent // overspend stays representable

		savings := u.SavingsGoal
		if remaining > 0 {
			savings += remaining
		}

		var utilization float64
		if disposable > 0 {
			utilization = spent / disposable * 100
			if utilization > 100 {
				utilization = 100
			}
		}

		ov.Budgets = append(ov.Budgets, UserBudget{
			DisplayName:        u.DisplayName,
			Cadence:            u.GoalCadence,
			DeclaredIncome:     u.DeclaredIncome,
			SavingsGoal:        u.SavingsGoal,
			Disposable:         disposable,
			IndividualSpent:    individual[u.DisplayName],
			SharedShare:        ov.SharedShare,
			TotalSpent:         spent,
			Remaining:          remaining,
			AccumulatedSavings: savings,
			UtilizationPercent: utilization,
		})
	}

	return ov
}

// Aggregator reads the repositories on every call.
type Aggregator struct {
	users    *repo.Users
	expenses *repo.Expenses
}

func NewAggregator(users *repo.Users, expenses *repo.Expenses) *Aggregator {
	return &Aggregator{users: users, expenses: expenses}
}

func (a *Aggregator) Overview(ctx context.Context) (Overview, error) {
	users, err := a.users.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	expenses, err := a.expenses.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Compute(users, expenses), nil
}
