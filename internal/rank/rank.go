// Package rank produces the household leaderboards. Both rankings use a
// stable sort: users with equal keys keep their registration order, which
// is the only tie-break the data defines.
package rank

import (
	"context"
	"sort"

	"hogar/internal/budget"
	"hogar/internal/core"
	"hogar/internal/ledger"
	"hogar/internal/repo"
)

// Entry is one leaderboard row.
type Entry struct {
	Position    int     `json:"position"`
	DisplayName string  `json:"displayName"`
	Points      int     `json:"points"`
	Savings     float64 `json:"savings"`
}

// ByPoints orders users by ledger balance, highest first.
func ByPoints(users []core.User, balances map[string]int) []Entry {
	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		entries = append(entries, Entry{
			DisplayName: u.DisplayName,
			Points:      balances[u.DisplayName],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	number(entries)
	return entries
}

// BySavings orders users by what they actually saved this cycle:
// max(0, disposable - totalSpent). Overspenders all rank at zero and
// keep their relative registration order.
func BySavings(budgets []budget.UserBudget) []Entry {
	entries := make([]Entry, 0, len(budgets))
	for _, b := range budgets {
		saved := b.Remaining
		if saved < 0 {
			saved = 0
		}
		entries = append(entries, Entry{
			DisplayName: b.DisplayName,
			Savings:     saved,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Savings > entries[j].Savings
	})
	number(entries)
	return entries
}

func number(entries []Entry) {
	for i := range entries {
		entries[i].Position = i + 1
	}
}

// Ranker recomputes both leaderboards from live state on every call.
type Ranker struct {
	users      *repo.Users
	ledger     *ledger.Ledger
	aggregator *budget.Aggregator
}

func NewRanker(users *repo.Users, l *ledger.Ledger, agg *budget.Aggregator) *Ranker {
	return &Ranker{users: users, ledger: l, aggregator: agg}
}

func (r *Ranker) RankByPoints(ctx context.Context) ([]Entry, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := r.ledger.Balances(ctx)
	if err != nil {
		return nil, err
	}
	return ByPoints(users, balances), nil
}

func (r *Ranker) RankBySavings(ctx context.Context) ([]Entry, error) {
	ov, err := r.aggregator.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return BySavings(ov.Budgets), nil
}
