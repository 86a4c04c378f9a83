package http

import (
	"net/http"

	"hogar/internal/budget"
	"hogar/internal/core"
	"hogar/internal/rank"
)

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	balances, err := s.ledger.Balances(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if balances == nil {
		balances = map[string]int{}
	}
	writeJSON(w, http.StatusOK, balances)
}

// budgetResponse rounds the full-precision engine values to two decimals
// for presentation.
type budgetResponse struct {
	UserCount   int              `json:"userCount"`
	SharedPool  float64          `json:"sharedPool"`
	SharedShare float64          `json:"sharedShare"`
	Budgets     []budgetLineBody `json:"budgets"`
}

type budgetLineBody struct {
	DisplayName        string  `json:"displayName"`
	Cadence            string  `json:"goalCadence"`
	DeclaredIncome     float64 `json:"declaredIncome"`
	SavingsGoal        float64 `json:"savingsGoal"`
	Disposable         float64 `json:"disposable"`
	IndividualSpent    float64 `json:"individualSpent"`
	SharedShare        float64 `json:"sharedShare"`
	TotalSpent         float64 `json:"totalSpent"`
	Remaining          float64 `json:"remaining"`
	AccumulatedSavings float64 `json:"accumulatedSavings"`
	UtilizationPercent float64 `json:"utilizationPercent"`
}

func renderBudget(ov budget.Overview) budgetResponse {
	out := budgetResponse{
		UserCount:   ov.UserCount,
		SharedPool:  core.Round2(ov.SharedPool),
		SharedShare: core.Round2(ov.SharedShare),
		Budgets:     make([]budgetLineBody, 0, len(ov.Budgets)),
	}
	for _, b := range ov.Budgets {
		out.Budgets = append(out.Budgets, budgetLineBody{
			DisplayName:        b.DisplayName,
			Cadence:            string(b.Cadence),
			DeclaredIncome:     core.Round2(b.DeclaredIncome),
			SavingsGoal:        core.Round2(b.SavingsGoal),
			Disposable:         core.Round2(b.Disposable),
			IndividualSpent:    core.Round2(b.IndividualSpent),
			SharedShare:        core.Round2(b.SharedShare),
			TotalSpent:         core.Round2(b.TotalSpent),
			Remaining:          core.Round2(b.Remaining),
			AccumulatedSavings: core.Round2(b.AccumulatedSavings),
			UtilizationPercent: core.Round2(b.UtilizationPercent),
		})
	}
	return out
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	overview, err := s.budget.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, renderBudget(overview))
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	var (
		entries []rank.Entry
		err     error
	)
	switch by := r.URL.Query().Get("by"); by {
	case "", "points":
		entries, err = s.ranker.RankByPoints(r.Context())
	case "savings":
		entries, err = s.ranker.RankBySavings(r.Context())
	default:
		s.badRequest(w, "unknown ranking, want points or savings")
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []rank.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
