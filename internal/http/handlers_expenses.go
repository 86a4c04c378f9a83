package http

import (
	"net/http"

	"hogar/internal/core"
)

type expenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Owner       string `json:"assignedUser"`
	IsShared    bool   `json:"isShared"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		s.badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	e, err := s.expenses.Add(r.Context(), sanitizeInput(req.Description), req.Amount, date, parseOwnerField(req.Owner), req.IsShared)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleReassignExpense(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	e, err := s.expenses.Reassign(r.Context(), r.PathValue("id"), parseOwnerField(req.Owner))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
