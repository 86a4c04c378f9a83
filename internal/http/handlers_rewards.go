package http

import (
	"net/http"

	"hogar/internal/core"
)

type rewardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
}

func (s *Server) handleListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := s.rewards.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (s *Server) handleAddReward(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	rw, err := s.rewards.AddCustom(r.Context(), sanitizeInput(req.Title), sanitizeInput(req.Description), req.Cost)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rw)
}

func (s *Server) handleDeleteReward(w http.ResponseWriter, r *http.Request) {
	if err := s.rewards.RemoveCustom(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type redeemRequest struct {
	User string `json:"user"`
}

func (s *Server) handleRedeemReward(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	user := sanitizeInput(req.User)
	if user == "" {
		s.badRequest(w, "user is required")
		return
	}
	rec, err := s.rewards.Redeem(r.Context(), user, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.rewards.History(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []core.RedemptionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.rewards.ClearHistory(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
