package http

import (
	"net/http"

	"hogar/internal/core"
)

type shoppingRequest struct {
	Text  string `json:"text"`
	Owner string `json:"assignedUser"`
}

func (s *Server) handleListShopping(w http.ResponseWriter, r *http.Request) {
	items, err := s.shopping.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []core.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddShopping(w http.ResponseWriter, r *http.Request) {
	var req shoppingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	it, err := s.shopping.Add(r.Context(), sanitizeInput(req.Text), parseOwnerField(req.Owner))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleEditShopping(w http.ResponseWriter, r *http.Request) {
	var req shoppingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	it, err := s.shopping.EditText(r.Context(), r.PathValue("id"), sanitizeInput(req.Text))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleDeleteShopping(w http.ResponseWriter, r *http.Request) {
	if err := s.shopping.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleToggleShopping(w http.ResponseWriter, r *http.Request) {
	it, err := s.shopping.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleReassignShopping(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if err := s.shopping.Reassign(r.Context(), r.PathValue("id"), parseOwnerField(req.Owner)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
