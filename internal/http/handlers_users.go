package http

import (
	"net/http"

	"hogar/internal/services"
)

type registerUserRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Income      string `json:"declaredIncome"`
	SavingsGoal string `json:"savingsGoal"`
	Cadence     string `json:"goalCadence"`
}

type userResponse struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"displayName"`
	Email          string  `json:"email"`
	DeclaredIncome float64 `json:"declaredIncome"`
	SavingsGoal    float64 `json:"savingsGoal"`
	GoalCadence    string  `json:"goalCadence"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			ID:             u.ID,
			DisplayName:    u.DisplayName,
			Email:          u.Email,
			DeclaredIncome: u.DeclaredIncome,
			SavingsGoal:    u.SavingsGoal,
			GoalCadence:    string(u.GoalCadence),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	u, err := s.users.Register(r.Context(), services.RegistrationInput{
		DisplayName: sanitizeInput(req.DisplayName),
		Email:       sanitizeInput(req.Email),
		Password:    req.Password,
		RawIncome:   req.Income,
		RawGoal:     req.SavingsGoal,
		Cadence:     req.Cadence,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{
		ID:             u.ID,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		DeclaredIncome: u.DeclaredIncome,
		SavingsGoal:    u.SavingsGoal,
		GoalCadence:    string(u.GoalCadence),
	})
}

type updateUserRequest struct {
	Income      string `json:"declaredIncome"`
	SavingsGoal string `json:"savingsGoal"`
	Cadence     string `json:"goalCadence"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	u, err := s.users.UpdateBudget(r.Context(), r.PathValue("id"), req.Income, req.SavingsGoal, req.Cadence)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		ID:             u.ID,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		DeclaredIncome: u.DeclaredIncome,
		SavingsGoal:    u.SavingsGoal,
		GoalCadence:    string(u.GoalCadence),
	})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
