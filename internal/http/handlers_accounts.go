package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

type accountRequest struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Currency       string  `json:"currency"`
	OpeningBalance float64 `json:"opening_balance"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountView(a))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}
	if req.Name == "" {
		respondError(w, r, core.ErrEmptyName)
		return
	}
	if req.Currency == "" {
		req.Currency = "EUR"
	}

	opening := core.FromEuros(req.OpeningBalance)
	a := core.Account{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Type:           req.Type,
		Currency:       req.Currency,
		OpeningBalance: opening,
		CurrentBalance: opening,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateAccount(r.Context(), a); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAccountView(a))
}
