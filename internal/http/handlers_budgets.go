package http

import (
	"encoding/json"
	"net/http"

	"bilancio/internal/core"
)

type budgetRequest struct {
	CategoryID  string  `json:"category_id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	LimitAmount float64 `json:"limit_amount"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month := intQuery(q.Get("month"), 0)
	year := intQuery(q.Get("year"), 0)
	if month > 12 {
		respondError(w, r, badRequestf("month must be between 1 and 12"))
		return
	}

	budgets, err := s.budgets.List(r.Context(), month, year)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetView(b))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}

	b := core.Budget{
		CategoryID:  req.CategoryID,
		Month:       req.Month,
		Year:        req.Year,
		LimitAmount: core.FromEuros(req.LimitAmount),
	}
	if err := b.Validate(); err != nil {
		respondError(w, r, badRequestf("%v", err))
		return
	}
	created, err := s.budgets.Create(r.Context(), currentUser(r), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toBudgetView(*created))
}
