package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/store"
)

type transactionRequest struct {
	Type        string  `json:"type"`
	AccountID   string  `json:"account_id"`
	CategoryID  string  `json:"category_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	BillID      string  `json:"bill_id"`
	Recurring   bool    `json:"is_recurring"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}

	t := core.Transaction{
		Type:        core.TransactionType(req.Type),
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      core.FromEuros(req.Amount),
		Description: req.Description,
		BillID:      req.BillID,
		Recurring:   req.Recurring,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			respondError(w, r, badRequestf("invalid date: %v", err))
			return
		}
		t.Date = date
	}

	created, err := s.transactions.Create(r.Context(), currentUser(r), t)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondJSON(w, http.StatusCreated, toTransactionView(*created))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.TransactionFilter{
		Type:       core.TransactionType(q.Get("type")),
		AccountID:  q.Get("account_id"),
		CategoryID: q.Get("category_id"),
	}
	if v := q.Get("from"); v != "" {
		date, err := parseDate(v)
		if err != nil {
			respondError(w, r, badRequestf("invalid from date: %v", err))
			return
		}
		f.From = date
	}
	if v := q.Get("to"); v != "" {
		date, err := parseDate(v)
		if err != nil {
			respondError(w, r, badRequestf("invalid to date: %v", err))
			return
		}
		f.To = date
	}
	f.Limit = intQuery(q.Get("limit"), 100)
	f.Offset = intQuery(q.Get("offset"), 0)

	txns, err := s.transactions.List(r.Context(), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]transactionView, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionView(t))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), currentUser(r), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

// parseDate accepts both bare dates and RFC 3339 timestamps.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func intQuery(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
