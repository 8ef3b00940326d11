package http

import (
	"encoding/json"
	"net/http"

	"bilancio/internal/core"
	"bilancio/internal/services"
)

type billRequest struct {
	Name           string   `json:"name"`
	Provider       *string  `json:"provider"`
	CategoryID     *string  `json:"category_id"`
	AccountID      *string  `json:"account_id"`
	DueDay         *int     `json:"due_day"`
	ExpectedAmount *float64 `json:"expected_amount"`
	Autopay        *bool    `json:"autopay"`
	Active         *bool    `json:"is_active"`
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") == ""
	bills, err := s.bills.List(r.Context(), activeOnly)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]billView, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillView(b))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	b, err := s.bills.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBillView(*b))
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}

	b := core.Bill{Name: req.Name}
	if req.Provider != nil {
		b.Provider = *req.Provider
	}
	if req.CategoryID != nil {
		b.CategoryID = *req.CategoryID
	}
	if req.AccountID != nil {
		b.AccountID = *req.AccountID
	}
	if req.DueDay != nil {
		b.DueDay = *req.DueDay
	}
	if req.ExpectedAmount != nil {
		b.ExpectedAmount = core.FromEuros(*req.ExpectedAmount)
	}
	if req.Autopay != nil {
		b.Autopay = *req.Autopay
	}

	created, err := s.bills.Create(r.Context(), currentUser(r), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondJSON(w, http.StatusCreated, toBillView(*created))
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}

	patch := services.BillPatch{
		Provider:   req.Provider,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		DueDay:     req.DueDay,
		Autopay:    req.Autopay,
		Active:     req.Active,
	}
	if req.Name != "" {
		patch.Name = &req.Name
	}
	if req.ExpectedAmount != nil {
		amount := core.FromEuros(*req.ExpectedAmount)
		patch.ExpectedAmount = &amount
	}

	updated, err := s.bills.Update(r.Context(), currentUser(r), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondJSON(w, http.StatusOK, toBillView(*updated))
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.bills.Delete(r.Context(), currentUser(r), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondJSON(w, http.StatusOK, map[string]string{"message": "Bill deleted"})
}
