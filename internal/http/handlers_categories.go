package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

type categoryRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Recurring bool   `json:"is_recurring"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("all") != ""
	cats, err := s.store.ListCategories(r.Context(), includeDeleted)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryView(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}

	c := core.Category{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Type:      core.TransactionType(req.Type),
		Recurring: req.Recurring,
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.CreateCategory(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondJSON(w, http.StatusCreated, toCategoryView(c))
}

// handleDeleteCategory soft-deletes: transactions keep their category
// reference and fall back to Miscellaneous in aggregations.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SoftDeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
