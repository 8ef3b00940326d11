package http

import (
	"net/http"

	"bilancio/internal/core"
)

// handleListAuditLogs is restricted to the household owner.
func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	if currentUser(r).Role != core.RoleOwner {
		respondError(w, r, core.ErrForbidden)
		return
	}

	q := r.URL.Query()
	limit := intQuery(q.Get("limit"), 100)
	offset := intQuery(q.Get("offset"), 0)

	records, err := s.store.ListAudit(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]auditView, 0, len(records))
	for _, rec := range records {
		out = append(out, toAuditView(rec))
	}
	respondJSON(w, http.StatusOK, out)
}
