package http

import (
	"fmt"
	"net/http"
	"time"
)

// handleDashboardStats serves the monthly aggregation, cached for a few
// minutes and invalidated by every write.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := intQuery(q.Get("year"), 0)
	month := intQuery(q.Get("month"), 0)

	key := fmt.Sprintf("stats:%d-%d", year, month)
	if cached, ok := s.statsCache.Get(key); ok {
		w.Header().Set("X-Cache", "hit")
		respondJSON(w, http.StatusOK, toDashboardView(cached))
		return
	}

	stats, err := s.dashboard.ComputeStats(r.Context(), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.statsCache.Set(key, stats)

	w.Header().Set("X-Cache", "miss")
	respondJSON(w, http.StatusOK, toDashboardView(stats))
}

func (s *Server) handleAgenda(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := intQuery(q.Get("days"), 30)
	var from time.Time
	if v := q.Get("from"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			respondError(w, r, badRequestf("invalid from date: %v", err))
			return
		}
		from = parsed
	}

	agenda, err := s.agenda.Compute(r.Context(), from, days)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAgendaView(agenda))
}
