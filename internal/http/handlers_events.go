package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

type eventRequest struct {
	CalendarID string   `json:"calendar_id"`
	Title      string   `json:"title"`
	Notes      string   `json:"notes"`
	Location   string   `json:"location"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	AllDay     bool     `json:"all_day"`
	Tags       []string `json:"tags"`
	Reminders  []int    `json:"reminder_minutes"`
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from, to time.Time
	var err error
	if v := q.Get("from"); v != "" {
		if from, err = parseDate(v); err != nil {
			respondError(w, r, badRequestf("invalid from date: %v", err))
			return
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err = parseDate(v); err != nil {
			respondError(w, r, badRequestf("invalid to date: %v", err))
			return
		}
	}

	events, err := s.store.ListEvents(r.Context(), from, to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, toEventView(e))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}

	e := core.Event{
		ID:         uuid.NewString(),
		CalendarID: req.CalendarID,
		Title:      req.Title,
		Notes:      req.Notes,
		Location:   req.Location,
		AllDay:     req.AllDay,
		Tags:       req.Tags,
		Reminders:  req.Reminders,
		CreatedBy:  currentUser(r).ID,
		CreatedAt:  time.Now().UTC(),
	}
	if req.Start != "" {
		start, err := parseDate(req.Start)
		if err != nil {
			respondError(w, r, badRequestf("invalid start: %v", err))
			return
		}
		e.Start = start
	}
	if req.End != "" {
		end, err := parseDate(req.End)
		if err != nil {
			respondError(w, r, badRequestf("invalid end: %v", err))
			return
		}
		e.End = end
	}
	if e.End.IsZero() {
		e.End = e.Start
	}
	if e.CalendarID == "" {
		cal, err := s.store.DefaultCalendar(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		e.CalendarID = cal.ID
	}

	if err := e.Validate(); err != nil {
		respondError(w, r, badRequestf("%v", err))
		return
	}
	if err := s.store.CreateEvent(r.Context(), e); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toEventView(e))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}
	if req.Title != "" {
		e.Title = req.Title
	}
	if req.Notes != "" {
		e.Notes = req.Notes
	}
	if req.Location != "" {
		e.Location = req.Location
	}
	if req.Start != "" {
		start, err := parseDate(req.Start)
		if err != nil {
			respondError(w, r, badRequestf("invalid start: %v", err))
			return
		}
		e.Start = start
	}
	if req.End != "" {
		end, err := parseDate(req.End)
		if err != nil {
			respondError(w, r, badRequestf("invalid end: %v", err))
			return
		}
		e.End = end
	}
	if req.Tags != nil {
		e.Tags = req.Tags
	}
	if req.Reminders != nil {
		e.Reminders = req.Reminders
	}

	if err := e.Validate(); err != nil {
		respondError(w, r, badRequestf("%v", err))
		return
	}
	if err := s.store.UpdateEvent(r.Context(), *e); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toEventView(*e))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

type calendarRequest struct {
	Name  string `json:"name"`
	Scope string `json:"scope"`
	Color string `json:"color"`
}

func (s *Server) handleListCalendars(w http.ResponseWriter, r *http.Request) {
	cals, err := s.store.ListCalendars(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]calendarView, 0, len(cals))
	for _, c := range cals {
		out = append(out, toCalendarView(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCalendar(w http.ResponseWriter, r *http.Request) {
	var req calendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, badRequestf("invalid request body"))
		return
	}
	if req.Name == "" {
		respondError(w, r, core.ErrEmptyName)
		return
	}
	if req.Scope == "" {
		req.Scope = "personal"
	}

	c := core.Calendar{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Scope:       req.Scope,
		OwnerUserID: currentUser(r).ID,
		Color:       req.Color,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateCalendar(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCalendarView(c))
}
