package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/store"
)

// AgendaService merges calendar events and bill due dates into a single
// chronological window.
type AgendaService struct {
	store store.Store
	now   func() time.Time
}

func NewAgendaService(st store.Store) *AgendaService {
	return &AgendaService{store: st, now: time.Now}
}

// Compute returns everything happening in the next `days` days starting
// at from (today when zero). Events and bills are also returned as
// separate lists for callers that render them apart.
func (s *AgendaService) Compute(ctx context.Context, from time.Time, days int) (*core.Agenda, error) {
	if days <= 0 {
		days = 30
	}
	if from.IsZero() {
		from = s.now().UTC()
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	events, err := s.store.ListEvents(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	bills, err := s.store.ListBills(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	var upcoming []core.UpcomingBill
	for _, b := range bills {
		if b.DueDay < 1 || b.DueDay > 31 {
			continue
		}
		due := NextDueDate(from, b.DueDay)
		if due.Before(end) {
			upcoming = append(upcoming, core.UpcomingBill{Bill: b, DueDate: due})
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		a, b := upcoming[i], upcoming[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.Bill.Name < b.Bill.Name
	})

	agenda := &core.Agenda{
		From:          start,
		Days:          days,
		Events:        events,
		UpcomingBills: upcoming,
	}

	items := make([]core.AgendaItem, 0, len(events)+len(upcoming))
	for i := range events {
		e := &events[i]
		items = append(items, core.AgendaItem{Date: dayOf(e.Start), Event: e})
	}
	for i := range upcoming {
		b := &upcoming[i]
		items = append(items, core.AgendaItem{Date: dayOf(b.DueDate), Bill: b})
	}
	// Events sort before bill due dates on the same day.
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].Event != nil && items[j].Event == nil
	})
	agenda.Items = items

	return agenda, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
