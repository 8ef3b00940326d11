package services

import (
	"context"
	"testing"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/store/memory"
)

func TestAgendaMergesEventsAndBills(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	from := time.Date(2025, time.March, 20, 9, 0, 0, 0, time.UTC)

	_ = st.CreateEvent(ctx, core.Event{ID: "e1", CalendarID: "c1", Title: "Dentist", Start: time.Date(2025, time.March, 25, 15, 0, 0, 0, time.UTC)})
	_ = st.CreateBill(ctx, core.Bill{ID: "b1", Name: "Internet", Recurrence: core.Monthly, DueDay: 25, ExpectedAmount: core.Money{Cents: 4999}, Active: true})
	// Due day already passed this month, rolls into April.
	_ = st.CreateBill(ctx, core.Bill{ID: "b2", Name: "Rent", Recurrence: core.Monthly, DueDay: 3, ExpectedAmount: core.Money{Cents: 150000}, Active: true})

	svc := NewAgendaService(st)
	agenda, err := svc.Compute(ctx, from, 30)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if len(agenda.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(agenda.Events))
	}
	if len(agenda.UpcomingBills) != 2 {
		t.Fatalf("bills = %d, want 2", len(agenda.UpcomingBills))
	}
	wantRent := time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC)
	if !agenda.UpcomingBills[1].DueDate.Equal(wantRent) {
		t.Fatalf("rent due = %v, want %v", agenda.UpcomingBills[1].DueDate, wantRent)
	}

	if len(agenda.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(agenda.Items))
	}
	// March 25th holds both an event and a bill: the event comes first.
	if agenda.Items[0].Event == nil || agenda.Items[0].Event.Title != "Dentist" {
		t.Fatalf("first item = %+v, want Dentist event", agenda.Items[0])
	}
	if agenda.Items[1].Bill == nil || agenda.Items[1].Bill.Bill.ID != "b1" {
		t.Fatalf("second item = %+v, want Internet bill", agenda.Items[1])
	}
	if agenda.Items[2].Bill == nil || agenda.Items[2].Bill.Bill.ID != "b2" {
		t.Fatalf("third item = %+v, want Rent bill", agenda.Items[2])
	}
}

func TestAgendaWindowExcludesFarBills(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	_ = st.CreateBill(ctx, core.Bill{ID: "b1", Name: "Rent", Recurrence: core.Monthly, DueDay: 20, ExpectedAmount: core.Money{Cents: 100}, Active: true})

	svc := NewAgendaService(st)
	agenda, err := svc.Compute(ctx, from, 7)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(agenda.UpcomingBills) != 0 {
		t.Fatalf("bills = %+v, want none inside a 7 day window", agenda.UpcomingBills)
	}
}

func TestAgendaDefaultsDays(t *testing.T) {
	st := memory.New()
	svc := NewAgendaService(st)
	agenda, err := svc.Compute(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 0)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if agenda.Days != 30 {
		t.Fatalf("days = %d, want 30", agenda.Days)
	}
}
