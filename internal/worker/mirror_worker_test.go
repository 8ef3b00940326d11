package worker

import (
	"context"
	"strings"
	"testing"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/core"
	"bilancio/internal/store/memory"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
}

func TestHandleChangeCreatesMirroredEvent(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	w := NewMirrorWorker(st)
	w.now = fixedNow

	bill := core.Bill{ID: "b1", Name: "Electricity", Recurrence: core.Monthly, DueDay: 15, ExpectedAmount: core.Money{Cents: 250000}, Active: true}
	_ = st.CreateBill(ctx, bill)

	if err := w.HandleChange(ctx, &amqp.ChangeMessage{Entity: "bill", EntityID: "b1", Action: "created"}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	ev, err := st.GetEventBySource(ctx, "bill", "b1")
	if err != nil {
		t.Fatalf("mirrored event missing: %v", err)
	}
	if ev.Title != "Electricity Due" {
		t.Fatalf("title = %q, want %q", ev.Title, "Electricity Due")
	}
	want := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !ev.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", ev.Start, want)
	}
	if !ev.AllDay {
		t.Fatal("mirrored event must be all-day")
	}
	if !strings.Contains(ev.Notes, "2500.00") {
		t.Fatalf("notes = %q, want expected amount", ev.Notes)
	}
	if len(ev.Reminders) != 1 || ev.Reminders[0] != 1440 {
		t.Fatalf("reminders = %v, want the day-before default [1440]", ev.Reminders)
	}
}

func TestHandleChangeUpdatesInsteadOfDuplicating(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	w := NewMirrorWorker(st)
	w.now = fixedNow

	bill := core.Bill{ID: "b1", Name: "Internet", Recurrence: core.Monthly, DueDay: 20, ExpectedAmount: core.Money{Cents: 4999}, Active: true}
	_ = st.CreateBill(ctx, bill)

	for i := 0; i < 2; i++ {
		if err := w.HandleChange(ctx, &amqp.ChangeMessage{Entity: "bill", EntityID: "b1", Action: "updated"}); err != nil {
			t.Fatalf("handle %d: %v", i, err)
		}
	}

	events, _ := st.ListEvents(ctx, time.Time{}, time.Time{})
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	// A due day change moves the mirrored event.
	bill.DueDay = 25
	_ = st.UpdateBill(ctx, bill)
	if err := w.HandleChange(ctx, &amqp.ChangeMessage{Entity: "bill", EntityID: "b1", Action: "updated"}); err != nil {
		t.Fatalf("handle after update: %v", err)
	}
	ev, _ := st.GetEventBySource(ctx, "bill", "b1")
	want := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)
	if !ev.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", ev.Start, want)
	}
}

func TestHandleChangeRemovesEventForDeletedBill(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	w := NewMirrorWorker(st)
	w.now = fixedNow

	_ = st.CreateBill(ctx, core.Bill{ID: "b1", Name: "Gym", Recurrence: core.Monthly, DueDay: 1, ExpectedAmount: core.Money{Cents: 3000}, Active: true})
	_ = w.HandleChange(ctx, &amqp.ChangeMessage{Entity: "bill", EntityID: "b1", Action: "created"})
	_ = st.DeleteBill(ctx, "b1")

	if err := w.HandleChange(ctx, &amqp.ChangeMessage{Entity: "bill", EntityID: "b1", Action: "deleted"}); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if _, err := st.GetEventBySource(ctx, "bill", "b1"); err != core.ErrNotFound {
		t.Fatalf("mirrored event still present: %v", err)
	}
}

func TestRefreshAllMirrorsActiveAndPrunesInactive(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	w := NewMirrorWorker(st)
	w.now = fixedNow

	_ = st.CreateBill(ctx, core.Bill{ID: "b1", Name: "Rent", Recurrence: core.Monthly, DueDay: 1, ExpectedAmount: core.Money{Cents: 150000}, Active: true})
	inactive := core.Bill{ID: "b2", Name: "Old Gym", Recurrence: core.Monthly, DueDay: 5, ExpectedAmount: core.Money{Cents: 3000}, Active: true}
	_ = st.CreateBill(ctx, inactive)

	if err := w.RefreshAll(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if events, _ := st.ListEvents(ctx, time.Time{}, time.Time{}); len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	inactive.Active = false
	_ = st.UpdateBill(ctx, inactive)
	if err := w.RefreshAll(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := st.GetEventBySource(ctx, "bill", "b2"); err != core.ErrNotFound {
		t.Fatalf("inactive bill still mirrored: %v", err)
	}
	if _, err := st.GetEventBySource(ctx, "bill", "b1"); err != nil {
		t.Fatalf("active bill lost its mirror: %v", err)
	}
}

func TestHandleChangeIgnoresOtherEntities(t *testing.T) {
	st := memory.New()
	w := NewMirrorWorker(st)
	if err := w.HandleChange(context.Background(), &amqp.ChangeMessage{Entity: "transaction", EntityID: "t1", Action: "created"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
}
