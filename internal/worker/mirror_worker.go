// Package worker keeps the household calendar in step with the bill
// registry. Every active bill gets a mirrored all-day event on its next
// due date.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/amqp"
	"bilancio/internal/core"
	"bilancio/internal/metrics"
	"bilancio/internal/services"
	"bilancio/internal/store"
)

const billSource = "bill"

// Mirrored events remind the household a day ahead of the due date.
const defaultReminderMinutes = 24 * 60

type MirrorWorker struct {
	store store.Store
	now   func() time.Time
}

func NewMirrorWorker(st store.Store) *MirrorWorker {
	return &MirrorWorker{store: st, now: time.Now}
}

// HandleChange processes a single change notification from AMQP.
func (w *MirrorWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	if msg.Entity != billSource {
		return nil
	}

	slog.InfoContext(ctx, "Processing bill change",
		"bill_id", msg.EntityID,
		"action", msg.Action)

	if msg.Action == "deleted" {
		return w.removeMirror(ctx, msg.EntityID)
	}

	bill, err := w.store.GetBill(ctx, msg.EntityID)
	if errors.Is(err, core.ErrNotFound) {
		// Deleted between publish and consume.
		return w.removeMirror(ctx, msg.EntityID)
	}
	if err != nil {
		return fmt.Errorf("get bill: %w", err)
	}
	return w.mirrorBill(ctx, *bill)
}

// RefreshAll reconciles every bill's mirrored event. Backup mechanism
// in case AMQP messages are lost.
func (w *MirrorWorker) RefreshAll(ctx context.Context) error {
	bills, err := w.store.ListBills(ctx, false)
	if err != nil {
		return fmt.Errorf("list bills: %w", err)
	}

	var mirrored, removed, failed int
	for _, b := range bills {
		if err := w.mirrorBill(ctx, b); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror bill", "bill_id", b.ID, "error", err)
			failed++
			continue
		}
		if b.Active {
			mirrored++
		} else {
			removed++
		}
	}

	slog.InfoContext(ctx, "Calendar mirror refresh completed",
		"mirrored", mirrored,
		"removed", removed,
		"errors", failed)
	return nil
}

// mirrorBill upserts the calendar entry for an active bill and removes
// it for an inactive one.
func (w *MirrorWorker) mirrorBill(ctx context.Context, b core.Bill) error {
	if !b.Active {
		return w.removeMirror(ctx, b.ID)
	}
	if b.DueDay < 1 || b.DueDay > 31 {
		return fmt.Errorf("bill %s has invalid due day %d", b.ID, b.DueDay)
	}

	cal, err := w.store.DefaultCalendar(ctx)
	if err != nil {
		return fmt.Errorf("default calendar: %w", err)
	}

	due := services.NextDueDate(w.now().UTC(), b.DueDay)
	notes := fmt.Sprintf("Expected amount: %.2f EUR", b.ExpectedAmount.Euros())
	if b.Autopay {
		notes += " (autopay)"
	}

	existing, err := w.store.GetEventBySource(ctx, billSource, b.ID)
	if errors.Is(err, core.ErrNotFound) {
		metrics.MirroredEventsTotal.Inc()
		return w.store.CreateEvent(ctx, core.Event{
			ID:         uuid.NewString(),
			CalendarID: cal.ID,
			Title:      fmt.Sprintf("%s Due", b.Name),
			Notes:      notes,
			Start:      due,
			AllDay:     true,
			Tags:       []string{"bill"},
			Reminders:  []int{defaultReminderMinutes},
			SourceType: billSource,
			SourceID:   b.ID,
			CreatedAt:  w.now().UTC(),
		})
	}
	if err != nil {
		return fmt.Errorf("lookup mirrored event: %w", err)
	}

	existing.Title = fmt.Sprintf("%s Due", b.Name)
	existing.Notes = notes
	existing.Start = due
	existing.CalendarID = cal.ID
	return w.store.UpdateEvent(ctx, *existing)
}

func (w *MirrorWorker) removeMirror(ctx context.Context, billID string) error {
	ev, err := w.store.GetEventBySource(ctx, billSource, billID)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup mirrored event: %w", err)
	}
	if err := w.store.DeleteEvent(ctx, ev.ID); err != nil && !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("delete mirrored event: %w", err)
	}
	return nil
}
