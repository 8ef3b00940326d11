package services

import (
	"context"
	"testing"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store/memory"
)

func newBillFixture(t *testing.T) (*BillService, *memory.Store, *core.User) {
	t.Helper()
	st := memory.New()
	actor := &core.User{ID: "u1", Name: "Harish", Role: core.RoleOwner, Active: true}
	svc := NewBillService(st, nil, log.Discard())
	return svc, st, actor
}

func TestBillCreateDefaults(t *testing.T) {
	svc, _, actor := newBillFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, actor, core.Bill{
		Name:           "Electricity",
		Provider:       "BESCOM",
		DueDay:         5,
		ExpectedAmount: core.Money{Cents: 250000},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" {
		t.Fatal("expected generated id")
	}
	if !b.Active {
		t.Fatal("new bill must be active")
	}
	if b.Recurrence != core.Monthly {
		t.Fatalf("recurrence = %q, want monthly", b.Recurrence)
	}
}

func TestBillCreateValidation(t *testing.T) {
	svc, _, actor := newBillFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		bill core.Bill
		want error
	}{
		{"zero due day", core.Bill{Name: "Rent", DueDay: 0, ExpectedAmount: core.Money{Cents: 100}}, core.ErrInvalidDueDay},
		{"due day too large", core.Bill{Name: "Rent", DueDay: 32, ExpectedAmount: core.Money{Cents: 100}}, core.ErrInvalidDueDay},
		{"zero amount", core.Bill{Name: "Rent", DueDay: 1}, core.ErrInvalidAmount},
		{"empty name", core.Bill{DueDay: 1, ExpectedAmount: core.Money{Cents: 100}}, core.ErrEmptyName},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, actor, tc.bill); err != tc.want {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBillAmountOnlyPatchKeepsDueDay(t *testing.T) {
	svc, _, actor := newBillFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, actor, core.Bill{Name: "Internet", DueDay: 12, ExpectedAmount: core.Money{Cents: 99900}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	amount := core.Money{Cents: 109900}
	updated, err := svc.Update(ctx, actor, b.ID, BillPatch{ExpectedAmount: &amount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ExpectedAmount.Cents != 109900 {
		t.Fatalf("amount = %d, want 109900", updated.ExpectedAmount.Cents)
	}
	if updated.DueDay != 12 {
		t.Fatalf("due day = %d, want 12 (must not change)", updated.DueDay)
	}
	if updated.Name != "Internet" {
		t.Fatalf("name = %q, want Internet", updated.Name)
	}
}

func TestBillPatchValidation(t *testing.T) {
	svc, _, actor := newBillFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, actor, core.Bill{Name: "Internet", DueDay: 12, ExpectedAmount: core.Money{Cents: 99900}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := 40
	if _, err := svc.Update(ctx, actor, b.ID, BillPatch{DueDay: &bad}); err != core.ErrInvalidDueDay {
		t.Fatalf("want ErrInvalidDueDay, got %v", err)
	}

	// The stored bill is untouched after a rejected patch.
	kept, err := svc.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept.DueDay != 12 {
		t.Fatalf("due day = %d after rejected patch, want 12", kept.DueDay)
	}
}

func TestBillUpdateUnknownID(t *testing.T) {
	svc, _, actor := newBillFixture(t)
	name := "X"
	if _, err := svc.Update(context.Background(), actor, "missing", BillPatch{Name: &name}); err != core.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestBillDeleteRemovesMirroredEvent(t *testing.T) {
	svc, st, actor := newBillFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, actor, core.Bill{Name: "Rent", DueDay: 1, ExpectedAmount: core.Money{Cents: 1500000}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = st.CreateEvent(ctx, core.Event{ID: "e1", CalendarID: "c1", Title: "Rent Due", Start: NextDueDate(time.Now(), b.DueDay), SourceType: "bill", SourceID: b.ID})

	if err := svc.Delete(ctx, actor, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetBill(ctx, b.ID); err != core.ErrNotFound {
		t.Fatalf("bill still present: %v", err)
	}
	if _, err := st.GetEventBySource(ctx, "bill", b.ID); err != core.ErrNotFound {
		t.Fatalf("mirrored event still present: %v", err)
	}
}
