package services

import (
	"context"
	"testing"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store/memory"
)

func TestSalaryUpdateRetiresAccumulatedRows(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	user := &core.User{ID: "u1", Email: "harish@budget.app", Name: "Harish", Role: core.RoleOwner, Active: true}
	if err := st.CreateUser(ctx, *user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewSalaryService(st, nil, log.Discard())

	// A sequence of updates must always leave exactly one salary row,
	// however many stale rows previous updates left behind.
	for _, cents := range []int64{420000, 300000} {
		if _, err := svc.Update(ctx, user, core.Money{Cents: cents}); err != nil {
			t.Fatalf("update to %d: %v", cents, err)
		}
	}

	res, err := svc.Update(ctx, user, core.Money{Cents: 450000})
	if err != nil {
		t.Fatalf("final update: %v", err)
	}
	if res.OldSalaryTotal.Cents != 300000 {
		t.Fatalf("old salary total = %d, want 300000", res.OldSalaryTotal.Cents)
	}
	if res.NewSalary.Cents != 450000 {
		t.Fatalf("new salary = %d, want 450000", res.NewSalary.Cents)
	}
	if len(res.CurrentSalaries) != 1 {
		t.Fatalf("current salaries = %d, want 1", len(res.CurrentSalaries))
	}
	if res.CurrentSalaries[0].Amount.Cents != 450000 {
		t.Fatalf("current salary = %d, want 450000", res.CurrentSalaries[0].Amount.Cents)
	}
	if res.CurrentSalaries[0].Name != "Harish" {
		t.Fatalf("salary name = %q, want Harish", res.CurrentSalaries[0].Name)
	}

	active, err := st.ListActiveSalaries(ctx)
	if err != nil {
		t.Fatalf("list salaries: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active salary rows = %d, want 1", len(active))
	}
}

func TestSalaryUpdateConvergesFromDuplicates(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	user := &core.User{ID: "u1", Name: "Harish", Role: core.RoleOwner, Active: true}
	_ = st.CreateUser(ctx, *user)

	// Simulate the corrupted state of several stale salary rows.
	for i, cents := range []int64{100000, 120000, 90000} {
		_ = st.CreateTransaction(ctx, core.Transaction{
			ID: string(rune('a' + i)), Type: core.Income,
			Amount: core.Money{Cents: cents}, Date: time.Now(), SalaryUserID: "u1",
		})
	}

	svc := NewSalaryService(st, nil, log.Discard())
	res, err := svc.Update(ctx, user, core.Money{Cents: 450000})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.OldSalaryTotal.Cents != 310000 {
		t.Fatalf("old salary total = %d, want 310000", res.OldSalaryTotal.Cents)
	}
	active, _ := st.ListActiveSalaries(ctx)
	if len(active) != 1 || active[0].Amount.Cents != 450000 {
		t.Fatalf("want single 450000 salary, got %+v", active)
	}
}

func TestSalaryUpdateRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	user := &core.User{ID: "u1", Name: "Harish", Role: core.RoleOwner, Active: true}
	_ = st.CreateUser(ctx, *user)

	svc := NewSalaryService(st, nil, log.Discard())
	for _, cents := range []int64{0, -100} {
		if _, err := svc.Update(ctx, user, core.Money{Cents: cents}); err != core.ErrInvalidAmount {
			t.Fatalf("amount %d: want ErrInvalidAmount, got %v", cents, err)
		}
	}
	if active, _ := st.ListActiveSalaries(ctx); len(active) != 0 {
		t.Fatalf("rejected update must not write, got %d rows", len(active))
	}
}
