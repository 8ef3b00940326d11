package services

import (
	"context"
	"testing"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store/memory"
)

func newBudgetFixture(t *testing.T) (*BudgetService, *memory.Store, *core.User) {
	t.Helper()
	st := memory.New()
	if err := st.CreateCategory(context.Background(), core.Category{ID: "c1", Name: "Groceries", Type: core.Expense}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	actor := &core.User{ID: "u1", Name: "Harish", Role: core.RoleOwner, Active: true}
	svc := NewBudgetService(st, nil, log.Discard())
	return svc, st, actor
}

func TestBudgetCreateDefaults(t *testing.T) {
	svc, st, actor := newBudgetFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, actor, core.Budget{
		CategoryID:  "c1",
		Month:       3,
		Year:        2025,
		LimitAmount: core.Money{Cents: 40000},
		SpentAmount: core.Money{Cents: 9999},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" {
		t.Fatal("expected generated id")
	}
	if b.SpentAmount.Cents != 0 {
		t.Fatalf("spent = %d, want 0 on a fresh budget", b.SpentAmount.Cents)
	}

	records, err := st.ListAudit(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(records) != 1 || records[0].Action != "CREATE" || records[0].Entity != "budget" {
		t.Fatalf("audit = %+v, want one budget CREATE", records)
	}
}

func TestBudgetCreateValidation(t *testing.T) {
	svc, _, actor := newBudgetFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		budget core.Budget
	}{
		{"missing category", core.Budget{Month: 3, Year: 2025, LimitAmount: core.Money{Cents: 100}}},
		{"unknown category", core.Budget{CategoryID: "nope", Month: 3, Year: 2025, LimitAmount: core.Money{Cents: 100}}},
		{"zero month", core.Budget{CategoryID: "c1", Month: 0, Year: 2025, LimitAmount: core.Money{Cents: 100}}},
		{"month too large", core.Budget{CategoryID: "c1", Month: 13, Year: 2025, LimitAmount: core.Money{Cents: 100}}},
		{"zero limit", core.Budget{CategoryID: "c1", Month: 3, Year: 2025}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, actor, tc.budget); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBudgetListFilters(t *testing.T) {
	svc, _, actor := newBudgetFixture(t)
	ctx := context.Background()

	for _, b := range []core.Budget{
		{CategoryID: "c1", Month: 3, Year: 2025, LimitAmount: core.Money{Cents: 40000}},
		{CategoryID: "c1", Month: 4, Year: 2025, LimitAmount: core.Money{Cents: 25000}},
		{CategoryID: "c1", Month: 3, Year: 2024, LimitAmount: core.Money{Cents: 30000}},
	} {
		if _, err := svc.Create(ctx, actor, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	march2025, err := svc.List(ctx, 3, 2025)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(march2025) != 1 || march2025[0].LimitAmount.Cents != 40000 {
		t.Fatalf("march 2025 = %+v, want single 40000 budget", march2025)
	}

	march, err := svc.List(ctx, 3, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(march) != 2 {
		t.Fatalf("march budgets = %d, want 2 across years", len(march))
	}

	all, err := svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all budgets = %d, want 3", len(all))
	}
}
