package memory

import (
	"context"
	"testing"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/store"
)

func TestReplaceSalaryRetiresPrevious(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := core.Transaction{ID: "t1", Type: core.Income, Amount: core.Money{Cents: 420000}, Date: time.Now(), SalaryUserID: "u1"}
	second := core.Transaction{ID: "t2", Type: core.Income, Amount: core.Money{Cents: 300000}, Date: time.Now(), SalaryUserID: "u1"}
	if err := s.CreateTransaction(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateTransaction(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	next := core.Transaction{ID: "t3", Type: core.Income, Amount: core.Money{Cents: 450000}, Date: time.Now(), SalaryUserID: "u1"}
	retired, err := s.ReplaceSalary(ctx, "u1", next)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if retired != 720000 {
		t.Fatalf("retired = %d, want 720000", retired)
	}

	active, err := s.ListActiveSalaries(ctx)
	if err != nil {
		t.Fatalf("list salaries: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active salaries = %d, want 1", len(active))
	}
	if active[0].Amount.Cents != 450000 {
		t.Fatalf("salary amount = %d, want 450000", active[0].Amount.Cents)
	}
}

func TestReplaceSalaryLeavesOtherUsersAlone(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.CreateTransaction(ctx, core.Transaction{ID: "a", Type: core.Income, Amount: core.Money{Cents: 100}, Date: time.Now(), SalaryUserID: "u1"})
	_ = s.CreateTransaction(ctx, core.Transaction{ID: "b", Type: core.Income, Amount: core.Money{Cents: 200}, Date: time.Now(), SalaryUserID: "u2"})

	if _, err := s.ReplaceSalary(ctx, "u1", core.Transaction{ID: "c", Type: core.Income, Amount: core.Money{Cents: 300}, Date: time.Now(), SalaryUserID: "u1"}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	other, err := s.GetTransaction(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if other.Amount.Cents != 200 {
		t.Fatalf("other user's salary changed: %d", other.Amount.Cents)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	seed := []core.Transaction{
		{ID: "t1", Type: core.Expense, AccountID: "acc1", CategoryID: "food", Amount: core.Money{Cents: 1000}, Date: day(1)},
		{ID: "t2", Type: core.Expense, AccountID: "acc2", CategoryID: "food", Amount: core.Money{Cents: 2000}, Date: day(5)},
		{ID: "t3", Type: core.Income, AccountID: "acc1", CategoryID: "salary", Amount: core.Money{Cents: 3000}, Date: day(10)},
	}
	for _, tx := range seed {
		if err := s.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter store.TransactionFilter
		want   []string
	}{
		{"all newest first", store.TransactionFilter{}, []string{"t3", "t2", "t1"}},
		{"by type", store.TransactionFilter{Type: core.Expense}, []string{"t2", "t1"}},
		{"by account", store.TransactionFilter{AccountID: "acc1"}, []string{"t3", "t1"}},
		{"by category", store.TransactionFilter{CategoryID: "food"}, []string{"t2", "t1"}},
		{"date range", store.TransactionFilter{From: day(2), To: day(10)}, []string{"t2"}},
		{"limit", store.TransactionFilter{Limit: 1}, []string{"t3"}},
		{"offset", store.TransactionFilter{Offset: 2}, []string{"t1"}},
		{"offset past end", store.TransactionFilter{Offset: 5}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListTransactions(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d transactions, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i].ID != tc.want[i] {
					t.Fatalf("position %d: got %s, want %s", i, got[i].ID, tc.want[i])
				}
			}
		})
	}
}

func TestDefaultCalendarIsCreatedOnce(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.DefaultCalendar(ctx)
	if err != nil {
		t.Fatalf("default calendar: %v", err)
	}
	second, err := s.DefaultCalendar(ctx)
	if err != nil {
		t.Fatalf("default calendar: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("default calendar recreated: %s vs %s", first.ID, second.ID)
	}
	cals, _ := s.ListCalendars(ctx)
	if len(cals) != 1 {
		t.Fatalf("calendars = %d, want 1", len(cals))
	}
}

func TestGetEventBySource(t *testing.T) {
	s := New()
	ctx := context.Background()

	e := core.Event{ID: "e1", CalendarID: "c1", Title: "Rent Due", Start: time.Now(), SourceType: "bill", SourceID: "b1"}
	if err := s.CreateEvent(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetEventBySource(ctx, "bill", "b1")
	if err != nil {
		t.Fatalf("get by source: %v", err)
	}
	if got.ID != "e1" {
		t.Fatalf("got %s, want e1", got.ID)
	}

	if _, err := s.GetEventBySource(ctx, "bill", "missing"); err != core.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdjustAccountBalance(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.CreateAccount(ctx, core.Account{ID: "a1", Name: "Checking", CurrentBalance: core.Money{Cents: 10000}})
	if err := s.AdjustAccountBalance(ctx, "a1", -2500); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	a, _ := s.GetAccount(ctx, "a1")
	if a.CurrentBalance.Cents != 7500 {
		t.Fatalf("balance = %d, want 7500", a.CurrentBalance.Cents)
	}
	if err := s.AdjustAccountBalance(ctx, "missing", 1); err != core.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
