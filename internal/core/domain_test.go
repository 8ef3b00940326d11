package core

import (
	"testing"
	"time"
)

func TestBillValidate(t *testing.T) {
	good := Bill{
		Name:           "Electricity",
		Recurrence:     Monthly,
		DueDay:         15,
		ExpectedAmount: Money{Cents: 9500},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Bill{
		{Name: "", Recurrence: Monthly, DueDay: 15, ExpectedAmount: Money{Cents: 100}},
		{Name: "x", Recurrence: Monthly, DueDay: 0, ExpectedAmount: Money{Cents: 100}},
		{Name: "x", Recurrence: Monthly, DueDay: 32, ExpectedAmount: Money{Cents: 100}},
		{Name: "x", Recurrence: Monthly, DueDay: 15, ExpectedAmount: Money{Cents: 0}},
		{Name: "x", Recurrence: Recurrence("weekly"), DueDay: 15, ExpectedAmount: Money{Cents: 100}},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:   Expense,
		Amount: Money{Cents: 1550},
		Date:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: TransactionType("refund"), Amount: Money{Cents: 1}, Date: good.Date},
		{Type: Expense, Amount: Money{Cents: 0}, Date: good.Date},
		{Type: Expense, Amount: Money{Cents: 1}},
		{Type: Expense, Amount: Money{Cents: 1}, Date: good.Date, SalaryUserID: "u1"},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{
		CategoryID:  "c1",
		Month:       3,
		Year:        2025,
		LimitAmount: Money{Cents: 40000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Budget{
		{CategoryID: "", Month: 3, Year: 2025, LimitAmount: Money{Cents: 100}},
		{CategoryID: "c1", Month: 0, Year: 2025, LimitAmount: Money{Cents: 100}},
		{CategoryID: "c1", Month: 13, Year: 2025, LimitAmount: Money{Cents: 100}},
		{CategoryID: "c1", Month: 3, Year: 0, LimitAmount: Money{Cents: 100}},
		{CategoryID: "c1", Month: 3, Year: 2025, LimitAmount: Money{Cents: 0}},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRoleCanWrite(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleOwner, true},
		{RoleCoowner, true},
		{RoleGuest, false},
		{Role("stranger"), false},
	}
	for _, tc := range cases {
		if got := tc.role.CanWrite(); got != tc.want {
			t.Errorf("Role(%q).CanWrite() = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.April, 30},
		{2025, time.February, 28},
		{2024, time.February, 29},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}
