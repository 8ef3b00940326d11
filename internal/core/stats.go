package core

import "time"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// SalaryAmount is one entry of the per-user salary snapshot.
type SalaryAmount struct {
	UserID string
	Name   string
	Amount Money
}

// UpcomingBill is a bill projected onto its next due date.
type UpcomingBill struct {
	Bill    Bill
	DueDate time.Time
}

// IntegrityWarning flags a stored record that was skipped during
// aggregation instead of aborting the whole computation.
type IntegrityWarning struct {
	Entity string // "transaction" or "bill"
	ID     string
	Reason string
}

// DashboardStats is the aggregated monthly view served to the dashboard.
type DashboardStats struct {
	Year  int
	Month int // 1-12

	TotalIncome    Money
	TotalExpenses  Money
	MonthlySurplus Money
	// SavingsRate is the surplus as a percentage of income, rounded to
	// one decimal. Zero income yields zero, never NaN.
	SavingsRate float64

	CategoryBreakdown  []CategoryAmount
	UpcomingBills      []UpcomingBill
	RecentTransactions []Transaction
	CurrentSalaries    []SalaryAmount

	Warnings []IntegrityWarning
}

// AgendaItem is one entry of the merged agenda view. Exactly one of
// Event or Bill is set.
type AgendaItem struct {
	Date  time.Time
	Event *Event
	Bill  *UpcomingBill
}

// Agenda is the merged window of upcoming events and bill due dates.
// Events and bills are each sorted ascending; in Items, an event sorts
// before a bill falling on the identical date.
type Agenda struct {
	From time.Time
	Days int

	Events        []Event
	UpcomingBills []UpcomingBill
	Items         []AgendaItem
}
