package core

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleOwner   Role = "owner"
	RoleCoowner Role = "coowner"
	RoleGuest   Role = "guest"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

const (
	Monthly Recurrence = "monthly"
)

// MiscellaneousCategory receives expenses posted without a resolvable
// category, so the breakdown never silently drops an amount.
const MiscellaneousCategory = "Miscellaneous"

type (
	Role            string
	TransactionType string
	Recurrence      string

	User struct {
		ID           string
		Email        string
		Name         string
		Role         Role
		PasswordHash string
		Active       bool
		CreatedAt    time.Time
	}

	Account struct {
		ID             string
		Name           string
		Type           string // bank, card, cash
		Currency       string
		OpeningBalance Money
		CurrentBalance Money
		Active         bool
		CreatedAt      time.Time
	}

	Category struct {
		ID        string
		Name      string
		Type      TransactionType // income or expense
		Recurring bool
		Icon      string
		Color     string
		// Deleted hides the category from selection; historical
		// transactions keep the reference.
		Deleted   bool
		CreatedAt time.Time
	}

	Bill struct {
		ID             string
		Name           string
		Provider       string
		CategoryID     string
		AccountID      string
		Recurrence     Recurrence
		DueDay         int // day of month, 1-31
		ExpectedAmount Money
		Autopay        bool
		Active         bool
		CreatedAt      time.Time
	}

	Transaction struct {
		ID          string
		Type        TransactionType
		AccountID   string
		CategoryID  string
		Amount      Money
		Description string
		Date        time.Time
		// BillID links a posted payment to its bill so the aggregator
		// does not count it on top of the bill's expected amount.
		BillID    string
		Recurring bool
		// SalaryUserID tags an income transaction as the salary of a
		// specific user. At most one active salary transaction may
		// exist per user.
		SalaryUserID string
		CreatedBy    string
		CreatedAt    time.Time
	}

	Event struct {
		ID         string
		CalendarID string
		Title      string
		Notes      string
		Location   string
		Start      time.Time
		End        time.Time
		AllDay     bool
		Tags       []string
		// Reminders holds minutes-before-start offsets at which the
		// attendee should be notified.
		Reminders []int
		// Mirrored bill events carry the bill id here; the bill record
		// stays authoritative.
		SourceType string // "bill" or "manual"
		SourceID   string
		CreatedBy  string
		CreatedAt  time.Time
	}

	// Budget caps spending for one category in one calendar month.
	// SpentAmount is a running total maintained alongside postings.
	Budget struct {
		ID          string
		CategoryID  string
		Month       int // 1-12
		Year        int
		LimitAmount Money
		SpentAmount Money
		CreatedAt   time.Time
	}

	Calendar struct {
		ID          string
		Name        string
		Scope       string // household or personal
		OwnerUserID string
		Default     bool
		Color       string
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("operation not permitted")
	ErrEmptyName     = errors.New("empty name")
)

// CanWrite reports whether the role may mutate household data.
// Guests are read-only; the check happens once at the HTTP boundary.
func (r Role) CanWrite() bool {
	return r == RoleOwner || r == RoleCoowner
}

// Valid reports whether the role is one of the known household roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleCoowner, RoleGuest:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

func (b Bill) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if len(b.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if b.DueDay < 1 || b.DueDay > 31 {
		return ErrInvalidDueDay
	}
	if err := b.ExpectedAmount.Validate(); err != nil {
		return err
	}
	if b.Recurrence != Monthly {
		return errors.New("unsupported recurrence: " + string(b.Recurrence))
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return errors.New("invalid transaction type")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.SalaryUserID != "" && t.Type != Income {
		return errors.New("salary transaction must be income")
	}
	return nil
}

func (e Event) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return errors.New("empty title")
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return errors.New("start and end are required")
	}
	if e.End.Before(e.Start) {
		return errors.New("end must not be before start")
	}
	for _, m := range e.Reminders {
		if m < 0 {
			return errors.New("reminder offset must not be negative")
		}
	}
	return nil
}

func (b Budget) Validate() error {
	if b.CategoryID == "" {
		return errors.New("category is required")
	}
	if b.Month < 1 || b.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}
	if b.Year < 1970 || b.Year > 9999 {
		return errors.New("invalid year")
	}
	if err := b.LimitAmount.Validate(); err != nil {
		return err
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if c.Type != Income && c.Type != Expense {
		return errors.New("category type must be income or expense")
	}
	return nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
