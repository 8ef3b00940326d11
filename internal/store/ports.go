package store

import (
	"context"
	"time"

	"bilancio/internal/core"
)

// TransactionFilter narrows ListTransactions. Zero values mean "any".
type TransactionFilter struct {
	Type       core.TransactionType
	AccountID  string
	CategoryID string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// Ports for the persistence backends.
type (
	UserStore interface {
		CreateUser(ctx context.Context, u core.User) error
		GetUser(ctx context.Context, id string) (*core.User, error)
		GetUserByEmail(ctx context.Context, email string) (*core.User, error)
		ListUsers(ctx context.Context) ([]core.User, error)
	}

	AccountStore interface {
		CreateAccount(ctx context.Context, a core.Account) error
		GetAccount(ctx context.Context, id string) (*core.Account, error)
		ListAccounts(ctx context.Context) ([]core.Account, error)
		// AdjustAccountBalance moves the current balance by delta cents.
		// Positive for income, negative for expenses.
		AdjustAccountBalance(ctx context.Context, id string, delta int64) error
	}

	CategoryStore interface {
		CreateCategory(ctx context.Context, c core.Category) error
		GetCategory(ctx context.Context, id string) (*core.Category, error)
		GetCategoryByName(ctx context.Context, name string) (*core.Category, error)
		ListCategories(ctx context.Context, includeDeleted bool) ([]core.Category, error)
		// SoftDeleteCategory marks the category deleted without touching
		// transactions that reference it.
		SoftDeleteCategory(ctx context.Context, id string) error
	}

	BillStore interface {
		CreateBill(ctx context.Context, b core.Bill) error
		GetBill(ctx context.Context, id string) (*core.Bill, error)
		ListBills(ctx context.Context, activeOnly bool) ([]core.Bill, error)
		UpdateBill(ctx context.Context, b core.Bill) error
		DeleteBill(ctx context.Context, id string) error
	}

	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) error
		GetTransaction(ctx context.Context, id string) (*core.Transaction, error)
		ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
		// ListActiveSalaries returns the income transactions currently
		// tagged as a user's salary, one per user at most.
		ListActiveSalaries(ctx context.Context) ([]core.Transaction, error)
		// ReplaceSalary atomically removes the salary transactions tagged
		// for userID and inserts txn in their place. It returns the total
		// amount retired, in cents.
		ReplaceSalary(ctx context.Context, userID string, txn core.Transaction) (retired int64, err error)
	}

	EventStore interface {
		CreateEvent(ctx context.Context, e core.Event) error
		GetEvent(ctx context.Context, id string) (*core.Event, error)
		ListEvents(ctx context.Context, from, to time.Time) ([]core.Event, error)
		UpdateEvent(ctx context.Context, e core.Event) error
		DeleteEvent(ctx context.Context, id string) error
		// GetEventBySource finds the event mirrored from an external
		// record, e.g. the calendar entry generated for a bill.
		GetEventBySource(ctx context.Context, sourceType, sourceID string) (*core.Event, error)
	}

	CalendarStore interface {
		CreateCalendar(ctx context.Context, c core.Calendar) error
		ListCalendars(ctx context.Context) ([]core.Calendar, error)
		// DefaultCalendar returns the household default calendar,
		// creating it when missing.
		DefaultCalendar(ctx context.Context) (*core.Calendar, error)
	}

	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) error
		// ListBudgets filters by month and year; zero means "any".
		ListBudgets(ctx context.Context, month, year int) ([]core.Budget, error)
	}

	AuditStore interface {
		AppendAudit(ctx context.Context, r core.AuditRecord) error
		ListAudit(ctx context.Context, limit, offset int) ([]core.AuditRecord, error)
	}
)

// Store is the full persistence surface the services are wired against.
type Store interface {
	UserStore
	AccountStore
	CategoryStore
	BillStore
	TransactionStore
	EventStore
	CalendarStore
	BudgetStore
	AuditStore

	Ping(ctx context.Context) error
	Close() error
}
