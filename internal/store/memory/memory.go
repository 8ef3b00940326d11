package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/store"
)

// Store keeps everything in process memory. Used in tests and as the
// default backend when no database is configured.
type Store struct {
	mu           sync.RWMutex
	users        map[string]core.User
	accounts     map[string]core.Account
	categories   map[string]core.Category
	bills        map[string]core.Bill
	transactions map[string]core.Transaction
	events       map[string]core.Event
	calendars    map[string]core.Calendar
	budgets      map[string]core.Budget
	audit        []core.AuditRecord
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:        make(map[string]core.User),
		accounts:     make(map[string]core.Account),
		categories:   make(map[string]core.Category),
		bills:        make(map[string]core.Bill),
		transactions: make(map[string]core.Transaction),
		events:       make(map[string]core.Event),
		calendars:    make(map[string]core.Calendar),
		budgets:      make(map[string]core.Budget),
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

// Users

func (s *Store) CreateUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Accounts

func (s *Store) CreateAccount(_ context.Context, a core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	return nil
}

func (s *Store) GetAccount(_ context.Context, id string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &a, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) AdjustAccountBalance(_ context.Context, id string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return core.ErrNotFound
	}
	a.CurrentBalance.Cents += delta
	s.accounts[id] = a
	return nil
}

// Categories

func (s *Store) CreateCategory(_ context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetCategoryByName(_ context.Context, name string) (*core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if !c.Deleted && strings.EqualFold(c.Name, name) {
			c := c
			return &c, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context, includeDeleted bool) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.Deleted && !includeDeleted {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SoftDeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return core.ErrNotFound
	}
	c.Deleted = true
	s.categories[id] = c
	return nil
}

// Bills

func (s *Store) CreateBill(_ context.Context, b core.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[b.ID] = b
	return nil
}

func (s *Store) GetBill(_ context.Context, id string) (*core.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bills[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &b, nil
}

func (s *Store) ListBills(_ context.Context, activeOnly bool) ([]core.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Bill, 0, len(s.bills))
	for _, b := range s.bills {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDay != out[j].DueDay {
			return out[i].DueDay < out[j].DueDay
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) UpdateBill(_ context.Context, b core.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[b.ID]; !ok {
		return core.ErrNotFound
	}
	s.bills[b.ID] = b
	return nil
}

func (s *Store) DeleteBill(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.bills, id)
	return nil
}

// Transactions

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = t
	return nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &t, nil
}

func (s *Store) ListTransactions(_ context.Context, f store.TransactionFilter) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.AccountID != "" && t.AccountID != f.AccountID {
			continue
		}
		if f.CategoryID != "" && t.CategoryID != f.CategoryID {
			continue
		}
		if !f.From.IsZero() && t.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !t.Date.Before(f.To) {
			continue
		}
		out = append(out, t)
	}
	// Newest first, stable across runs.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) ListActiveSalaries(_ context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.SalaryUserID != "" {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SalaryUserID < out[j].SalaryUserID })
	return out, nil
}

func (s *Store) ReplaceSalary(_ context.Context, userID string, txn core.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var retired int64
	for id, t := range s.transactions {
		if t.SalaryUserID == userID {
			retired += t.Amount.Cents
			delete(s.transactions, id)
		}
	}
	s.transactions[txn.ID] = txn
	return retired, nil
}

// Events

func (s *Store) CreateEvent(_ context.Context, e core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = e
	return nil
}

func (s *Store) GetEvent(_ context.Context, id string) (*core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListEvents(_ context.Context, from, to time.Time) ([]core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Event
	for _, e := range s.events {
		if !from.IsZero() && e.Start.Before(from) {
			continue
		}
		if !to.IsZero() && !e.Start.Before(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateEvent(_ context.Context, e core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return core.ErrNotFound
	}
	s.events[e.ID] = e
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *Store) GetEventBySource(_ context.Context, sourceType, sourceID string) (*core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.SourceType == sourceType && e.SourceID == sourceID {
			e := e
			return &e, nil
		}
	}
	return nil, core.ErrNotFound
}

// Calendars

func (s *Store) CreateCalendar(_ context.Context, c core.Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendars[c.ID] = c
	return nil
}

func (s *Store) ListCalendars(_ context.Context) ([]core.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Calendar, 0, len(s.calendars))
	for _, c := range s.calendars {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DefaultCalendar(_ context.Context) (*core.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calendars {
		if c.Default {
			c := c
			return &c, nil
		}
	}
	c := core.Calendar{
		ID:        uuid.NewString(),
		Name:      "Household",
		Scope:     "household",
		Default:   true,
		Color:     "#3b82f6",
		CreatedAt: time.Now().UTC(),
	}
	s.calendars[c.ID] = c
	return &c, nil
}

// Budgets

func (s *Store) CreateBudget(_ context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.ID] = b
	return nil
}

func (s *Store) ListBudgets(_ context.Context, month, year int) ([]core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if month != 0 && b.Month != month {
			continue
		}
		if year != 0 && b.Year != year {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out, nil
}

// Audit

func (s *Store) AppendAudit(_ context.Context, r core.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, r)
	return nil
}

func (s *Store) ListAudit(_ context.Context, limit, offset int) ([]core.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Newest first.
	out := make([]core.AuditRecord, len(s.audit))
	for i, r := range s.audit {
		out[len(s.audit)-1-i] = r
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
