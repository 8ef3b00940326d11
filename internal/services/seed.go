package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/auth"
	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store"
)

// Seed populates an empty store with the household defaults: the three
// users, the category taxonomy and the shared accounts. It is a no-op
// on a store that already has users.
func Seed(ctx context.Context, st store.Store, logger *log.Logger) error {
	users, err := st.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	now := time.Now().UTC()
	hash, err := auth.HashPassword("budget123")
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	seedUsers := []core.User{
		{ID: uuid.NewString(), Email: "harish@budget.app", Name: "Harish", Role: core.RoleOwner, PasswordHash: hash, Active: true, CreatedAt: now},
		{ID: uuid.NewString(), Email: "spouse@budget.app", Name: "Spouse", Role: core.RoleCoowner, PasswordHash: hash, Active: true, CreatedAt: now},
		{ID: uuid.NewString(), Email: "guest@budget.app", Name: "Guest", Role: core.RoleGuest, PasswordHash: hash, Active: true, CreatedAt: now},
	}
	for _, u := range seedUsers {
		if err := st.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	type cat struct {
		name      string
		typ       core.TransactionType
		recurring bool
	}
	cats := []cat{
		{"Salary", core.Income, true},
		{"Housing & Utilities", core.Expense, true},
		{"Groceries", core.Expense, true},
		{"Transportation", core.Expense, true},
		{"Insurance", core.Expense, true},
		{"Loan EMI", core.Expense, true},
		{"Childcare", core.Expense, true},
		{"Subscriptions", core.Expense, true},
		{core.MiscellaneousCategory, core.Expense, false},
	}
	for _, c := range cats {
		if err := st.CreateCategory(ctx, core.Category{
			ID: uuid.NewString(), Name: c.name, Type: c.typ, Recurring: c.recurring, CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
	}

	accounts := []core.Account{
		{ID: uuid.NewString(), Name: "Joint Checking Account", Type: "bank", Currency: "EUR", OpeningBalance: core.Money{Cents: 500000}, CurrentBalance: core.Money{Cents: 500000}, Active: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Savings Account", Type: "bank", Currency: "EUR", OpeningBalance: core.Money{Cents: 1500000}, CurrentBalance: core.Money{Cents: 1500000}, Active: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Credit Card", Type: "card", Currency: "EUR", Active: true, CreatedAt: now},
	}
	for _, a := range accounts {
		if err := st.CreateAccount(ctx, a); err != nil {
			return fmt.Errorf("seed account %s: %w", a.Name, err)
		}
	}

	if _, err := st.DefaultCalendar(ctx); err != nil {
		return fmt.Errorf("seed default calendar: %w", err)
	}

	logger.Info("seeded household defaults",
		"users", len(seedUsers),
		"categories", len(cats),
		"accounts", len(accounts),
	)
	return nil
}
