package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bilancio/internal/core"
)

func (s *Store) CreateAccount(ctx context.Context, a core.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, currency, opening_balance_cents, current_balance_cents, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Type, a.Currency, a.OpeningBalance.Cents, a.CurrentBalance.Cents, boolToInt(a.Active), toUnix(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*core.Account, error) {
	var a core.Account
	var active int
	var created int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, currency, opening_balance_cents, current_balance_cents, active, created_at
		FROM accounts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.Type, &a.Currency, &a.OpeningBalance.Cents, &a.CurrentBalance.Cents, &active, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	a.Active = active != 0
	a.CreatedAt = fromUnix(created)
	return &a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, currency, opening_balance_cents, current_balance_cents, active, created_at
		FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		var active int
		var created int64
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Currency, &a.OpeningBalance.Cents, &a.CurrentBalance.Cents, &active, &created); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Active = active != 0
		a.CreatedAt = fromUnix(created)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) AdjustAccountBalance(ctx context.Context, id string, delta int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET current_balance_cents = current_balance_cents + ? WHERE id = ?",
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("adjust account balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust account balance: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
