package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bilancio/internal/core"
)

const billColumns = "id, name, provider, category_id, account_id, recurrence, due_day, expected_amount_cents, autopay, active, created_at"

func (s *Store) CreateBill(ctx context.Context, b core.Bill) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bills (`+billColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Provider, b.CategoryID, b.AccountID, string(b.Recurrence),
		b.DueDay, b.ExpectedAmount.Cents, boolToInt(b.Autopay), boolToInt(b.Active), toUnix(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

func (s *Store) GetBill(ctx context.Context, id string) (*core.Bill, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+billColumns+" FROM bills WHERE id = ?", id)
	b, err := scanBill(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (s *Store) ListBills(ctx context.Context, activeOnly bool) ([]core.Bill, error) {
	query := "SELECT " + billColumns + " FROM bills"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY due_day, name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var out []core.Bill
	for rows.Next() {
		b, err := scanBill(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *Store) UpdateBill(ctx context.Context, b core.Bill) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bills
		SET name = ?, provider = ?, category_id = ?, account_id = ?, recurrence = ?,
		    due_day = ?, expected_amount_cents = ?, autopay = ?, active = ?
		WHERE id = ?`,
		b.Name, b.Provider, b.CategoryID, b.AccountID, string(b.Recurrence),
		b.DueDay, b.ExpectedAmount.Cents, boolToInt(b.Autopay), boolToInt(b.Active), b.ID,
	)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBill(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func scanBill(scan func(dest ...any) error) (*core.Bill, error) {
	var b core.Bill
	var recurrence string
	var autopay, active int
	var created int64
	err := scan(&b.ID, &b.Name, &b.Provider, &b.CategoryID, &b.AccountID, &recurrence,
		&b.DueDay, &b.ExpectedAmount.Cents, &autopay, &active, &created)
	if err != nil {
		return nil, err
	}
	b.Recurrence = core.Recurrence(recurrence)
	b.Autopay = autopay != 0
	b.Active = active != 0
	b.CreatedAt = fromUnix(created)
	return &b, nil
}
