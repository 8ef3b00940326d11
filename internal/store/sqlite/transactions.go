package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bilancio/internal/core"
	"bilancio/internal/store"
)

const txnColumns = "id, type, account_id, category_id, amount_cents, description, date, bill_id, recurring, salary_user_id, created_by, created_at"

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+txnColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), t.AccountID, t.CategoryID, t.Amount.Cents, t.Description,
		toUnix(t.Date), t.BillID, boolToInt(t.Recurring), t.SalaryUserID, t.CreatedBy, toUnix(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+txnColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *Store) ListTransactions(ctx context.Context, f store.TransactionFilter) ([]core.Transaction, error) {
	query := "SELECT " + txnColumns + " FROM transactions WHERE 1=1"
	var args []any
	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, string(f.Type))
	}
	if f.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, f.AccountID)
	}
	if f.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, f.CategoryID)
	}
	if !f.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, toUnix(f.From))
	}
	if !f.To.IsZero() {
		query += " AND date < ?"
		args = append(args, toUnix(f.To))
	}
	query += " ORDER BY date DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	} else if f.Offset > 0 {
		// SQLite needs a LIMIT clause before OFFSET.
		query += " LIMIT -1"
	}
	if f.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) ListActiveSalaries(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+txnColumns+" FROM transactions WHERE salary_user_id != '' ORDER BY salary_user_id")
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ReplaceSalary retires the previous salary rows and inserts the new one
// in a single database transaction, so a crash can never leave a user
// with zero or two active salaries.
func (s *Store) ReplaceSalary(ctx context.Context, userID string, txn core.Transaction) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin salary replacement: %w", err)
	}
	defer tx.Rollback()

	var retired sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE salary_user_id = ?",
		userID,
	).Scan(&retired)
	if err != nil {
		return 0, fmt.Errorf("sum previous salaries: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE salary_user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("retire previous salaries: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (`+txnColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, string(txn.Type), txn.AccountID, txn.CategoryID, txn.Amount.Cents, txn.Description,
		toUnix(txn.Date), txn.BillID, boolToInt(txn.Recurring), txn.SalaryUserID, txn.CreatedBy, toUnix(txn.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert salary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit salary replacement: %w", err)
	}
	return retired.Int64, nil
}

func scanTransaction(scan func(dest ...any) error) (*core.Transaction, error) {
	var t core.Transaction
	var typ string
	var recurring int
	var date, created int64
	err := scan(&t.ID, &typ, &t.AccountID, &t.CategoryID, &t.Amount.Cents, &t.Description,
		&date, &t.BillID, &recurring, &t.SalaryUserID, &t.CreatedBy, &created)
	if err != nil {
		return nil, err
	}
	t.Type = core.TransactionType(typ)
	t.Recurring = recurring != 0
	t.Date = fromUnix(date)
	t.CreatedAt = fromUnix(created)
	return &t, nil
}
