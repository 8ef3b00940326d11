package sqlite

import (
	"context"
	"fmt"

	"bilancio/internal/core"
)

const budgetColumns = "id, category_id, month, year, limit_amount_cents, spent_amount_cents, created_at"

func (s *Store) CreateBudget(ctx context.Context, b core.Budget) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.CategoryID, b.Month, b.Year, b.LimitAmount.Cents, b.SpentAmount.Cents, toUnix(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (s *Store) ListBudgets(ctx context.Context, month, year int) ([]core.Budget, error) {
	query := "SELECT " + budgetColumns + " FROM budgets WHERE 1=1"
	var args []any
	if month != 0 {
		query += " AND month = ?"
		args = append(args, month)
	}
	if year != 0 {
		query += " AND year = ?"
		args = append(args, year)
	}
	query += " ORDER BY year, month, category_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var created int64
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Month, &b.Year,
			&b.LimitAmount.Cents, &b.SpentAmount.Cents, &created); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.CreatedAt = fromUnix(created)
		out = append(out, b)
	}
	return out, rows.Err()
}
