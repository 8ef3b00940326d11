package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bilancio/internal/core"
)

func (s *Store) CreateCategory(ctx context.Context, c core.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, type, recurring, icon, color, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, string(c.Type), boolToInt(c.Recurring), c.Icon, c.Color, boolToInt(c.Deleted), toUnix(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*core.Category, error) {
	return s.scanCategory(s.db.QueryRowContext(ctx, `
		SELECT id, name, type, recurring, icon, color, deleted, created_at
		FROM categories WHERE id = ?`, id))
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*core.Category, error) {
	return s.scanCategory(s.db.QueryRowContext(ctx, `
		SELECT id, name, type, recurring, icon, color, deleted, created_at
		FROM categories WHERE name = ? COLLATE NOCASE AND deleted = 0`, name))
}

func (s *Store) ListCategories(ctx context.Context, includeDeleted bool) ([]core.Category, error) {
	query := `
		SELECT id, name, type, recurring, icon, color, deleted, created_at
		FROM categories`
	if !includeDeleted {
		query += " WHERE deleted = 0"
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		var typ string
		var recurring, deleted int
		var created int64
		if err := rows.Scan(&c.ID, &c.Name, &typ, &recurring, &c.Icon, &c.Color, &deleted, &created); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.TransactionType(typ)
		c.Recurring = recurring != 0
		c.Deleted = deleted != 0
		c.CreatedAt = fromUnix(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) SoftDeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE categories SET deleted = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) scanCategory(row *sql.Row) (*core.Category, error) {
	var c core.Category
	var typ string
	var recurring, deleted int
	var created int64
	err := row.Scan(&c.ID, &c.Name, &typ, &recurring, &c.Icon, &c.Color, &deleted, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.Type = core.TransactionType(typ)
	c.Recurring = recurring != 0
	c.Deleted = deleted != 0
	c.CreatedAt = fromUnix(created)
	return &c, nil
}
