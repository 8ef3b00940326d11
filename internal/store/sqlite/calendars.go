package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bilancio/internal/core"
)

const calendarColumns = "id, name, scope, owner_user_id, is_default, color, created_at"

func (s *Store) CreateCalendar(ctx context.Context, c core.Calendar) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendars (`+calendarColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Scope, c.OwnerUserID, boolToInt(c.Default), c.Color, toUnix(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create calendar: %w", err)
	}
	return nil
}

func (s *Store) ListCalendars(ctx context.Context) ([]core.Calendar, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+calendarColumns+" FROM calendars ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	defer rows.Close()

	var out []core.Calendar
	for rows.Next() {
		c, err := scanCalendar(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan calendar: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) DefaultCalendar(ctx context.Context) (*core.Calendar, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+calendarColumns+" FROM calendars WHERE is_default = 1")
	c, err := scanCalendar(row.Scan)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get default calendar: %w", err)
	}

	created := core.Calendar{
		ID:        uuid.NewString(),
		Name:      "Household",
		Scope:     "household",
		Default:   true,
		Color:     "#3b82f6",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateCalendar(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

func scanCalendar(scan func(dest ...any) error) (*core.Calendar, error) {
	var c core.Calendar
	var isDefault int
	var created int64
	err := scan(&c.ID, &c.Name, &c.Scope, &c.OwnerUserID, &isDefault, &c.Color, &created)
	if err != nil {
		return nil, err
	}
	c.Default = isDefault != 0
	c.CreatedAt = fromUnix(created)
	return &c, nil
}
