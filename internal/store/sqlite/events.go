package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bilancio/internal/core"
)

const eventColumns = "id, calendar_id, title, notes, location, start_at, end_at, all_day, tags, reminders, source_type, source_id, created_by, created_at"

func (s *Store) CreateEvent(ctx context.Context, e core.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CalendarID, e.Title, e.Notes, e.Location, toUnix(e.Start), toUnix(e.End),
		boolToInt(e.AllDay), strings.Join(e.Tags, ","), joinInts(e.Reminders),
		e.SourceType, e.SourceID, e.CreatedBy, toUnix(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*core.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	e, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *Store) ListEvents(ctx context.Context, from, to time.Time) ([]core.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE 1=1"
	var args []any
	if !from.IsZero() {
		query += " AND start_at >= ?"
		args = append(args, toUnix(from))
	}
	if !to.IsZero() {
		query += " AND start_at < ?"
		args = append(args, toUnix(to))
	}
	query += " ORDER BY start_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []core.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEvent(ctx context.Context, e core.Event) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET calendar_id = ?, title = ?, notes = ?, location = ?, start_at = ?, end_at = ?,
		    all_day = ?, tags = ?, reminders = ?, source_type = ?, source_id = ?
		WHERE id = ?`,
		e.CalendarID, e.Title, e.Notes, e.Location, toUnix(e.Start), toUnix(e.End),
		boolToInt(e.AllDay), strings.Join(e.Tags, ","), joinInts(e.Reminders),
		e.SourceType, e.SourceID, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) GetEventBySource(ctx context.Context, sourceType, sourceID string) (*core.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE source_type = ? AND source_id = ?",
		sourceType, sourceID)
	e, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by source: %w", err)
	}
	return e, nil
}

func scanEvent(scan func(dest ...any) error) (*core.Event, error) {
	var e core.Event
	var allDay int
	var tags, reminders string
	var start, end, created int64
	err := scan(&e.ID, &e.CalendarID, &e.Title, &e.Notes, &e.Location, &start, &end,
		&allDay, &tags, &reminders, &e.SourceType, &e.SourceID, &e.CreatedBy, &created)
	if err != nil {
		return nil, err
	}
	e.AllDay = allDay != 0
	if tags != "" {
		e.Tags = strings.Split(tags, ",")
	}
	e.Reminders, err = splitInts(reminders)
	if err != nil {
		return nil, fmt.Errorf("reminders column: %w", err)
	}
	e.Start = fromUnix(start)
	e.End = fromUnix(end)
	e.CreatedAt = fromUnix(created)
	return &e, nil
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
