package sqlite

import (
	"context"
	"fmt"

	"bilancio/internal/core"
)

func (s *Store) AppendAudit(ctx context.Context, r core.AuditRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, user_id, action, entity, entity_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Action, r.Entity, r.EntityID, toUnix(r.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

func (s *Store) ListAudit(ctx context.Context, limit, offset int) ([]core.AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, action, entity, entity_id, timestamp
		FROM audit_log ORDER BY seq DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var out []core.AuditRecord
	for rows.Next() {
		var r core.AuditRecord
		var ts int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.Action, &r.Entity, &r.EntityID, &ts); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		r.Timestamp = fromUnix(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}
