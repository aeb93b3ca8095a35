package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// AuditEntry is one row of the chain-of-custody audit trail.
type AuditEntry struct {
	ID         int64           `json:"id"`
	ActorID    *int64          `json:"actorId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// LogAudit records an action against an entity. Details may be nil.
func LogAudit(ctx context.Context, db *sql.DB, actorID *int64, action, entityType, entityID string, details any) error {
	var detailsJSON any
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encoding audit details: %w", err)
		}
		detailsJSON = string(data)
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO audit_logs (actor_id, action, entity_type, entity_id, details)
		 VALUES (?, ?, ?, ?, ?)`,
		actorID, action, entityType, nullable(entityID), detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}

// ListAuditLogs returns the most recent audit entries, newest first.
func ListAuditLogs(ctx context.Context, db *sql.DB, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, actor_id, action, entity_type, entity_id, details, created_at
		 FROM audit_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	defer rows.Close()

	entries := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		var actorID sql.NullInt64
		var entityID, details sql.NullString
		if err := rows.Scan(&e.ID, &actorID, &e.Action, &e.EntityType, &entityID, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit log: %w", err)
		}
		e.ActorID = nullInt64(actorID)
		e.EntityID = entityID.String
		if details.Valid {
			e.Details = json.RawMessage(details.String)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
