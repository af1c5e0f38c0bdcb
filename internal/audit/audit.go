// Package audit records administrative and voting actions with before/after
// snapshots. Recording is best-effort by contract: callers log failures and
// continue, the primary operation never depends on the audit trail.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recorder records one audit event. before and after may be nil and are
// stored as JSON snapshots.
type Recorder interface {
	Record(ctx context.Context, actor, action, entityType, entityID string, before, after any) error
}

// Event is one recorded audit entry.
type Event struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id,omitempty"`
	Before     string    `json:"before,omitempty"`
	After      string    `json:"after,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service is a sqlite-backed Recorder sharing the application database.
type Service struct {
	db *sql.DB
}

// NewService creates the audit table if needed and returns the recorder.
func NewService(db *sql.DB) (*Service, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_events (
		id TEXT PRIMARY KEY,
		actor TEXT NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL DEFAULT '',
		before_state TEXT,
		after_state TEXT,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_events_entity ON audit_events(entity_type, entity_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating audit table: %w", err)
	}
	return &Service{db: db}, nil
}

// Record stores one event. Snapshots that fail to marshal are stored as an
// error note rather than failing the event.
func (s *Service) Record(ctx context.Context, actor, action, entityType, entityID string, before, after any) error {
	query := `INSERT INTO audit_events (id, actor, action, entity_type, entity_id, before_state, after_state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(), actor, action, entityType, entityID,
		snapshot(before), snapshot(after), time.Now())
	if err != nil {
		return fmt.Errorf("recording audit event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	query := `SELECT id, actor, action, entity_type, entity_id,
		COALESCE(before_state, ''), COALESCE(after_state, ''), created_at
		FROM audit_events ORDER BY created_at DESC, id LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.EntityType, &e.EntityID,
			&e.Before, &e.After, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func snapshot(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{String: fmt.Sprintf(`{"marshal_error":%q}`, err.Error()), Valid: true}
	}
	return sql.NullString{String: string(data), Valid: true}
}

// Nop discards all events.
type Nop struct{}

func (Nop) Record(context.Context, string, string, string, string, any, any) error { return nil }

var (
	_ Recorder = (*Service)(nil)
	_ Recorder = Nop{}
)
