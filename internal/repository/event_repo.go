package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"writing_challenge/internal/dbx"
	"writing_challenge/internal/models"

	"github.com/google/uuid"
)

// EventSQLite is the append-only contest audit log.
type EventSQLite struct {
	db dbx.DBTX
}

func NewEventSQLite(db dbx.DBTX) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const (
	insertEventSQL     = `INSERT INTO contest_events (id, occurred_at, type, message, meta) VALUES (?, ?, ?, ?, ?)`
	selectEventsSQL    = `SELECT id, occurred_at, type, message, meta FROM contest_events`
	orderEventsSQL     = ` ORDER BY occurred_at ASC, rowid ASC`
	deleteAllEventsSQL = `DELETE FROM contest_events`
)

var errEmptyEventType = errors.New("event type is empty")

// eventFilter is the WHERE clause of a listing; zero fields do not filter.
type eventFilter struct {
	from, to time.Time
	typ      string
}

func (f eventFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !f.from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTime(f.from))
	}
	if !f.to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatTime(f.to))
	}
	if f.typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, f.typ)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func normalizeType(typ string) string {
	return strings.ToUpper(strings.TrimSpace(typ))
}

// Append stores e. A missing EventID or OccurredAt is filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.ContestEvent) error {
	typ := normalizeType(e.Type)
	if typ == "" {
		return errEmptyEventType
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var meta sql.NullString
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata of %s: %w", typ, err)
		}
		meta = sql.NullString{String: string(b), Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, insertEventSQL, e.EventID, formatTime(e.OccurredAt), typ, e.Description, meta); err != nil {
		return fmt.Errorf("append event %s: %w", typ, err)
	}
	return nil
}

// List returns events in [from, to] of the given type, oldest first.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.ContestEvent, error) {
	where, args := eventFilter{from: from, to: to, typ: normalizeType(typ)}.where()

	rows, err := r.db.QueryContext(ctx, selectEventsSQL+where+orderEventsSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := []models.ContestEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (models.ContestEvent, error) {
	var (
		ev       models.ContestEvent
		occurred string
		meta     sql.NullString
	)
	if err := rows.Scan(&ev.EventID, &occurred, &ev.Type, &ev.Description, &meta); err != nil {
		return ev, fmt.Errorf("scan event: %w", err)
	}
	t, err := parseTime(occurred)
	if err != nil {
		return ev, fmt.Errorf("event %s: bad occurred_at: %w", ev.EventID, err)
	}
	ev.OccurredAt = t
	ev.Metadata = decodeMeta(meta)
	return ev, nil
}

// decodeMeta returns nil for no metadata and the raw text if it is not JSON.
func decodeMeta(meta sql.NullString) any {
	if !meta.Valid || meta.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(meta.String), &v); err != nil {
		return meta.String
	}
	return v
}

// Clear drops the whole log. Only a full database reset does this.
func (r *EventSQLite) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllEventsSQL); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	return nil
}
