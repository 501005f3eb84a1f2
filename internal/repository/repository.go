package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"writing_challenge/internal/dbx"
	"writing_challenge/internal/models"
)

// Documents is the durable key/document store. Load returns (nil, nil) for an absent key.
type Documents interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, doc []byte) error
	Clear(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	ClearAll(ctx context.Context) error
}

// EventRepo is the append-only contest audit log.
type EventRepo interface {
	Append(ctx context.Context, e models.ContestEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ContestEvent, error)
	Clear(ctx context.Context) error
}

// Tx exposes the repositories bound to one transaction.
type Tx interface {
	Documents() Documents
	Contest() *ContestDocs
	Events() EventRepo
}

// Transactor runs a unit of work atomically.
type Transactor interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Repository is the single owner of the database handle. Every unit of work runs in one SQLite
// transaction while holding mu, so read-modify-write sequences never interleave.
type Repository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ensure implementation of Transactor interface at compile time.
var _ Transactor = (*Repository)(nil)

// Atomic runs fn inside a transaction. fn must only use tx; touching the *sql.DB from inside
// fn would wait forever on the single pooled connection.
func (r *Repository) Atomic(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, q dbx.DBTX) error {
		return fn(ctx, newSQLTx(q))
	})
}

type sqlTx struct {
	docs    *DocumentSQLite
	contest *ContestDocs
	events  *EventSQLite
}

func newSQLTx(q dbx.DBTX) *sqlTx {
	docs := NewDocumentSQLite(q)
	return &sqlTx{
		docs:    docs,
		contest: NewContestDocs(docs),
		events:  NewEventSQLite(q),
	}
}

func (t *sqlTx) Documents() Documents  { return t.docs }
func (t *sqlTx) Contest() *ContestDocs { return t.contest }
func (t *sqlTx) Events() EventRepo     { return t.events }

// timeLayout is fixed-width in UTC so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
