package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"writing_challenge/internal/dbx"
)

type DocumentSQLite struct {
	db dbx.DBTX
}

func NewDocumentSQLite(db dbx.DBTX) *DocumentSQLite {
	return &DocumentSQLite{db: db}
}

// Ensure implementation of Documents interface at compile time.
var _ Documents = (*DocumentSQLite)(nil)

const (
	upsertDocumentSQL = `
		INSERT INTO documents (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`
	selectDocumentSQL     = `SELECT value FROM documents WHERE key = ?`
	deleteDocumentSQL     = `DELETE FROM documents WHERE key = ?`
	selectDocumentKeysSQL = `SELECT key FROM documents ORDER BY key`
	deleteAllDocumentsSQL = `DELETE FROM documents`
)

var errInvalidDocument = errors.New("document is not valid JSON")

// Load fetches the document stored under key. Returns (nil, nil) if the key is absent.
func (r *DocumentSQLite) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, selectDocumentSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load document %q: %w", key, err)
	}
	return value, nil
}

// Save inserts or replaces the document stored under key.
func (r *DocumentSQLite) Save(ctx context.Context, key string, doc []byte) error {
	if !json.Valid(doc) {
		return fmt.Errorf("save document %q: %w", key, errInvalidDocument)
	}
	if _, err := r.db.ExecContext(ctx, upsertDocumentSQL, key, string(doc), formatTime(time.Now())); err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}

// Clear removes key. Clearing an absent key is not an error.
func (r *DocumentSQLite) Clear(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteDocumentSQL, key); err != nil {
		return fmt.Errorf("clear document %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (r *DocumentSQLite) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectDocumentKeysSQL)
	if err != nil {
		return nil, fmt.Errorf("list document keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan document key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// ClearAll removes every document.
func (r *DocumentSQLite) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllDocumentsSQL); err != nil {
		return fmt.Errorf("clear all documents: %w", err)
	}
	return nil
}
