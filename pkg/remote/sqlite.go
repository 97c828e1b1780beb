package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	data       TEXT NOT NULL,
	UNIQUE (collection, key)
);
CREATE INDEX IF NOT EXISTS documents_collection ON documents (collection, seq);
`

// SQLite is a collection stored as rows of a single SQLite file. Several
// collections may share one file.
type SQLite struct {
	name  string
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path and returns the named collection.
func OpenSQLite(path, name string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("remote: storage path is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("remote: collection name required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("remote: open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("remote: ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("remote: create schema: %w", err)
	}
	return &SQLite{name: name, sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLite) Name() string { return s.name }

func (s *SQLite) Get(ctx context.Context) ([]Document, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT key, data FROM documents WHERE collection = ? ORDER BY seq`, s.name)
	if err != nil {
		return nil, fmt.Errorf("remote: list documents: %w", err)
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var (
			key  string
			data string
		)
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("remote: scan document: %w", err)
		}
		out = append(out, Document{Key: key, Data: []byte(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remote: list documents: %w", err)
	}
	return out, nil
}

func (s *SQLite) Add(ctx context.Context, data any) (string, error) {
	raw, err := encode(data)
	if err != nil {
		return "", err
	}
	key := uuid.NewString()
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO documents (collection, key, data) VALUES (?, ?, ?)`, s.name, key, string(raw)); err != nil {
		return "", fmt.Errorf("remote: insert document: %w", err)
	}
	return key, nil
}

func (s *SQLite) Where(field string, value any) Query {
	return filterQuery{fetch: s.Get, field: field, value: value}
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND key = ?`, s.name, key)
	if err != nil {
		return fmt.Errorf("remote: delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remote: delete document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Update(ctx context.Context, key string, fields map[string]any) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("remote: begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND key = ?`, s.name, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remote: read document: %w", err)
	}
	merged, err := Merge([]byte(data), fields)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET data = ? WHERE collection = ? AND key = ?`, string(merged), s.name, key); err != nil {
		return fmt.Errorf("remote: update document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("remote: commit update: %w", err)
	}
	return nil
}
