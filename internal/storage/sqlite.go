package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// blobKey is the single row every backend writes; the snapshot is one
// document, not a table of records.
const blobKey = "snapshot"

// SQLite keeps the blob in a one-row kv table. WAL mode so readers do not
// block the writer.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for
// an in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating sqlite database: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)

	return err
}

func (s *SQLite) Load(ctx context.Context) ([]byte, error) {
	var data []byte

	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM blobs WHERE key = ?", blobKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}

	if err != nil {
		return nil, fmt.Errorf("loading blob: %w", err)
	}

	return data, nil
}

func (s *SQLite) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO blobs (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, blobKey, data,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving blob: %w", err)
	}

	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
