package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres keeps the blob in a one-row kv table.
type Postgres struct {
	db *sql.DB
}

func OpenPostgres(ctx context.Context, connStr string) (*Postgres, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	p := &Postgres{db: db}
	if err := p.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`

	_, err := p.db.ExecContext(ctx, schema)

	return err
}

func (p *Postgres) Load(ctx context.Context) ([]byte, error) {
	var data []byte

	err := p.db.QueryRowContext(ctx,
		"SELECT data FROM blobs WHERE key = $1", blobKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}

	if err != nil {
		return nil, fmt.Errorf("loading blob: %w", err)
	}

	return data, nil
}

func (p *Postgres) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO blobs (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := p.db.ExecContext(ctx, query, blobKey, data); err != nil {
		return fmt.Errorf("saving blob: %w", err)
	}

	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
