// Package storage persists the application snapshot as a single opaque
// blob. Backends only differ in where the bytes live.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotExist is returned by Load when nothing has been saved yet.
var ErrNotExist = errors.New("blob does not exist")

// Blob is a single-slot byte store. Save overwrites the whole payload.
type Blob interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Open selects a backend by driver name. path backs the file and sqlite
// drivers, dsn the postgres driver.
func Open(ctx context.Context, driver, path, dsn string) (Blob, error) {
	switch driver {
	case "file":
		return NewFile(path), nil
	case "sqlite":
		return OpenSQLite(path)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
