// Package backup turns the whole snapshot into a downloadable JSON
// document and restores uploaded ones.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/amsaid/makhzan/internal/inventory"
)

// Store is the slice of the snapshot store the backup service needs.
type Store interface {
	Snapshot() *inventory.Snapshot
	Replace(ctx context.Context, data []byte) error
}

// Service exports and restores full snapshot backups.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Export renders the current snapshot as indented JSON. The payload is the
// same shape the blob backends persist, so a backup restores byte-for-byte.
func (s *Service) Export() ([]byte, error) {
	data, err := json.MarshalIndent(s.store.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	return data, nil
}

// Restore replaces the whole snapshot with the uploaded payload. The store
// validates the payload; on error the current state stays untouched.
func (s *Service) Restore(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	return s.store.Replace(ctx, data)
}

// Filename names a backup download after the export day.
func Filename(now time.Time) string {
	return "makhzan-backup-" + now.Format(time.DateOnly) + ".json"
}
