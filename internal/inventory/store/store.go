package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/storage"
)

// ErrInvalidBackup is returned by Replace when the payload is not a full
// snapshot carrying all three containers.
var ErrInvalidBackup = errors.New("invalid backup")

// Store owns the in-memory snapshot and writes it through to the blob
// after every mutation.
type Store struct {
	blob storage.Blob

	mu   sync.RWMutex
	snap *inventory.Snapshot
}

// New loads the persisted snapshot. On first run it seeds the defaults and
// persists them immediately, so a crash before the first edit still leaves
// a valid blob behind.
func New(ctx context.Context, blob storage.Blob) (*Store, error) {
	s := &Store{blob: blob}

	data, err := blob.Load(ctx)

	switch {
	case errors.Is(err, storage.ErrNotExist):
		s.snap = inventory.Seed()
		if err := s.persist(ctx); err != nil {
			return nil, fmt.Errorf("persisting seed snapshot: %w", err)
		}

		slog.Info("seeded fresh snapshot",
			"items", len(s.snap.Items),
			"warehouses", len(s.snap.Warehouses))

	case err != nil:
		return nil, fmt.Errorf("loading snapshot: %w", err)

	default:
		var snap inventory.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}

		snap.Normalize()
		s.snap = &snap
	}

	return s, nil
}

// Snapshot returns a deep copy; callers read it without holding any lock.
func (s *Store) Snapshot() *inventory.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Clone()
}

// Mutate runs fn against a working copy, persists the result, then swaps
// it in. Either the blob and the in-memory state both advance or neither
// does.
func (s *Store) Mutate(ctx context.Context, fn func(*inventory.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(next); err != nil {
		return err
	}

	next.Normalize()

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := s.blob.Save(ctx, data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	s.snap = next

	return nil
}

// Replace swaps in a whole snapshot from a backup payload. Anything short
// of a valid full snapshot leaves the current state untouched.
func (s *Store) Replace(ctx context.Context, data []byte) error {
	snap, err := decodeBackup(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := s.blob.Save(ctx, encoded); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	s.snap = snap

	return nil
}

// decodeBackup parses and validates a backup payload. Container presence
// is probed through pointer fields so a missing key is distinguishable
// from an empty array.
func decodeBackup(data []byte) (*inventory.Snapshot, error) {
	var probe struct {
		Items       *[]inventory.Item       `json:"items"`
		Warehouses  *[]inventory.Warehouse  `json:"warehouses"`
		Permissions *[]inventory.Permission `json:"permissions"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	var missing []string

	if probe.Items == nil {
		missing = append(missing, "items")
	}

	if probe.Warehouses == nil {
		missing = append(missing, "warehouses")
	}

	if probe.Permissions == nil {
		missing = append(missing, "permissions")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidBackup, strings.Join(missing, ", "))
	}

	snap := &inventory.Snapshot{
		Items:       *probe.Items,
		Warehouses:  *probe.Warehouses,
		Permissions: *probe.Permissions,
	}
	snap.Normalize()

	return snap, nil
}

// persist runs before the store is shared; no lock needed.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := s.blob.Save(ctx, data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}
