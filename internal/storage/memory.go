package storage

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps the blob in process memory. Tests use it; nothing survives
// a restart.
type Memory struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, ErrNotExist
	}

	return slices.Clone(m.data), nil
}

func (m *Memory) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = slices.Clone(data)
	if m.data == nil {
		m.data = []byte{}
	}

	return nil
}

func (m *Memory) Close() error { return nil }
