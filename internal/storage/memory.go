package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Storage. Values do not survive the process.
// The exported error fields let tests inject driver failures.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// Error injection for testing
	GetErr error
	SetErr error

	// Writes counts successful Set calls per key.
	Writes map[string]int
}

// NewMemory creates an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{
		slots:  make(map[string][]byte),
		Writes: make(map[string]int),
	}
}

// Get implements Storage.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set implements Storage.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.slots[key] = v
	m.Writes[key]++
	return nil
}

// Close implements Storage.
func (m *Memory) Close() error { return nil }
