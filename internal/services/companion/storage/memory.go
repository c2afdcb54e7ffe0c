package storage

import (
	"context"
	"sync"
)

// Memory is an in-process PreferenceStore.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	saves  int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// LoadPreference implements PreferenceStore.
func (m *Memory) LoadPreference(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// SavePreference implements PreferenceStore.
func (m *Memory) SavePreference(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.saves++
	return nil
}

// Saves returns how many writes the store accepted.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
