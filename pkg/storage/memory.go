package storage

import (
	"context"
	"sync"
)

// MemoryGateway keeps values in process memory. Used by tests and the
// server's --memory mode.
type MemoryGateway struct {
	mu     sync.RWMutex
	values map[string]string

	// FailSet, when set, is consulted before every write; a non-nil
	// result aborts that write.
	FailSet func(key string) error
}

// NewMemoryGateway returns an empty in-memory gateway
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{values: make(map[string]string)}
}

// Get returns the value stored for key
func (m *MemoryGateway) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set replaces the value stored for key
func (m *MemoryGateway) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		if err := m.FailSet(key); err != nil {
			return err
		}
	}
	m.values[key] = value
	return nil
}

// SetMany writes all entries or none of them
func (m *MemoryGateway) SetMany(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		for _, e := range entries {
			if err := m.FailSet(e.Key); err != nil {
				return err
			}
		}
	}
	for _, e := range entries {
		m.values[e.Key] = e.Value
	}
	return nil
}

// Remove deletes key
func (m *MemoryGateway) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var (
	_ Gateway     = (*MemoryGateway)(nil)
	_ BatchSetter = (*MemoryGateway)(nil)
)
