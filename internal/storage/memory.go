// Package storage provides the durable key-value backends and the record
// codec the catalog persists through.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

// Compile-time interface check.
var _ domain.KeyValueStore = (*MemoryKV)(nil)

// MemoryKV is an in-memory key-value store. Safe for concurrent access.
// Nothing survives the process; use it for tests and throwaway runs.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
	log  *logger.Logger
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV(log *logger.Logger) *MemoryKV {
	return &MemoryKV{
		data: make(map[string][]byte),
		log:  log,
	}
}

// Get returns a copy of the value stored under key.
func (s *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		s.log.Debug("kv miss: %s", key)
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key, overwriting any previous value.
func (s *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("kv set: %s (%d bytes)", key, len(value))
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryKV) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Close is a no-op.
func (s *MemoryKV) Close() error { return nil }
