// internal/infrastructure/statestore/local_store.go
package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// LocalStore keeps session UI state in process memory. It exists for
// tests and single-instance development runs; deployments use the
// Redis store so state survives restarts and multiple replicas.
type LocalStore struct {
	mu      sync.RWMutex
	entries map[string]localEntry
}

type localEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiration
}

// NewLocalStore creates an in-memory state store
func NewLocalStore() *LocalStore {
	return &LocalStore{
		entries: make(map[string]localEntry),
	}
}

// GetJSON loads and unmarshals the value at key
func (s *LocalStore) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode state key %s: %w", key, err)
	}

	return true, nil
}

// SetJSON marshals and stores the value at key with expiration
func (s *LocalStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode state key %s: %w", key, err)
	}

	entry := localEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	return nil
}

// Delete removes the key
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
