// Package memory provides an in-memory configuration store. It backs tests
// and runs started without a config file.
package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ConfigStore = (*Store)(nil)

// Store keeps flat dotted keys in a map. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// NewStoreWith creates a store seeded with a copy of values.
func NewStoreWith(values map[string]any) *Store {
	s := NewStore()
	maps.Copy(s.values, values)
	return s
}

// Get retrieves a configuration value by key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the value for key if it is a string.
func (s *Store) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the value for key converted to int.
func (s *Store) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetFloat returns the value for key converted to float64.
func (s *Store) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Set stores a configuration value.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op.
func (s *Store) Save() error { return nil }

// Load is a no-op.
func (s *Store) Load() error { return nil }

// Path returns ":memory:".
func (s *Store) Path() string { return ":memory:" }
