// Package memory provides in-memory implementations of driven ports.
// They back tests and act as a fallback when no config directory is usable.
package memory

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// MemoryPath is reported by Path for stores that never touch disk.
const MemoryPath = ":memory:"

// ConfigStore keeps settings for the lifetime of the process.
// Values set here are lost on exit, so the settings command can still
// validate and echo them when ~/.nbmcp is unusable.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store. Every setting reads as its default.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// NewConfigStoreWith creates a store preloaded with dotted keys,
// e.g. {"output.preview_length": 200}.
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	s := NewConfigStore()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	str, _ := lookup[string](s, key)
	return str
}

// GetInt truncates fractional values, as TOML floats set by hand do.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}
	n, ok := number(val)
	if !ok || n >= math.MaxInt || n < math.MinInt {
		return 0
	}
	return int(n)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}
	n, _ := number(val)
	return n
}

// Set stores value under a dotted key.
func (s *ConfigStore) Set(key string, value any) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty config key", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Load is a no-op; there is nothing to re-read.
func (s *ConfigStore) Load() error {
	return nil
}

func (s *ConfigStore) Path() string {
	return MemoryPath
}

// Keys returns the keys that have been set, sorted.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookup[T any](s *ConfigStore, key string) (T, bool) {
	var zero T
	val, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := val.(T)
	return typed, ok
}

// number widens the numeric kinds settings are stored as.
func number(val any) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
