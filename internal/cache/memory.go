// internal/cache/memory.go
package cache

import (
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store: a mutex-guarded map with lazy expiry.
// Default backend for single-instance deployments and the test double
// for resolver caching tests.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is swapped in tests to control expiry without sleeping.
	now func() time.Time
}

type memoryEntry struct {
	value     any
	expiresAt time.Time // zero means no expiry
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get implements Store. Expired entries are deleted on access rather
// than by a background sweeper; cache keys are bounded by the node count.
func (m *Memory) Get(key string) (any, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Put implements Store.
func (m *Memory) Put(key string, value any, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Forget implements Store.
func (m *Memory) Forget(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// ForgetPrefix implements PrefixForgetter.
func (m *Memory) ForgetPrefix(prefix string) error {
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
	return nil
}

// SetNow replaces the store's clock. Test hook for expiry behavior;
// not safe to call concurrently with store access.
func (m *Memory) SetNow(now func() time.Time) {
	m.now = now
}

// Len returns the number of entries, including not-yet-swept expired
// ones. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
