package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Cache backed by a map. Expiry is lazy: Get treats
// past-expiry entries as absent, and an optional janitor goroutine reclaims
// them periodically.
type Memory struct {
	mu           sync.RWMutex
	entries      map[string]memoryEntry
	cleanupEvery time.Duration
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryOption func(*Memory)

func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(m *Memory) { m.cleanupEvery = d }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:      make(map[string]memoryEntry),
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	ent, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || !time.Now().Before(ent.expiresAt) {
		return nil, false, nil
	}
	return ent.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Cleanup drops all expired entries.
func (m *Memory) Cleanup() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, ent := range m.entries {
		if !now.Before(ent.expiresAt) {
			delete(m.entries, k)
		}
	}
}

// StartJanitor sweeps expired entries periodically until ctx is cancelled.
func (m *Memory) StartJanitor(ctx context.Context) {
	if m.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(m.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Cleanup()
			}
		}
	}()
}
