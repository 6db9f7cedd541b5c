package store

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/riyazmd/unified-event-analytics/internal/keys"
)

// MemoryKeyStore is an in-memory key store with the same semantics as the
// PostgresStore key operations. Used in tests and local development where no
// database is available.
type MemoryKeyStore struct {
	mu    sync.RWMutex
	byApp map[string]string
}

func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{byApp: make(map[string]string)}
}

// CreateKey issues a key for appID, rejecting duplicates. The single lock
// makes issuance atomic: two concurrent calls for the same appID produce
// exactly one key.
func (m *MemoryKeyStore) CreateKey(_ context.Context, appID string) (string, error) {
	if appID == "" {
		return "", errors.New("appID required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byApp[appID]; ok {
		return "", ErrDuplicateApp
	}

	apiKey, err := keys.Generate()
	if err != nil {
		return "", err
	}
	m.byApp[appID] = apiKey
	return apiKey, nil
}

func (m *MemoryKeyStore) LookupKey(_ context.Context, appID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apiKey, ok := m.byApp[appID]
	if !ok {
		return "", ErrNotFound
	}
	return apiKey, nil
}

// ValidateKey resolves apiKey to its appID. Every stored key is compared with
// crypto/subtle so timing does not leak how far a candidate prefix matched.
func (m *MemoryKeyStore) ValidateKey(_ context.Context, apiKey string) (string, error) {
	if apiKey == "" {
		return "", ErrInvalidKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	candidate := []byte(apiKey)
	matched := ""
	for appID, k := range m.byApp {
		if subtle.ConstantTimeCompare([]byte(k), candidate) == 1 {
			matched = appID
		}
	}
	if matched == "" {
		return "", ErrInvalidKey
	}
	return matched, nil
}

func (m *MemoryKeyStore) RevokeKey(_ context.Context, appID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byApp[appID]; !ok {
		return ErrNotFound
	}
	delete(m.byApp, appID)
	return nil
}
