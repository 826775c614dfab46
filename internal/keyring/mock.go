package keyring

import "sync"

// MockStore is an in-memory Store for tests. Real backends hold the single
// API token under TokenKey; the mock keeps that contract without touching
// the OS secret service, and can simulate the service being unreachable so
// callers exercise their credentials-file fallback.
type MockStore struct {
	mu          sync.RWMutex
	tokens      map[string]string
	unavailable bool
}

func NewMockStore() *MockStore {
	return &MockStore{tokens: make(map[string]string)}
}

// SetUnavailable toggles a simulated secret service outage. While set,
// every operation returns ErrKeyringUnavailable.
func (m *MockStore) SetUnavailable(unavailable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = unavailable
}

// IsAvailable implements Store.
func (m *MockStore) IsAvailable() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.unavailable {
		return ErrKeyringUnavailable
	}
	return nil
}

// Set implements Store.
func (m *MockStore) Set(key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return ErrKeyringUnavailable
	}
	if key == "" {
		return ErrTokenNotFound
	}

	m.tokens[key] = token
	return nil
}

// Get implements Store.
func (m *MockStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.unavailable {
		return "", ErrKeyringUnavailable
	}

	token, ok := m.tokens[key]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Delete implements Store.
func (m *MockStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return ErrKeyringUnavailable
	}

	delete(m.tokens, key)
	return nil
}

// Stored reports whether a token is held under key, bypassing the
// simulated outage. Test assertion helper.
func (m *MockStore) Stored(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tokens[key]
	return ok
}
