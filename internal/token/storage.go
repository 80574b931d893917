package token

import (
	"context"
	"sync"
)

// Fixed keys shared between the client and server execution contexts.
// Only the session store's two transitions may write them.
const (
	// StorageKey is the durable-slot key holding the raw token.
	StorageKey = "jwtToken"

	// CookieToken and CookieRole are the request-visible mirror of the
	// essential identity facts, written on authenticate and purged on clear.
	CookieToken = "jwt_token"
	CookieRole  = "user_role"
)

// Storage is a durable client-side key/value slot. Implementations live in
// internal/adapters; MemoryStorage below covers tests and storage-less runs.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// ErrNotFound is returned when a key has no stored value.
type notFoundError struct{}

func (notFoundError) Error() string { return "value not found" }

var ErrNotFound error = notFoundError{}

// MemoryStorage is an in-process Storage implementation.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
