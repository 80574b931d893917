package token

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Store persists the raw session token in a durable client-side slot under
// the single fixed StorageKey. All operations are safe to call when no
// storage is configured: Get degrades to absent, Set and Clear are no-ops.
type Store struct {
	storage Storage
	logger  *slog.Logger
}

// NewStore creates a token store over the given storage. storage may be nil
// for contexts without a durable slot.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: storage, logger: logger}
}

// Get returns the stored raw token, or "" when absent or unreadable.
// Values are stored JSON-encoded; a bare legacy value is returned as-is.
func (s *Store) Get(ctx context.Context) string {
	if s == nil || s.storage == nil {
		return ""
	}

	value, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("token storage read failed", "key", StorageKey, "error", err)
		}
		return ""
	}

	var raw string
	if json.Unmarshal([]byte(value), &raw) == nil {
		return raw
	}
	// Legacy slot contents predate JSON encoding.
	return value
}

// Set writes the raw token and reports whether the value now readable
// matches what was written. The re-read is a self-check so a storage
// failure cannot go unnoticed.
func (s *Store) Set(ctx context.Context, raw string) bool {
	if s == nil || s.storage == nil {
		return false
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		s.logger.Warn("token storage encode failed", "key", StorageKey, "error", err)
		return false
	}
	if err := s.storage.Set(ctx, StorageKey, string(encoded)); err != nil {
		s.logger.Warn("token storage write failed", "key", StorageKey, "error", err)
		return false
	}

	return s.Get(ctx) == raw
}

// Clear removes the stored token and reports whether the slot is empty
// afterwards. Clearing an already-empty slot succeeds.
func (s *Store) Clear(ctx context.Context) bool {
	if s == nil || s.storage == nil {
		return true
	}

	if err := s.storage.Del(ctx, StorageKey); err != nil {
		s.logger.Warn("token storage delete failed", "key", StorageKey, "error", err)
	}

	return s.Get(ctx) == ""
}

// IsExpired reports whether the currently stored token has expired.
// An empty slot counts as expired.
func (s *Store) IsExpired(ctx context.Context) bool {
	return IsExpired(s.Get(ctx))
}
