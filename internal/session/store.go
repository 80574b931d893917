// Package session holds the process-wide authenticated-identity state and
// the post-authentication bootstrap listener. The store is the single owner
// of the durable token slot: every write to it funnels through the
// authenticate and clear transitions, so each write site is enumerable.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/voluntree/voluntree-ui/internal/domain/auth"
	"github.com/voluntree/voluntree-ui/internal/token"
)

// State is the in-memory view of who is logged in right now.
type State struct {
	IsAuthenticated bool
	SubjectID       int64 // zero when anonymous
	Role            auth.Role
	Provider        auth.Provider
	Status          auth.Status
	LastError       *auth.Error
}

// Event is emitted exactly once per fulfilled authenticate transition.
// ID identifies the transition instance, not the subject: a logout+login
// cycle produces a fresh ID.
type Event struct {
	ID     uuid.UUID
	Claims auth.Claims
}

// Subscriber receives authenticate-succeeded events. Subscribers are
// registered once at process start, before the store begins serving.
type Subscriber func(Event)

// Store is the single process-wide session state container. All mutation
// goes through Begin, Authenticate, Fail, Clear, and the one-time Seed.
type Store struct {
	mu     sync.RWMutex
	state  State
	tokens *token.Store
	logger *slog.Logger
	subs   []Subscriber
}

// NewStore creates an anonymous session store owning the given token store.
func NewStore(tokens *token.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:  State{Status: auth.StatusIdle},
		tokens: tokens,
		logger: logger,
	}
}

// Subscribe registers a subscriber for authenticate-succeeded events.
// Not safe to call after the store is in use.
func (s *Store) Subscribe(fn Subscriber) {
	s.subs = append(s.subs, fn)
}

// Begin marks the start of a credential exchange.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = auth.StatusLoading
	s.state.LastError = nil
}

// Authenticate records a fulfilled credential exchange: it sets the identity
// fields from the claims, persists the raw token to the durable slot, and
// then (with every write complete) emits one event to the subscribers.
func (s *Store) Authenticate(ctx context.Context, claims auth.Claims, raw string) error {
	if claims.SubjectID == 0 {
		return errors.New("authenticate: claims missing subject id")
	}
	if !claims.Role.Valid() {
		return errors.New("authenticate: claims missing or unknown role")
	}

	if ok := s.tokens.Set(ctx, raw); !ok {
		// The in-memory session still stands; the durable slot just won't
		// survive a restart.
		s.logger.Warn("token persistence self-check failed", "subject_id", claims.SubjectID)
	}

	s.mu.Lock()
	s.state = State{
		IsAuthenticated: true,
		SubjectID:       claims.SubjectID,
		Role:            claims.Role,
		Provider:        claims.Provider,
		Status:          auth.StatusSucceeded,
	}
	s.mu.Unlock()

	evt := Event{ID: uuid.New(), Claims: claims}
	for _, fn := range s.subs {
		fn(evt)
	}

	return nil
}

// Fail records a rejected credential exchange. The session stays anonymous.
func (s *Store) Fail(code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsAuthenticated = false
	s.state.Status = auth.StatusFailed
	s.state.LastError = &auth.Error{Code: code, Message: message}
}

// Clear resets every field to its empty default and purges the durable
// token slot. Idempotent: clearing an anonymous session only re-clears
// storage.
func (s *Store) Clear(ctx context.Context) {
	if ok := s.tokens.Clear(ctx); !ok {
		s.logger.Warn("token slot purge post-condition failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Status: auth.StatusIdle}
}

// Seed pre-populates the session from a previously stored valid token
// during initialization. Read-once and not reactive: no event fires and
// nothing is written.
func (s *Store) Seed(claims auth.Claims) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		IsAuthenticated: true,
		SubjectID:       claims.SubjectID,
		Role:            claims.Role,
		Provider:        claims.Provider,
		Status:          auth.StatusSucceeded,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a principal is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// SubjectID returns the authenticated principal's id, or zero.
func (s *Store) SubjectID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SubjectID
}

// Role returns the authenticated principal's role, or "".
func (s *Store) Role() auth.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Role
}
