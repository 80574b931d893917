package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/voluntree/voluntree-ui/internal/api"
	"github.com/voluntree/voluntree-ui/internal/domain/auth"
	"github.com/voluntree/voluntree-ui/internal/session"
	"github.com/voluntree/voluntree-ui/internal/token"
)

// AuthAPI is the credential-exchange collaborator.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	RegisterEmail(ctx context.Context, input api.RegisterInput) (string, api.RegisteredUser, error)
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API     AuthAPI
	Session *session.Store
	Tokens  *token.Store
	Logger  *slog.Logger
}

// AuthService orchestrates authentication flows: it drives the session-store
// transitions around each credential exchange and owns the startup pre-seed.
type AuthService struct {
	api     AuthAPI
	session *session.Store
	tokens  *token.Store
	logger  *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:     opts.API,
		session: opts.Session,
		tokens:  opts.Tokens,
		logger:  logger,
	}
}

// LoginResult contains the fulfilled exchange outcome.
type LoginResult struct {
	Claims   auth.Claims
	RawToken string
}

// Login exchanges email+password for a session. On rejection the session
// records the envelope's code/message pair and the error is returned for
// display; the state machine moves loading -> succeeded or loading -> failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	s.session.Begin()

	raw, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, s.reject("login", err)
	}

	return s.fulfill(ctx, raw)
}

// Register creates an account through the email-registration endpoint and
// authenticates with the pre-issued token it returns.
func (s *AuthService) Register(ctx context.Context, input api.RegisterInput) (*LoginResult, error) {
	s.session.Begin()

	raw, _, err := s.api.RegisterEmail(ctx, input)
	if err != nil {
		return nil, s.reject("register", err)
	}

	return s.fulfill(ctx, raw)
}

// LoginWithToken authenticates from a pre-issued signed token, as delivered
// by the OAuth callback. An undecodable or expired token fails the attempt.
func (s *AuthService) LoginWithToken(ctx context.Context, raw string) (*LoginResult, error) {
	s.session.Begin()
	return s.fulfill(ctx, raw)
}

// Logout clears the session, the durable slot with it.
func (s *AuthService) Logout(ctx context.Context) {
	s.session.Clear(ctx)
}

// Hydrate pre-seeds the session once at startup from a previously stored
// token. An expired or unreadable leftover is purged silently so the
// process starts anonymous. Reports whether a session was seeded.
func (s *AuthService) Hydrate(ctx context.Context) bool {
	raw := s.tokens.Get(ctx)
	if raw == "" {
		return false
	}

	claims, err := token.Decode(raw)
	if err != nil || claims.Expired() {
		s.logger.Info("discarding stale stored token")
		if ok := s.tokens.Clear(ctx); !ok {
			s.logger.Warn("stale token purge post-condition failed")
		}
		return false
	}

	s.session.Seed(claims)
	s.logger.Info("session pre-seeded from stored token",
		slog.Int64("subject_id", claims.SubjectID),
		slog.String("role", string(claims.Role)),
	)
	return true
}

// fulfill decodes the issued token and runs the authenticate transition.
func (s *AuthService) fulfill(ctx context.Context, raw string) (*LoginResult, error) {
	claims, err := token.Decode(raw)
	if err != nil {
		return nil, s.reject("decode token", err)
	}
	if claims.Expired() {
		return nil, s.reject("decode token", errors.New("issued token already expired"))
	}

	if err := s.session.Authenticate(ctx, claims, raw); err != nil {
		return nil, s.reject("authenticate", err)
	}

	return &LoginResult{Claims: claims, RawToken: raw}, nil
}

// reject records the failure on the session and wraps the error for the
// initiating action, which is responsible for display.
func (s *AuthService) reject(op string, err error) error {
	code := "UNKNOWN_ERROR"
	message := err.Error()

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		code = apiErr.Code
		message = apiErr.Message
	}

	s.session.Fail(code, message)
	return fmt.Errorf("%s: %w", op, err)
}
