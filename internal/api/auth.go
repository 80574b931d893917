package api

import (
	"context"
	"errors"
	"time"

	"github.com/voluntree/voluntree-ui/internal/domain/auth"
)

// AuthClient exchanges credentials for signed session tokens.
type AuthClient struct {
	c *Client
}

// NewAuthClient creates a client for the credential-exchange endpoints.
func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{c: NewClient(baseURL, timeout)}
}

// Login exchanges email+password for a signed session token.
// POST /auth/login -> {data: <token>}.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var out struct {
		Data string `json:"data"`
	}
	if err := a.c.postJSON(ctx, "/auth/login", body, &out); err != nil {
		return "", err
	}
	if out.Data == "" {
		return "", errors.New("login: no token returned")
	}

	return out.Data, nil
}

// RegisterInput carries the email-registration form fields.
type RegisterInput struct {
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      auth.Role `json:"role"`
}

// RegisteredUser is the remote account record returned alongside the token.
type RegisteredUser struct {
	ID    int64     `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  auth.Role `json:"role"`
}

// RegisterEmail creates an account and returns the pre-issued session token.
// POST /auth/register/email -> {data: {jwtToken, user}}.
func (a *AuthClient) RegisterEmail(ctx context.Context, input RegisterInput) (string, RegisteredUser, error) {
	var out struct {
		Data struct {
			JWTToken string         `json:"jwtToken"`
			User     RegisteredUser `json:"user"`
		} `json:"data"`
	}
	if err := a.c.postJSON(ctx, "/auth/register/email", input, &out); err != nil {
		return "", RegisteredUser{}, err
	}
	if out.Data.JWTToken == "" {
		return "", RegisteredUser{}, errors.New("register: no token returned")
	}

	return out.Data.JWTToken, out.Data.User, nil
}
