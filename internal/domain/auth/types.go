// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.
package auth

import "time"

// Role represents the principal's account type.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleVolunteer    Role = "volunteer"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleVolunteer, RoleOrganization, RoleAdmin:
		return true
	default:
		return false
	}
}

// Provider represents how the credential was established.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderPhone  Provider = "phone"
	ProviderGoogle Provider = "google"
)

// Claims is the decoded payload of a signed session token.
// A Claims value is immutable once produced; a new token always yields a
// new value.
type Claims struct {
	SubjectID int64    `json:"userId"`
	Role      Role     `json:"role"`
	Provider  Provider `json:"provider"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
}

// ExpiredAt reports whether the claims have expired at the given instant.
// Claims with no numeric expiry are treated as expired (fail safe).
// The exp claim is seconds since epoch; the comparison is in milliseconds.
func (c Claims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt <= 0 {
		return true
	}
	return now.UnixMilli() > c.ExpiresAt*1000
}

// Expired reports whether the claims have expired now.
func (c Claims) Expired() bool { return c.ExpiredAt(time.Now()) }

// Status represents the lifecycle of the most recent authentication attempt.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Error is the user-facing error pair carried by a rejected credential
// exchange. Code is retained for programmatic branching; Message is for
// display.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}
