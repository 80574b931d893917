// Package token implements the session-token codec and the two places a
// token lives: the durable client-side slot and the per-request cookie jar.
// Decoding is kept separate from storage so the same claims/expiry rules run
// in both execution contexts.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voluntree/voluntree-ui/internal/domain/auth"
)

// ErrInvalidToken is returned when a raw token is empty, malformed, or does
// not parse as a signed-token structure.
var ErrInvalidToken = errors.New("invalid token")

// wireClaims is the on-the-wire claim set issued by the identity service.
type wireClaims struct {
	UserID   int64  `json:"userId"`
	Role     string `json:"role"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// Decode parses the claims out of a raw signed token. It performs no
// signature verification; the issuing service is trusted at this boundary.
// Pure: no I/O, no side effects.
func Decode(raw string) (auth.Claims, error) {
	if raw == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var wc wireClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &wc); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims := auth.Claims{
		SubjectID: wc.UserID,
		Role:      auth.Role(wc.Role),
		Provider:  auth.Provider(wc.Provider),
	}
	if wc.IssuedAt != nil {
		claims.IssuedAt = wc.IssuedAt.Unix()
	}
	if wc.ExpiresAt != nil {
		claims.ExpiresAt = wc.ExpiresAt.Unix()
	}

	return claims, nil
}

// IsExpired reports whether the raw token's expiry has passed. A missing,
// unparsable, or expiry-less token counts as expired.
func IsExpired(raw string) bool {
	claims, err := Decode(raw)
	if err != nil {
		return true
	}
	return claims.Expired()
}
