package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voluntree/voluntree-ui/internal/domain/auth"
)

// mintToken creates a signed token in the shape the identity service issues.
func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return raw
}

func mintSessionToken(t *testing.T, subjectID int64, role auth.Role, expiresAt int64) string {
	t.Helper()
	return mintToken(t, jwt.MapClaims{
		"userId":   subjectID,
		"role":     string(role),
		"provider": string(auth.ProviderLocal),
		"iat":      time.Now().Unix(),
		"exp":      expiresAt,
	})
}

func TestDecode_ValidToken(t *testing.T) {
	exp := time.Now().Unix() + 3600
	raw := mintSessionToken(t, 42, auth.RoleOrganization, exp)

	claims, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.SubjectID)
	assert.Equal(t, auth.RoleOrganization, claims.Role)
	assert.Equal(t, auth.ProviderLocal, claims.Provider)
	assert.Equal(t, exp, claims.ExpiresAt)
	assert.False(t, claims.Expired())
}

func TestDecode_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not a token", raw: "garbage"},
		{name: "two segments", raw: "aaaa.bbbb"},
		{name: "bad base64", raw: "!!.!!.!!"},
		{name: "bad payload json", raw: "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.True(t, IsExpired(tt.raw), "invalid token must count as expired")
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now().Unix()

	assert.True(t, IsExpired(mintSessionToken(t, 1, auth.RoleVolunteer, now-1)))
	assert.False(t, IsExpired(mintSessionToken(t, 1, auth.RoleVolunteer, now+3600)))

	// A token without any exp claim fails safe.
	noExp := mintToken(t, jwt.MapClaims{"userId": 1, "role": "volunteer"})
	assert.True(t, IsExpired(noExp))
}

func TestDecode_ProducesNewValue(t *testing.T) {
	raw := mintSessionToken(t, 7, auth.RoleVolunteer, time.Now().Unix()+60)

	a, err := Decode(raw)
	require.NoError(t, err)
	b, err := Decode(raw)
	require.NoError(t, err)

	// Each decode yields an independent value; mutating one must not leak.
	a.SubjectID = 99
	assert.Equal(t, int64(7), b.SubjectID)
}
