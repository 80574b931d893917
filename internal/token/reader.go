package token

import (
	"net/http"

	"github.com/voluntree/voluntree-ui/internal/domain/auth"
)

// ServerReader reads the session token from an incoming request's cookie jar
// during server-side route evaluation. It is read-only by design: session
// writes happen only from genuine login/register/callback actions, never
// while evaluating a navigation. One instance serves a single request.
type ServerReader struct {
	req *http.Request
}

func NewServerReader(r *http.Request) *ServerReader {
	return &ServerReader{req: r}
}

// Get returns the raw token from the request's token cookie, or "" when the
// cookie is absent.
func (sr *ServerReader) Get() string {
	if sr == nil || sr.req == nil {
		return ""
	}
	c, err := sr.req.Cookie(CookieToken)
	if err != nil {
		return ""
	}
	return c.Value
}

// Decode returns the decoded claims, or nil on any decode failure or when
// the claims have expired. It never returns an error: absence of claims is
// the only failure mode callers see.
func (sr *ServerReader) Decode() *auth.Claims {
	raw := sr.Get()
	if raw == "" {
		return nil
	}

	claims, err := Decode(raw)
	if err != nil {
		return nil
	}
	if claims.Expired() {
		return nil
	}

	return &claims
}

// IsExpired reports whether the request carries no usable session.
func (sr *ServerReader) IsExpired() bool {
	return sr.Decode() == nil
}
