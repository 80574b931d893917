package httpx

import (
	"net/http"
	"strings"
	"time"

	domainauth "github.com/voluntree/voluntree-ui/internal/domain/auth"
	"github.com/voluntree/voluntree-ui/internal/token"
)

// CookieMaxAge is the fixed lifetime of the mirrored cookie pair: 7 days.
const CookieMaxAge = 7 * 24 * 60 * 60

// SetAuthCookies writes the mirrored cookie pair: the raw token and the
// plain role string. The role cookie is redundant with the token's own
// claim; it exists for fast server-side role checks without a full decode.
// Only the login/register/callback handlers call this, as the cookie-write
// half of the authenticate transition.
func SetAuthCookies(w http.ResponseWriter, r *http.Request, domain, raw string, role domainauth.Role) {
	isSecure := isSecureRequest(r)

	http.SetCookie(w, &http.Cookie{
		Name:     token.CookieToken,
		Value:    raw,
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   CookieMaxAge,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     token.CookieRole,
		Value:    string(role),
		Path:     "/",
		Domain:   domain,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   CookieMaxAge,
	})
}

// ClearAuthCookies expires both mirrored cookies. It mirrors the attributes
// used when setting them to maximize deletion compatibility across browsers.
func ClearAuthCookies(w http.ResponseWriter, r *http.Request, domain string) {
	isSecure := isSecureRequest(r)

	for _, name := range []string{token.CookieToken, token.CookieRole} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   domain,
			Secure:   isSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0).UTC(),
		})
	}
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
