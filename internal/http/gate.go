package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/voluntree/voluntree-ui/internal/domain/auth"
	"github.com/voluntree/voluntree-ui/internal/token"
)

// Route targets used by the gate.
const (
	LoginPath        = "/auth/login"
	DashboardPath    = "/dashboard"
	OrgDashboardPath = "/org-dashboard"
)

// Decision is the outcome of evaluating one navigation: either the request
// proceeds unmodified or it is redirected.
type Decision struct {
	RedirectTo string
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool { return d.RedirectTo == "" }

// isPublicRoute reports whether the path needs no session: the home page,
// the auth pages, and the OAuth callback page.
func isPublicRoute(path string) bool {
	return path == "/" ||
		strings.HasPrefix(path, "/auth") ||
		strings.HasPrefix(path, "/success-google")
}

// loginRedirect points at the login page, preserving the originally
// requested path as the return target.
func loginRedirect(path string) Decision {
	return Decision{RedirectTo: LoginPath + "?redirectTo=" + url.QueryEscape(path)}
}

// roleHome returns the authenticated home for a role, or "" when the role
// has no dedicated home (admin and anything unrecognized fall through).
func roleHome(role domainauth.Role) string {
	switch role {
	case domainauth.RoleOrganization:
		return OrgDashboardPath
	case domainauth.RoleVolunteer:
		return DashboardPath
	default:
		return ""
	}
}

// Evaluate is the primary gate decision: a pure function over the requested
// path and the decoded claims (nil means no valid session — decode failures
// are handled identically, fail closed).
func Evaluate(path string, claims *domainauth.Claims) Decision {
	if isPublicRoute(path) {
		if claims != nil {
			if home := roleHome(claims.Role); home != "" {
				return Decision{RedirectTo: home}
			}
		}
		return Decision{}
	}

	if claims == nil {
		return loginRedirect(path)
	}

	return Decision{}
}

// EvaluateArea is the secondary gate for the volunteer dashboard area. It
// enforces role segregation on top of the primary gate: organizations are
// sent to their own dashboard, unknown roles back to login.
func EvaluateArea(path string, claims *domainauth.Claims) Decision {
	if claims == nil {
		return loginRedirect(path)
	}

	switch claims.Role {
	case domainauth.RoleVolunteer, domainauth.RoleAdmin:
		return Decision{}
	case domainauth.RoleOrganization:
		return Decision{RedirectTo: OrgDashboardPath}
	default:
		return Decision{RedirectTo: LoginPath}
	}
}

type evaluator func(path string, claims *domainauth.Claims) Decision

// gateWith wraps a handler with one gate evaluator. The gate runs before
// any page-level state exists: it reads the request's own cookie jar
// through the server token reader, so it never waits on the client-side
// session store.
func gateWith(eval evaluator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Gating applies to page navigations; form/API submissions carry
			// their own auth handling.
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			claims := token.NewServerReader(r).Decode()
			if d := eval(r.URL.Path, claims); !d.Allowed() {
				if logger != nil {
					logger.Debug("gate redirect",
						slog.String("path", r.URL.Path),
						slog.String("to", d.RedirectTo),
						slog.Bool("authenticated", claims != nil),
					)
				}
				http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetClaimsInContext(r.Context(), claims)))
		})
	}
}

// Gate returns the primary route-gate middleware.
func Gate(logger *slog.Logger) func(http.Handler) http.Handler {
	return gateWith(Evaluate, logger)
}

// AreaGate returns the volunteer-area middleware, mounted on the dashboard
// subtree in addition to the primary gate.
func AreaGate(logger *slog.Logger) func(http.Handler) http.Handler {
	return gateWith(EvaluateArea, logger)
}
