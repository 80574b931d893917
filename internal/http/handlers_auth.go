package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/voluntree/voluntree-ui/internal/api"
	domainauth "github.com/voluntree/voluntree-ui/internal/domain/auth"
	"github.com/voluntree/voluntree-ui/internal/service"
	"github.com/voluntree/voluntree-ui/internal/session"
)

// AuthFlow defines the interface for authentication flow operations.
type AuthFlow interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Register(ctx context.Context, input api.RegisterInput) (*service.LoginResult, error)
	LoginWithToken(ctx context.Context, raw string) (*service.LoginResult, error)
	Logout(ctx context.Context)
}

// AuthHandlers provides HTTP handlers for authentication operations.
// These handlers are the only writers of the mirrored cookie pair: each
// fulfilled exchange writes both cookies in the same action as the session
// transition, and logout clears them the same way.
type AuthHandlers struct {
	Svc          AuthFlow
	Session      *session.Store
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles the login submission.
// POST /auth/login (JSON body or form fields email/password).
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if isJSONRequest(r) {
		if !DecodeJSON(w, r, &input) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return
		}
		input.Email = r.PostFormValue("email")
		input.Password = r.PostFormValue("password")
	}

	result, err := h.Svc.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		h.writeAuthFailure(w, r, err)
		return
	}

	SetAuthCookies(w, r, h.CookieDomain, result.RawToken, result.Claims.Role)
	h.respondAuthenticated(w, r, result)
}

// Register handles the registration submission.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var input api.RegisterInput
	if isJSONRequest(r) {
		if !DecodeJSON(w, r, &input) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return
		}
		input = api.RegisterInput{
			Email:     r.PostFormValue("email"),
			Password:  r.PostFormValue("password"),
			FirstName: r.PostFormValue("firstName"),
			LastName:  r.PostFormValue("lastName"),
			Role:      domainauth.Role(r.PostFormValue("role")),
		}
	}

	result, err := h.Svc.Register(r.Context(), input)
	if err != nil {
		h.writeAuthFailure(w, r, err)
		return
	}

	SetAuthCookies(w, r, h.CookieDomain, result.RawToken, result.Claims.Role)
	h.respondAuthenticated(w, r, result)
}

// GoogleCallback handles the OAuth callback page. The identity provider
// redirects back with a pre-issued token in the access_token query
// parameter; its absence is a failed login attempt, not an error.
// GET /success-google?access_token=<token>.
func (h *AuthHandlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("access_token")
	if raw == "" {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	result, err := h.Svc.LoginWithToken(r.Context(), raw)
	if err != nil {
		h.logger().WarnContext(r.Context(), "oauth callback token rejected", "error", err)
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	SetAuthCookies(w, r, h.CookieDomain, result.RawToken, result.Claims.Role)

	home := roleHome(result.Claims.Role)
	if home == "" {
		home = "/"
	}
	http.Redirect(w, r, home, http.StatusSeeOther)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Svc.Logout(r.Context())
	ClearAuthCookies(w, r, h.CookieDomain)

	if isJSONRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": "/"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Status returns the current client-side session state.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	state := h.Session.Snapshot()
	if !state.IsAuthenticated {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"status":        state.Status,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":       state.SubjectID,
			"role":     state.Role,
			"provider": state.Provider,
		},
		"status": state.Status,
	})
}

// respondAuthenticated finishes a fulfilled exchange: JSON for API callers,
// a redirect to the requested return target or the role home for forms.
func (h *AuthHandlers) respondAuthenticated(w http.ResponseWriter, r *http.Request, result *service.LoginResult) {
	if isJSONRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"user": map[string]any{
				"id":   result.Claims.SubjectID,
				"role": result.Claims.Role,
			},
		})
		return
	}

	target := safeRedirectPath(r.URL.Query().Get("redirectTo"))
	if target == "/" {
		if home := roleHome(result.Claims.Role); home != "" {
			target = home
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// writeAuthFailure surfaces a rejected exchange to the initiating action.
// The envelope's message is the user-facing text; the code rides along for
// programmatic branching.
func (h *AuthHandlers) writeAuthFailure(w http.ResponseWriter, r *http.Request, err error) {
	code := "UNKNOWN_ERROR"
	message := "Something went wrong"
	status := http.StatusBadGateway

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		code = apiErr.Code
		message = apiErr.Message
		status = apiErr.Status
	}

	h.logger().WarnContext(r.Context(), "credential exchange rejected",
		slog.String("code", code), slog.Any("error", err))

	if isJSONRequest(r) {
		WriteJSON(w, status, map[string]string{"error": code, "message": message})
		return
	}

	// Send the form back to the login page with the inline message.
	q := url.Values{}
	q.Set("error", message)
	http.Redirect(w, r, LoginPath+"?"+q.Encode(), http.StatusSeeOther)
}

func isJSONRequest(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// safeRedirectPath ensures the provided redirect is a same-origin relative
// path starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
