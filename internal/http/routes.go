package httpx

import (
	"log/slog"
	"net/http"

	"github.com/voluntree/voluntree-ui/internal/session"
)

// RouterServices holds the collaborators the HTTP router needs.
type RouterServices struct {
	Auth         AuthFlow
	Session      *session.Store
	Listings     session.ListingsAPI
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter wires the routes and middleware for the whole surface.
// Every HTML page sits behind the route gate; the dashboard area
// additionally enforces role placement.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pages, err := NewPageHandlers(services.Listings, logger)
	if err != nil {
		return nil, err
	}
	auth := &AuthHandlers{
		Svc:          services.Auth,
		Session:      services.Session,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}

	gate := Gate(logger)
	areaGate := AreaGate(logger)

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", gate(http.HandlerFunc(pages.Home)))
	mux.Handle("GET /auth/login", gate(http.HandlerFunc(pages.LoginPage)))
	mux.Handle("GET /auth/register", gate(http.HandlerFunc(pages.RegisterPage)))
	mux.Handle("GET /dashboard", areaGate(http.HandlerFunc(pages.Dashboard)))
	mux.Handle("GET /org-dashboard", gate(http.HandlerFunc(pages.OrgDashboard)))
	mux.Handle("GET /listings/{orgID}", gate(http.HandlerFunc(pages.ListingsPage)))

	mux.Handle("POST /auth/login", http.HandlerFunc(auth.Login))
	mux.Handle("POST /auth/register", http.HandlerFunc(auth.Register))
	mux.Handle("POST /auth/logout", http.HandlerFunc(auth.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(auth.Status))
	mux.Handle("GET /success-google", gate(http.HandlerFunc(auth.GoogleCallback)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux, nil
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
