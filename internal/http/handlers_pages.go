package httpx

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/voluntree/voluntree-ui/internal/api"
	domainauth "github.com/voluntree/voluntree-ui/internal/domain/auth"
	"github.com/voluntree/voluntree-ui/internal/session"
)

//go:embed templates
var templateFS embed.FS

// PageData is the view model shared by all HTML pages.
type PageData struct {
	Title         string
	Authenticated bool
	SubjectID     int64
	Role          domainauth.Role
	Error         string
	RedirectTo    string
	Listings      []api.Listing
}

// PageHandlers renders the HTML pages. Each page owns its own template set
// so every page can define "content" against the shared layout.
type PageHandlers struct {
	Listings session.ListingsAPI
	Logger   *slog.Logger

	pages map[string]*template.Template
}

// NewPageHandlers parses the embedded templates. Parsing failures are
// programmer errors and surface at startup.
func NewPageHandlers(listings session.ListingsAPI, logger *slog.Logger) (*PageHandlers, error) {
	if logger == nil {
		logger = slog.Default()
	}

	names := []string{"home", "login", "register", "dashboard", "org_dashboard", "listings"}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.ParseFS(templateFS,
			"templates/layout.tmpl",
			"templates/pages/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}

	return &PageHandlers{Listings: listings, Logger: logger, pages: pages}, nil
}

// render executes the page into a buffer first so a mid-render failure
// never leaks a half-written body.
func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		data.Authenticated = true
		data.SubjectID = claims.SubjectID
		data.Role = claims.Role
	}

	t, ok := h.pages[name]
	if !ok {
		h.Logger.ErrorContext(r.Context(), "unknown page template", slog.String("page", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.Logger.ErrorContext(r.Context(), "page render failed",
			slog.String("page", name), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.ErrorContext(r.Context(), "page write failed",
			slog.String("page", name), slog.Any("error", err))
	}
}

// Home renders the public landing page.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home", PageData{Title: "Welcome"})
}

// LoginPage renders the sign-in form. A rejected submission redirects back
// here with the message in the error query parameter.
func (h *PageHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title: "Sign in",
		Error: r.URL.Query().Get("error"),
	}
	if target := r.URL.Query().Get("redirectTo"); target != "" {
		if safe := safeRedirectPath(target); safe != "/" {
			data.RedirectTo = safe
		}
	}
	h.render(w, r, "login", data)
}

// RegisterPage renders the account-creation form.
func (h *PageHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", PageData{
		Title: "Join",
		Error: r.URL.Query().Get("error"),
	})
}

// Dashboard renders the volunteer dashboard.
func (h *PageHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "dashboard", PageData{Title: "Dashboard"})
}

// ListingsPage renders one organization's open listings for browsing.
func (h *PageHandlers) ListingsPage(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Listings"}

	orgID, err := strconv.ParseInt(r.PathValue("orgID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if h.Listings != nil {
		listings, ferr := h.Listings.ByOrganization(r.Context(), orgID)
		if ferr != nil {
			h.Logger.WarnContext(r.Context(), "listings fetch failed",
				slog.Int64("organization_id", orgID), slog.Any("error", ferr))
		} else {
			data.Listings = listings
		}
	}

	h.render(w, r, "listings", data)
}

// OrgDashboard renders the organization dashboard with its listings. A
// failed fetch degrades to an empty list; the page still renders.
func (h *PageHandlers) OrgDashboard(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Organization dashboard"}

	if claims, ok := ClaimsFromContext(r.Context()); ok && h.Listings != nil {
		listings, err := h.Listings.ByOrganization(r.Context(), claims.SubjectID)
		if err != nil {
			h.Logger.WarnContext(r.Context(), "listings fetch failed",
				slog.Int64("subject_id", claims.SubjectID), slog.Any("error", err))
		} else {
			data.Listings = listings
		}
	}

	h.render(w, r, "org_dashboard", data)
}
