package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voluntree/voluntree-ui/internal/api"
	domainauth "github.com/voluntree/voluntree-ui/internal/domain/auth"
)

type stubListings struct {
	listings []api.Listing
	err      error
	lastOrg  int64
}

func (s *stubListings) ByOrganization(_ context.Context, orgID int64) ([]api.Listing, error) {
	s.lastOrg = orgID
	return s.listings, s.err
}

func newTestPages(t *testing.T, listings *stubListings) *PageHandlers {
	t.Helper()
	pages, err := NewPageHandlers(listings, nil)
	require.NoError(t, err)
	return pages
}

func TestHomePageRenders(t *testing.T) {
	pages := newTestPages(t, &stubListings{})

	rec := httptest.NewRecorder()
	pages.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "volunteer work")
	assert.Contains(t, rec.Body.String(), "/auth/login")
}

func TestLoginPageShowsInlineError(t *testing.T) {
	pages := newTestPages(t, &stubListings{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login?error=Wrong+email+or+password", nil)
	rec := httptest.NewRecorder()
	pages.LoginPage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong email or password")
}

func TestOrgDashboardListsListings(t *testing.T) {
	listings := &stubListings{listings: []api.Listing{
		{ID: 1, Title: "Beach cleanup", Location: "Shoreline Park"},
		{ID: 2, Title: "Food drive"},
	}}
	pages := newTestPages(t, listings)

	claims := &domainauth.Claims{SubjectID: 7, Role: domainauth.RoleOrganization}
	req := httptest.NewRequest(http.MethodGet, "/org-dashboard", nil)
	req = req.WithContext(SetClaimsInContext(req.Context(), claims))

	rec := httptest.NewRecorder()
	pages.OrgDashboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), listings.lastOrg)
	assert.Contains(t, rec.Body.String(), "Beach cleanup")
	assert.Contains(t, rec.Body.String(), "Food drive")
}

func TestOrgDashboardDegradesOnFetchFailure(t *testing.T) {
	pages := newTestPages(t, &stubListings{err: errors.New("upstream down")})

	claims := &domainauth.Claims{SubjectID: 7, Role: domainauth.RoleOrganization}
	req := httptest.NewRequest(http.MethodGet, "/org-dashboard", nil)
	req = req.WithContext(SetClaimsInContext(req.Context(), claims))

	rec := httptest.NewRecorder()
	pages.OrgDashboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no listings yet")
}

func TestListingsPage(t *testing.T) {
	t.Run("fetches the path organization", func(t *testing.T) {
		listings := &stubListings{listings: []api.Listing{{ID: 3, Title: "Tree planting"}}}
		pages := newTestPages(t, listings)

		req := httptest.NewRequest(http.MethodGet, "/listings/12", nil)
		req.SetPathValue("orgID", "12")

		rec := httptest.NewRecorder()
		pages.ListingsPage(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(12), listings.lastOrg)
		assert.Contains(t, rec.Body.String(), "Tree planting")
	})

	t.Run("non-numeric organization id is not found", func(t *testing.T) {
		pages := newTestPages(t, &stubListings{})

		req := httptest.NewRequest(http.MethodGet, "/listings/abc", nil)
		req.SetPathValue("orgID", "abc")

		rec := httptest.NewRecorder()
		pages.ListingsPage(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
