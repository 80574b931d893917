package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voluntree/voluntree-ui/internal/api"
	"github.com/voluntree/voluntree-ui/internal/domain/auth"
	"github.com/voluntree/voluntree-ui/internal/token"
)

type fakeListingsAPI struct {
	mu    sync.Mutex
	calls []int64
	err   error
}

func (f *fakeListingsAPI) ByOrganization(_ context.Context, organizationID int64) ([]api.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, organizationID)
	if f.err != nil {
		return nil, f.err
	}
	return []api.Listing{{ID: 1, OrganizationID: organizationID}}, nil
}

func (f *fakeListingsAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestBootstrapListener_OrganizationFetchesListings(t *testing.T) {
	listings := &fakeListingsAPI{}
	listener := NewBootstrapListener(listings, nil)

	store := newTestStore(t)
	listener.Attach(store)

	require.NoError(t, store.Authenticate(context.Background(), validClaims(), "raw"))
	listener.Wait()

	require.Equal(t, 1, listings.callCount())
	assert.Equal(t, int64(42), listings.calls[0])
}

func TestBootstrapListener_VolunteerIsNoOp(t *testing.T) {
	listings := &fakeListingsAPI{}
	listener := NewBootstrapListener(listings, nil)

	store := newTestStore(t)
	listener.Attach(store)

	claims := validClaims()
	claims.Role = auth.RoleVolunteer
	require.NoError(t, store.Authenticate(context.Background(), claims, "raw"))
	listener.Wait()

	assert.Zero(t, listings.callCount())
}

func TestBootstrapListener_FetchFailureIsLoggedNotThrown(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	listings := &fakeListingsAPI{err: errors.New("listings unavailable")}
	listener := NewBootstrapListener(listings, logger)

	tokens := token.NewStore(token.NewMemoryStorage(), nil)
	store := NewStore(tokens, logger)
	listener.Attach(store)

	ctx := context.Background()
	require.NoError(t, store.Authenticate(ctx, validClaims(), "raw"))
	listener.Wait()

	// The transition stands; the failure is recorded with its context.
	assert.True(t, store.IsAuthenticated())
	assert.Contains(t, logBuf.String(), "bootstrap fetch failed")
	assert.Contains(t, logBuf.String(), "listings_by_organization")
	assert.Contains(t, logBuf.String(), "subject_id=42")
}

func TestBootstrapListener_RunsOncePerTransitionInstance(t *testing.T) {
	listings := &fakeListingsAPI{}
	listener := NewBootstrapListener(listings, nil)

	store := newTestStore(t)
	listener.Attach(store)
	ctx := context.Background()

	require.NoError(t, store.Authenticate(ctx, validClaims(), "raw-1"))
	store.Clear(ctx)
	require.NoError(t, store.Authenticate(ctx, validClaims(), "raw-2"))
	listener.Wait()

	assert.Equal(t, 2, listings.callCount())
}
