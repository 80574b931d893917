package session

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/voluntree/voluntree-ui/internal/api"
	"github.com/voluntree/voluntree-ui/internal/domain/auth"
)

// ListingsAPI is the listings collaborator the bootstrap listener fetches
// through after an organization logs in.
type ListingsAPI interface {
	ByOrganization(ctx context.Context, organizationID int64) ([]api.Listing, error)
}

// BootstrapListener fetches role-dependent follow-up state after each
// fulfilled authenticate transition. It runs detached from the triggering
// action: follow-up failures are logged, never surfaced, and never roll the
// session back.
type BootstrapListener struct {
	listings ListingsAPI
	logger   *slog.Logger
	group    singleflight.Group
	wg       sync.WaitGroup
}

// NewBootstrapListener creates a listener over the listings collaborator.
func NewBootstrapListener(listings ListingsAPI, logger *slog.Logger) *BootstrapListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &BootstrapListener{listings: listings, logger: logger}
}

// Attach registers the listener on the store's authenticate-succeeded
// events. Call once at process start.
func (l *BootstrapListener) Attach(store *Store) {
	store.Subscribe(l.Handle)
}

// Handle starts the bootstrap task for one transition event. The latch is
// keyed to the event instance: a re-entrant trigger for the same event joins
// the in-flight task instead of duplicating it, while a later logout+login
// cycle carries a fresh event ID and bootstraps again.
func (l *BootstrapListener) Handle(evt Event) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.group.Do(evt.ID.String(), func() (any, error) { //nolint:errcheck // the task reports through logs only
			l.bootstrap(context.Background(), evt)
			return nil, nil
		})
	}()
}

// Wait blocks until all in-flight bootstrap tasks finish. Used on shutdown
// and in tests; the tasks themselves are not cancellable once started.
func (l *BootstrapListener) Wait() {
	l.wg.Wait()
}

type followUp struct {
	name string
	run  func(context.Context) error
}

// bootstrap inspects the just-authenticated role and runs its follow-up
// fetches. Fetches fail independently: one failure never stops the others,
// and each is logged with enough context to diagnose.
func (l *BootstrapListener) bootstrap(ctx context.Context, evt Event) {
	if evt.Claims.Role != auth.RoleOrganization {
		// No follow-up state is defined for volunteers or admins.
		return
	}

	subjectID := evt.Claims.SubjectID
	fetches := []followUp{
		{
			name: "listings_by_organization",
			run: func(ctx context.Context) error {
				_, err := l.listings.ByOrganization(ctx, subjectID)
				return err
			},
		},
	}

	var wg sync.WaitGroup
	for _, f := range fetches {
		wg.Add(1)
		go func(f followUp) {
			defer wg.Done()
			if err := f.run(ctx); err != nil {
				l.logger.Error("bootstrap fetch failed",
					slog.String("fetch", f.name),
					slog.Int64("subject_id", subjectID),
					slog.Any("error", err),
				)
			}
		}(f)
	}
	wg.Wait()
}
