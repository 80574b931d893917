package bootstrap

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/voluntree/voluntree-ui/config"
	"github.com/voluntree/voluntree-ui/internal/adapters/redis"
	"github.com/voluntree/voluntree-ui/internal/api"
	"github.com/voluntree/voluntree-ui/internal/service"
	"github.com/voluntree/voluntree-ui/internal/session"
	"github.com/voluntree/voluntree-ui/internal/token"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Tokens   *token.Store
	Session  *session.Store
	Auth     *service.AuthService
	Listings *api.ListingsClient
	Listener *session.BootstrapListener
}

// ServicesConfig contains dependencies for service initialization.
type ServicesConfig struct {
	Config *config.AppConfig
	Redis  goredis.UniversalClient
	Logger *slog.Logger
}

// InitServices wires the token store, session store, upstream clients, and
// the bootstrap listener. The listener is attached before the session is
// hydrated so a future sign-in always has a live subscriber; hydration
// itself seeds without emitting.
func InitServices(ctx context.Context, cfg ServicesConfig) ServiceContainer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens := token.NewStore(redis.NewTokenStorage(cfg.Redis), logger)
	sess := session.NewStore(tokens, logger)

	authAPI := api.NewAuthClient(cfg.Config.API.AuthBaseURL, cfg.Config.API.Timeout)
	listings := api.NewListingsClient(cfg.Config.API.ListingsBaseURL, cfg.Config.API.Timeout)

	listener := session.NewBootstrapListener(listings, logger)
	listener.Attach(sess)

	auth := service.NewAuthService(service.AuthServiceOptions{
		API:     authAPI,
		Session: sess,
		Tokens:  tokens,
		Logger:  logger,
	})

	if auth.Hydrate(ctx) {
		logger.Info("session restored from durable token slot")
	}

	return ServiceContainer{
		Tokens:   tokens,
		Session:  sess,
		Auth:     auth,
		Listings: listings,
		Listener: listener,
	}
}
