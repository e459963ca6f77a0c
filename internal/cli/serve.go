package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/usuario-service/internal/api/http"
	"github.com/spec-kit/usuario-service/internal/api/http/handlers"
	"github.com/spec-kit/usuario-service/internal/config"
	"github.com/spec-kit/usuario-service/internal/events"
	"github.com/spec-kit/usuario-service/internal/observability"
	"github.com/spec-kit/usuario-service/internal/persistence"
	"github.com/spec-kit/usuario-service/internal/service"
	"github.com/spec-kit/usuario-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the usuario HTTP server.

The store driver, listen address and optional Redis event relay are read from
the environment (after loading --env-file). The server stops gracefully on
SIGINT or SIGTERM.

Example:
  usuarios serve --env-file ./dev.env`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(parent context.Context, opts *RootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	if cfg.Store.RunMigrations {
		if err := store.migrate(ctx, logger); err != nil {
			return err
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	app := newServer(cfg, logger, store, rdb)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(context.Cause(ctx)))
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("shutdown incomplete", zap.Error(err))
		return err
	}
	return nil
}

// newServer wires the service graph onto a fiber app. rdb may be nil.
func newServer(cfg *config.Config, logger *zap.Logger, store *userStore, rdb *persistence.Redis) *fiber.App {
	checks := []handlers.DependencyCheck{store.check()}

	var relay service.EventRelay
	if rdb != nil {
		relay = events.NewRedisPublisher(rdb.Client, cfg.Redis.EventsChannel)
		checks = append(checks, handlers.DependencyCheck{Name: "redis", Pinger: rdb})
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartEventRelay(dispatcher, relay, logger)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   store.repo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Home:   handlers.NewHomeHandler(cfg.App.Name, cfg.App.Version),
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, checks...),
		Users:  handlers.NewUsersHandler(userService),
	})

	return app
}
