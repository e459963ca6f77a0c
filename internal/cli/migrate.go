package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/config"
	"github.com/spec-kit/usuario-service/internal/observability"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the usuarios table and exit",
		Long: `Apply the embedded schema migrations for the configured store driver.

Example:
  usuarios migrate --env-file ./dev.env`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), rootOpts)
		},
	}
}

func runMigrate(ctx context.Context, opts *RootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

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

	if err := store.migrate(ctx, logger); err != nil {
		return err
	}
	logger.Info("migrations applied", zap.String("driver", cfg.Store.Driver))
	return nil
}
