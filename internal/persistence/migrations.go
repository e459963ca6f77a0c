package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// newMigrationProvider loads the embedded goose migrations kept under
// migrations/<dir> for db.
func newMigrationProvider(db *sql.DB, dialect goose.Dialect, dir string) (*goose.Provider, error) {
	source, err := fs.Sub(migrationsFS, "migrations/"+dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, source)
}

func runMigrations(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string, logger *zap.Logger) error {
	provider, err := newMigrationProvider(db, dialect, dir)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, result := range results {
		logger.Info("applied migration",
			zap.Int64("version", result.Source.Version),
			zap.String("path", result.Source.Path),
			zap.Duration("duration", result.Duration))
	}

	logger.Info("migrations applied", zap.String("dialect", dir), zap.Int("count", len(results)))
	return nil
}
