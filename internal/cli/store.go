package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/api/http/handlers"
	"github.com/spec-kit/usuario-service/internal/config"
	"github.com/spec-kit/usuario-service/internal/persistence"
	"github.com/spec-kit/usuario-service/internal/repository"
)

// userStore is the store handle selected by STORE_DRIVER.
type userStore struct {
	name    string
	repo    repository.UserRepository
	pinger  handlers.Pinger
	migrate func(ctx context.Context, logger *zap.Logger) error
	close   func()
}

func (s *userStore) check() handlers.DependencyCheck {
	return handlers.DependencyCheck{Name: s.name, Pinger: s.pinger}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*userStore, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &userStore{
			name:    config.DriverPostgres,
			repo:    repository.NewPostgresUserRepository(pg.PoolHandle()),
			pinger:  pg,
			migrate: pg.Migrate,
			close:   pg.Close,
		}, nil
	case config.DriverSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &userStore{
			name:    config.DriverSQLite,
			repo:    repository.NewSQLUserRepository(db.DB, repository.DialectSQLite),
			pinger:  db,
			migrate: db.Migrate,
			close:   db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
