package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/config"
	"github.com/spec-kit/usuario-service/internal/domain"
	"github.com/spec-kit/usuario-service/internal/persistence"
)

// openSQLite returns a migrated in-memory database private to the test.
func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	store, err := persistence.NewSQLite(ctx, config.SQLiteConfig{
		Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Migrate(ctx, zap.NewNop()))
	return store.DB
}

func seedUsers(t *testing.T, repo UserRepository, users ...domain.User) []domain.User {
	t.Helper()
	created := make([]domain.User, 0, len(users))
	for i := range users {
		u := users[i]
		require.NoError(t, repo.Create(context.Background(), &u))
		created = append(created, u)
	}
	return created
}

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM usuarios`).Scan(&n))
	return n
}
