package persistence

import (
	"context"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/config"
)

func openTestSQLite(t *testing.T, name string) *SQLite {
	t.Helper()
	store, err := NewSQLite(context.Background(), config.SQLiteConfig{
		Path: "file:" + name + "?mode=memory&cache=shared",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestMigrationSourcesPerDialect(t *testing.T) {
	store := openTestSQLite(t, "migration_sources")

	cases := []struct {
		dir     string
		dialect goose.Dialect
	}{
		{"postgres", goose.DialectPostgres},
		{"sqlite", goose.DialectSQLite3},
	}
	for _, tc := range cases {
		t.Run(tc.dir, func(t *testing.T) {
			provider, err := newMigrationProvider(store.DB, tc.dialect, tc.dir)
			require.NoError(t, err)
			sources := provider.ListSources()
			require.NotEmpty(t, sources)
			assert.Equal(t, int64(1), sources[0].Version)
			assert.Contains(t, sources[0].Path, "create_usuarios")
		})
	}
}

func TestMigrationSourcesUnknownDialect(t *testing.T) {
	store := openTestSQLite(t, "migration_unknown")
	_, err := newMigrationProvider(store.DB, goose.DialectSQLite3, "oracle")
	require.Error(t, err)
}

func TestSQLiteUnicodeLower(t *testing.T) {
	store := openTestSQLite(t, "unicode_lower")

	var lowered string
	require.NoError(t, store.DB.QueryRow(`SELECT unicode_lower('JOÃO CONCEIÇÃO')`).Scan(&lowered))
	assert.Equal(t, "joão conceição", lowered)
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := openTestSQLite(t, "migrate_idempotent")

	require.NoError(t, store.Migrate(ctx, logger))
	require.NoError(t, store.Migrate(ctx, logger))

	var version int64
	require.NoError(t, store.DB.QueryRowContext(ctx, `SELECT MAX(version_id) FROM goose_db_version`).Scan(&version))
	assert.Equal(t, int64(1), version)

	_, err := store.DB.ExecContext(ctx, `INSERT INTO usuarios (nome, email) VALUES ('Ana', 'ana@x.com')`)
	require.NoError(t, err)

	var ativo int
	require.NoError(t, store.DB.QueryRowContext(ctx, `SELECT ativo FROM usuarios WHERE email = 'ana@x.com'`).Scan(&ativo))
	assert.Equal(t, 1, ativo)
	assert.NoError(t, store.Ping(ctx))
}

func TestNilHandles(t *testing.T) {
	ctx := context.Background()
	var pg *Postgres
	var sqlite *SQLite
	var rdb *Redis

	assert.Error(t, pg.Ping(ctx))
	assert.NoError(t, pg.Migrate(ctx, zap.NewNop()))
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, sqlite.Ping(ctx))
	assert.Error(t, rdb.Ping(ctx))
	pg.Close()
	sqlite.Close()
	rdb.Close()
}

func TestNewRedisDisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, NewRedis(context.Background(), config.RedisConfig{}, zap.NewNop()))
}
