package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/usuario-service/internal/config"
)

// sqliteDriverName is go-sqlite3 with unicode_lower registered on every
// connection; SQLite's own lower() and LIKE only fold ASCII.
const sqliteDriverName = "sqlite3_usuarios"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
		},
	})
}

// SQLite wraps a database/sql handle on a SQLite database.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens (or creates) the database at cfg.Path.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	db, err := sql.Open(sqliteDriverName, cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// journal_mode is not supported for in-memory databases.
	_, _ = db.ExecContext(ctx, `PRAGMA journal_mode=WAL`)
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return &SQLite{DB: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

// Ping verifies database connectivity.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite database not configured")
	}
	return s.DB.PingContext(ctx)
}

// Migrate bootstraps the schema.
func (s *SQLite) Migrate(ctx context.Context, logger *zap.Logger) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite database not configured")
	}
	return runMigrations(ctx, s.DB, goose.DialectSQLite3, "sqlite", logger)
}
