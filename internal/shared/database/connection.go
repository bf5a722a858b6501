package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"accounts-server/internal/shared/config"
)

const pingTimeout = 5 * time.Second

// DB is the pooled PostgreSQL handle shared by the repositories.
type DB struct {
	*sql.DB
}

// Connect opens a lib/pq pool for cfg and fails unless the server answers a ping.
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	logger := slog.With(
		"component", "database",
		"operation", "connect",
		"host", cfg.Host,
		"database", cfg.Name,
	)

	connector, err := pq.NewConnector(cfg.DSN())
	if err != nil {
		logger.Error("Invalid database settings", "error", err)
		return nil, fmt.Errorf("invalid database settings: %w", err)
	}

	sqlDB := sql.OpenDB(connector)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Database is unreachable", "error", err)
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database pool", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return &DB{sqlDB}, nil
}
