package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"accounts-server/internal/account"
	"accounts-server/internal/shared/clock"
	"accounts-server/internal/shared/config"
	"accounts-server/internal/shared/database"
	redisconn "accounts-server/internal/shared/redis"
)

// OpenStore connects the account store selected by STORE_BACKEND. The returned close
// function releases the underlying connection and is never nil on success.
func OpenStore(cfg *config.Config) (account.Store, func() error, error) {
	logger := slog.With("component", "store", "operation", "open", "backend", cfg.Store.Backend)

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if _, err := db.Migrator(migrationSource(cfg.Database.MigrationsPath)).Up(context.Background()); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("Account store ready")
		return account.NewPostgresRepository(db.DB), db.Close, nil

	case config.StoreBackendRedis:
		client, err := redisconn.Connect(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Account store ready")
		return account.NewRedisRepository(client.Client, clock.New()), client.Close, nil

	case config.StoreBackendMemory:
		logger.Warn("Using in-memory account store, accounts are lost on restart")
		return account.NewMemoryRepository(clock.New()), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

// migrationSource reads migrations from dir when set, otherwise the bundled schema is used.
func migrationSource(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}
