package database

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"accounts-server/migrations"
)

const createSchemaMigrations = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// Migrator applies the *.sql files at the root of an fs.FS, each once, in file name order.
// Applied versions are recorded in schema_migrations.
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger *slog.Logger
}

func NewMigrator(db *sql.DB, fsys fs.FS) *Migrator {
	return &Migrator{
		db:     db,
		fsys:   fsys,
		logger: slog.With("component", "migrations"),
	}
}

// Migrator returns a Migrator over fsys, or over the bundled schema when fsys is nil.
func (db *DB) Migrator(fsys fs.FS) *Migrator {
	if fsys == nil {
		fsys = migrations.FS
	}
	return NewMigrator(db.DB, fsys)
}

// Up applies pending migrations and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if _, err := m.db.ExecContext(ctx, createSchemaMigrations); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	files, err := fs.Glob(m.fsys, "*.sql")
	if err != nil {
		return 0, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	ran := 0
	for _, name := range files {
		if applied[name] {
			m.logger.Debug("Migration already applied", "migration", name)
			continue
		}
		if err := m.apply(ctx, name); err != nil {
			return ran, fmt.Errorf("migration %s: %w", name, err)
		}
		ran++
	}

	m.logger.Info("Migrations complete", "available", len(files), "applied", ran)
	return ran, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, name string) error {
	script, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return err
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !stderrors.Is(err, sql.ErrTxDone) {
			m.logger.Error("Failed to roll back migration", "migration", name, "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	m.logger.Info("Applied migration", "migration", name, "size_bytes", len(script))
	return nil
}
