package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/zelda/internal/db/migrations"
)

// RunMigrations brings the save slot schema (save_slots and
// save_slot_backups) up to date on the database at dsn.
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	version, err := migrate(ctx, sqlDB)
	if err != nil {
		return err
	}
	slog.Info("save slot schema ready", "version", version)
	return nil
}

// migrate applies the embedded slot migrations and returns the schema
// version. Re-running it on a current schema is a no-op.
func migrate(ctx context.Context, sqlDB *sql.DB) (int64, error) {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return 0, fmt.Errorf("migrating save slot schema: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("reading save slot schema version: %w", err)
	}
	return version, nil
}
