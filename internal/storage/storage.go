// Package storage opens the save slot store selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/zelda/internal/config"
	"github.com/udisondev/zelda/internal/db"
	"github.com/udisondev/zelda/internal/db/sqlite"
	"github.com/udisondev/zelda/internal/savegame"
)

// Open returns the configured store and a function releasing it.
func Open(ctx context.Context, cfg config.Game) (savegame.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory save store, saves are lost on exit")
		return savegame.NewMemoryStore(), func() {}, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		slog.Info("sqlite store opened", "path", cfg.Storage.SQLitePath)
		return s, func() {
			if err := s.Close(); err != nil {
				slog.Error("closing sqlite store", "err", err)
			}
		}, nil

	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("database connected", "host", cfg.Database.Host, "db", cfg.Database.DBName)
		return database.Slots(), database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
