// Package sqlite provides a SQLite-backed save slot store for local games.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/udisondev/zelda/internal/db/sqlite/migrations"
	"github.com/udisondev/zelda/internal/savegame"
)

// Store persists save slots in a SQLite file.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ savegame.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

func migrate(ctx context.Context, sqlDB *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put writes data to slot.
func (s *Store) Put(ctx context.Context, slot string, data []byte) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO save_slots (slot, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (slot) DO UPDATE
		 SET data = excluded.data, revision = save_slots.revision + 1, updated_at = excluded.updated_at`,
		slot, data, toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

// Get returns the data of slot.
func (s *Store) Get(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM save_slots WHERE slot = ?`, slot).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot %s: %w", slot, savegame.ErrSlotNotFound)
		}
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

// List returns every slot ordered by name.
func (s *Store) List(ctx context.Context) ([]savegame.SlotInfo, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT slot, length(data), updated_at FROM save_slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var infos []savegame.SlotInfo
	for rows.Next() {
		var (
			info    savegame.SlotInfo
			updated int64
		)
		if err := rows.Scan(&info.Slot, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		info.UpdatedAt = fromMillis(updated)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot rows: %w", err)
	}
	return infos, nil
}

// Delete removes slot.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM save_slots WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return nil
}

// Revision returns how many times slot has been written.
func (s *Store) Revision(ctx context.Context, slot string) (int, error) {
	var rev int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT revision FROM save_slots WHERE slot = ?`, slot).Scan(&rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("slot %s: %w", slot, savegame.ErrSlotNotFound)
		}
		return 0, fmt.Errorf("read revision of slot %s: %w", slot, err)
	}
	return rev, nil
}
