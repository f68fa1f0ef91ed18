package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/zelda/internal/savegame"
)

// SlotRepository stores encoded save files in PostgreSQL.
// Every Put keeps the previous revision in save_slot_backups.
type SlotRepository struct {
	pool *pgxpool.Pool
}

// NewSlotRepository создаёт новый SlotRepository.
func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

var _ savegame.Store = (*SlotRepository)(nil)

// Put writes data to slot. The previous revision moves to the backup table
// in the same transaction.
func (r *SlotRepository) Put(ctx context.Context, slot string, data []byte) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for slot %s: %w", slot, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "slot", slot, "error", err)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO save_slot_backups (slot, data, revision, updated_at)
		SELECT slot, data, revision, updated_at FROM save_slots WHERE slot = $1
		ON CONFLICT (slot) DO UPDATE
		SET data = EXCLUDED.data, revision = EXCLUDED.revision, updated_at = EXCLUDED.updated_at
	`, slot)
	if err != nil {
		return fmt.Errorf("backing up slot %s: %w", slot, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO save_slots (slot, data) VALUES ($1, $2)
		ON CONFLICT (slot) DO UPDATE
		SET data = EXCLUDED.data, revision = save_slots.revision + 1, updated_at = now()
	`, slot, data)
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", slot, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit slot %s: %w", slot, err)
	}
	return nil
}

// Get returns the current data of slot.
func (r *SlotRepository) Get(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM save_slots WHERE slot = $1`, slot).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("slot %s: %w", slot, savegame.ErrSlotNotFound)
		}
		return nil, fmt.Errorf("querying slot %s: %w", slot, err)
	}
	return data, nil
}

// Backup returns the revision that was current before the last Put.
func (r *SlotRepository) Backup(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM save_slot_backups WHERE slot = $1`, slot).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("backup of slot %s: %w", slot, savegame.ErrSlotNotFound)
		}
		return nil, fmt.Errorf("querying backup of slot %s: %w", slot, err)
	}
	return data, nil
}

// Revision returns how many times slot has been written.
func (r *SlotRepository) Revision(ctx context.Context, slot string) (int, error) {
	var rev int
	err := r.pool.QueryRow(ctx, `SELECT revision FROM save_slots WHERE slot = $1`, slot).Scan(&rev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("slot %s: %w", slot, savegame.ErrSlotNotFound)
		}
		return 0, fmt.Errorf("querying revision of slot %s: %w", slot, err)
	}
	return rev, nil
}

// List returns every slot ordered by name.
func (r *SlotRepository) List(ctx context.Context) ([]savegame.SlotInfo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT slot, octet_length(data), updated_at FROM save_slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	infos := make([]savegame.SlotInfo, 0, 8)
	for rows.Next() {
		var info savegame.SlotInfo
		if err := rows.Scan(&info.Slot, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning slot row: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slot rows: %w", err)
	}
	return infos, nil
}

// Delete removes slot and its backup.
func (r *SlotRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM save_slots WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("deleting slot %s: %w", slot, err)
	}
	return nil
}
