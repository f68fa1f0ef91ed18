package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zelda/internal/savegame"
	"github.com/udisondev/zelda/internal/status"
)

func TestSlotRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSlotRepository(pool)
	ctx := context.Background()

	_, err := repo.Get(ctx, "slot1")
	require.ErrorIs(t, err, savegame.ErrSlotNotFound)

	require.NoError(t, repo.Put(ctx, "slot1", []byte("first")))
	require.NoError(t, repo.Put(ctx, "slot1", []byte("second")))
	require.NoError(t, repo.Put(ctx, "slot0", []byte("other")))

	data, err := repo.Get(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	backup, err := repo.Backup(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), backup)

	rev, err := repo.Revision(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, 2, rev)

	_, err = repo.Backup(ctx, "slot0")
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "slot0", infos[0].Slot)
	assert.Equal(t, len("second"), infos[1].Size)

	require.NoError(t, repo.Delete(ctx, "slot1"))
	_, err = repo.Get(ctx, "slot1")
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
	_, err = repo.Backup(ctx, "slot1")
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
	require.NoError(t, repo.Delete(ctx, "missing"))
}

func TestSlotRepository_WithManager(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	m, err := savegame.NewManager(NewSlotRepository(pool), status.NewRegistry(), status.Services{})
	require.NoError(t, err)

	hero := status.NewStatable("Link", 3)
	require.NoError(t, hero.Auras().Add(status.NewPermanentAura("Ring",
		must(status.NewStatEffect(status.StatStrength, 2, status.ManipFixed)))))
	require.NoError(t, m.Save(ctx, "pg", savegame.Capture(hero, nil)))
	require.NoError(t, m.Verify(ctx, "pg"))
}

func TestMigrate_IsIdempotent(t *testing.T) {
	pool := setupTestDB(t)
	sqlDB, err := sql.Open("pgx", stdlib.RegisterConnConfig(pool.Config().ConnConfig))
	require.NoError(t, err)
	defer sqlDB.Close()

	version, err := migrate(context.Background(), sqlDB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var tables int
	require.NoError(t, sqlDB.QueryRow(
		`SELECT count(*) FROM information_schema.tables WHERE table_name IN ('save_slots', 'save_slot_backups')`,
	).Scan(&tables))
	assert.Equal(t, 2, tables)
}
