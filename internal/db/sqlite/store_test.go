package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zelda/internal/savegame"
	"github.com/udisondev/zelda/internal/status"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "slot1", []byte("data")))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	data, err := s.Get(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
}

func TestStore_CRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, savegame.ErrSlotNotFound)
	assert.Error(t, s.Put(ctx, "", []byte("x")))

	require.NoError(t, s.Put(ctx, "b", []byte("one")))
	require.NoError(t, s.Put(ctx, "b", []byte("three")))
	require.NoError(t, s.Put(ctx, "a", []byte("zz")))

	rev, err := s.Revision(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, rev)

	infos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []savegame.SlotInfo{
		{Slot: "a", Size: 2, UpdatedAt: fixed},
		{Slot: "b", Size: 5, UpdatedAt: fixed},
	}, infos)

	require.NoError(t, s.Delete(ctx, "b"))
	_, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
	_, err = s.Revision(ctx, "b")
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
}

func TestStore_WithManager(t *testing.T) {
	ctx := context.Background()
	m, err := savegame.NewManager(openTestStore(t), status.NewRegistry(), status.Services{})
	require.NoError(t, err)

	hero := status.NewStatable("Link", 7)
	require.NoError(t, hero.Auras().Add(status.NewTimedAura("Haste", time.Minute,
		must(status.NewMovementSpeedEffect(25, status.ManipPercental)))))
	require.NoError(t, m.Save(ctx, "quick", savegame.Capture(hero, nil)))

	p, err := m.Load(ctx, "quick")
	require.NoError(t, err)
	require.Len(t, p.Auras, 1)
	assert.Equal(t, "Haste", p.Auras[0].Name())
}

// must unwraps a constructor result in fixtures built from known-good values.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
