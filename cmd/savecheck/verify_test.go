package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zelda/internal/item"
	"github.com/udisondev/zelda/internal/rng"
	"github.com/udisondev/zelda/internal/savegame"
	"github.com/udisondev/zelda/internal/status"
)

func TestVerifyAll(t *testing.T) {
	ctx := context.Background()
	store := savegame.NewMemoryStore()
	mgr, err := savegame.NewManager(store, status.NewRegistry(), status.Services{Rand: rng.New(1)})
	require.NoError(t, err)

	hero := status.NewStatable("Link", 5)
	hero.SetRand(rng.New(7))
	ring, err := item.NewItem("Ring", 5, item.SlotFinger)
	require.NoError(t, err)
	require.NoError(t, ring.ApplyAffix(item.OfTheFoxSuffix{}))
	require.NoError(t, ring.Equip(hero))

	for _, slot := range []string{"a", "b", "c"} {
		require.NoError(t, mgr.Save(ctx, slot, savegame.Capture(hero, []*item.Item{ring})))
	}
	require.NoError(t, store.Put(ctx, "broken", []byte("not a save")))

	slots, err := mgr.Slots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	results, err := verifyAll(ctx, mgr, slots, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	byName := map[string]error{}
	for _, r := range results {
		byName[r.Slot.Slot] = r.Err
	}
	assert.NoError(t, byName["a"])
	assert.NoError(t, byName["b"])
	assert.NoError(t, byName["c"])
	assert.ErrorIs(t, byName["broken"], savegame.ErrBadMagic)
}

func TestVerifyAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr, err := savegame.NewManager(savegame.NewMemoryStore(), status.NewRegistry(), status.Services{})
	require.NoError(t, err)

	_, err = verifyAll(ctx, mgr, []savegame.SlotInfo{{Slot: "a"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
