package savegame

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zelda/internal/item"
	"github.com/udisondev/zelda/internal/rng"
	"github.com/udisondev/zelda/internal/serialization"
	"github.com/udisondev/zelda/internal/status"
)

func TestEnvelope(t *testing.T) {
	payload := []byte("hello aura")
	data := Encode(payload)
	assert.Equal(t, "ZSAV", string(data[:4]))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecode_Errors(t *testing.T) {
	good := Encode([]byte("payload"))

	flipped := append([]byte(nil), good...)
	flipped[len(flipped)-1] ^= 0xFF
	_, err := Decode(flipped)
	assert.ErrorIs(t, err, ErrChecksum)

	wrongMagic := append([]byte(nil), good...)
	copy(wrongMagic, "ZIP!")
	_, err = Decode(wrongMagic)
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Decode(good[:10])
	assert.ErrorIs(t, err, ErrBadMagic)

	future := append([]byte(nil), good...)
	future[4] = 9
	_, err = Decode(future)
	assert.ErrorIs(t, err, serialization.ErrInvalidVersion)
}

// newHero builds a hero with a stacked item, a personal timed buff and a
// proc that has already applied its nested aura.
func newHero(t *testing.T) (*status.Statable, []*item.Item) {
	t.Helper()
	hero := status.NewStatable("Link", 12)
	hero.SetRand(rng.New(1234))

	sword, err := item.NewItem("Sword", 12, item.SlotWeapon)
	require.NoError(t, err)
	require.NoError(t, sword.ApplyAffix(item.ImpetuousPrefix{}))
	require.NoError(t, sword.ApplyAffix(item.ImpetuousPrefix{}))
	rageProc := status.NewTimedStatusProcEffect(nil, must(status.NewAttackHook(status.AttackMelee, false)),
		status.NewTimedAura("Rage", 5*time.Second, must(status.NewStatEffect(status.StatStrength, 4, status.ManipFixed))))
	require.NoError(t, sword.Aura().AddEffect(rageProc))
	require.NoError(t, sword.Equip(hero))

	boots, err := item.NewItem("Boots", 12, item.SlotFeet)
	require.NoError(t, err)
	require.NoError(t, boots.ApplyAffix(item.OfTheFoxSuffix{}))
	require.NoError(t, boots.Equip(hero))

	buff := status.NewTimedAura("Blessing", time.Minute, must(status.NewStatEffect(status.StatLuck, 3, status.ManipFixed)))
	require.NoError(t, hero.Auras().Add(buff))
	require.NoError(t, hero.Auras().Update(10*time.Second))

	target := status.NewStatable("dummy", 1)
	target.SetBase(status.StatMaxLife, 1e6)
	hero.NotifyAttack(status.AttackEvent{Target: target, Attack: status.AttackMelee, Damage: 1})
	require.True(t, rageProc.Aura().IsEnabled())

	for i := 0; i < 17; i++ {
		hero.Rand().Float64()
	}
	return hero, []*item.Item{sword, boots}
}

func TestCapture_SkipsItemAndProcAuras(t *testing.T) {
	hero, gear := newHero(t)
	p := Capture(hero, gear)

	require.Len(t, p.Auras, 1)
	assert.Equal(t, "Blessing", p.Auras[0].Name())
	assert.Len(t, p.Equipment, 2)
	assert.Equal(t, int64(1234), p.Seed)
	assert.Equal(t, hero.Rand().Position(), p.Position)
}

func TestProfile_RoundTripRestoresHero(t *testing.T) {
	hero, gear := newHero(t)
	p := Capture(hero, gear)

	payload, err := MarshalProfile(p)
	require.NoError(t, err)
	loaded, err := UnmarshalProfile(payload, status.NewRegistry(), status.Services{})
	require.NoError(t, err)

	restored, err := loaded.Restore()
	require.NoError(t, err)

	assert.Equal(t, "Link", restored.Name())
	assert.Equal(t, 12, restored.Level())
	// the proc buff is transient, so compare against the hero without it
	require.NoError(t, hero.Auras().Update(5*time.Second))
	for _, st := range []status.Stat{
		status.StatStrength, status.StatLuck, status.StatChanceToDodge,
		status.StatMeleeAttackSpeed, status.StatRangedAttackSpeed,
	} {
		assert.Equal(t, hero.Get(st), restored.Get(st), st.String())
	}

	blessing, ok := restored.Auras().Find("Blessing")
	require.True(t, ok)
	assert.Equal(t, 50*time.Second, blessing.(*status.TimedAura).Remaining())

	assert.Equal(t, hero.Rand().Float64(), restored.Rand().Float64(), "rng stream continues")

	sword := loaded.Equipment[0]
	assert.Equal(t, "Impetuous Impetuous Sword", sword.DisplayName())
	speed, ok := status.FindAuraEffect[*status.AttackSpeedEffect](sword.Aura(), nil)
	require.True(t, ok)
	assert.Equal(t, 2*item.ImpetuousPrefix{}.Value(12), speed.Value())
}

func TestRestore_CapturedProfileIsRejected(t *testing.T) {
	hero, gear := newHero(t)
	before := hero.Auras().Len()
	p := Capture(hero, gear)

	_, err := p.Restore()
	assert.ErrorIs(t, err, ErrLiveProfile)
	assert.Equal(t, before, hero.Auras().Len())
	for _, it := range gear {
		assert.Same(t, hero, it.Owner())
	}

	// without equipment the active auras are still live
	p = Capture(hero, nil)
	_, err = p.Restore()
	assert.ErrorIs(t, err, ErrLiveProfile)
}

func TestRestoredProcDoesNotStack(t *testing.T) {
	hero, gear := newHero(t)
	payload, err := MarshalProfile(Capture(hero, gear))
	require.NoError(t, err)
	loaded, err := UnmarshalProfile(payload, status.NewRegistry(), status.Services{})
	require.NoError(t, err)
	restored, err := loaded.Restore()
	require.NoError(t, err)

	before := restored.Auras().Len()
	target := status.NewStatable("dummy", 1)
	target.SetBase(status.StatMaxLife, 1e6)
	hit := status.AttackEvent{Target: target, Attack: status.AttackMelee, Damage: 1}
	restored.NotifyAttack(hit)
	restored.NotifyAttack(hit)
	assert.Equal(t, before+1, restored.Auras().Len())
}

func TestMarshalProfile_RuntimeOnlyEffect(t *testing.T) {
	hero := status.NewStatable("Link", 1)
	require.NoError(t, hero.Auras().Add(status.NewPermanentAura("Focus",
		status.NewCooldownEffect(status.NewCooldown("dash", time.Second), 10))))

	_, err := MarshalProfile(Capture(hero, nil))
	assert.ErrorIs(t, err, status.ErrNotSupported)
}

func TestUnmarshalProfile_NegativeLevel(t *testing.T) {
	payload, err := MarshalProfile(&Profile{Name: "Zed", Level: -20})
	require.NoError(t, err)
	_, err = UnmarshalProfile(payload, status.NewRegistry(), status.Services{})
	assert.ErrorIs(t, err, status.ErrInvalidArgument)
}

func TestUnmarshalProfile_TrailingBytes(t *testing.T) {
	payload, err := MarshalProfile(&Profile{Name: "Zed", Level: 1})
	require.NoError(t, err)
	_, err = UnmarshalProfile(append(payload, 0), status.NewRegistry(), status.Services{})
	assert.Error(t, err)
}

func TestManager_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m, err := NewManager(store, status.NewRegistry(), status.Services{Rand: rng.New(1)})
	require.NoError(t, err)

	hero, gear := newHero(t)
	require.NoError(t, m.Save(ctx, "slot1", Capture(hero, gear)))

	slots, err := m.Slots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "slot1", slots[0].Slot)
	assert.Positive(t, slots[0].Size)

	p, err := m.Load(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, "Link", p.Name)
	require.NoError(t, m.Verify(ctx, "slot1"))

	_, err = m.Load(ctx, "slot2")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	data, err := store.Get(ctx, "slot1")
	require.NoError(t, err)
	data[len(data)-1] ^= 1
	require.NoError(t, store.Put(ctx, "slot1", data))
	_, err = m.Load(ctx, "slot1")
	assert.ErrorIs(t, err, ErrChecksum)

	require.NoError(t, m.Delete(ctx, "slot1"))
	_, err = m.Load(ctx, "slot1")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestManager_SaveFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m, err := NewManager(store, status.NewRegistry(), status.Services{})
	require.NoError(t, err)

	hero := status.NewStatable("Link", 1)
	require.NoError(t, hero.Auras().Add(status.NewPermanentAura("Focus",
		status.NewCooldownEffect(status.NewCooldown("dash", time.Second), 10))))
	require.Error(t, m.Save(ctx, "slot1", Capture(hero, nil)))

	slots, err := m.Slots(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestNewManager_InvalidRegistry(t *testing.T) {
	reg := status.NewRegistry()
	reg.Auras.Alias("Old", "Missing")
	_, err := NewManager(NewMemoryStore(), reg, status.Services{})
	assert.Error(t, err)
}

// must unwraps a constructor result in fixtures built from known-good values.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
