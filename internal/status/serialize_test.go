package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zelda/internal/rng"
	"github.com/udisondev/zelda/internal/serialization"
)

func writeAura(t *testing.T, a Aura) []byte {
	t.Helper()
	w := serialization.NewWriter(256)
	require.NoError(t, NewSerializationContext(w).WriteAura(a))
	return w.Bytes()
}

func readAura(t *testing.T, data []byte, svc Services) Aura {
	t.Helper()
	dc := NewDeserializationContext(serialization.NewReader(data), NewRegistry(), svc)
	a, err := dc.ReadAura()
	require.NoError(t, err)
	assert.Zero(t, dc.Remaining(), "record must be consumed exactly")
	return a
}

func TestPermanentAura_RoundTrip(t *testing.T) {
	orig := NewPermanentAura("Boots of the Fox",
		must(NewChanceToStatusEffect(ChanceToDodge, 7, ManipRating)),
		must(NewMovementSpeedEffect(4, ManipPercental)),
		must(NewStatEffect(StatStrength, -2, ManipFixed)),
		must(NewAttackSpeedEffect(AttackAll, 12, ManipRating)),
	)
	orig.SetSymbol("F", 0xFFA500FF)

	loaded := readAura(t, writeAura(t, orig), Services{})
	got, ok := loaded.(*PermanentAura)
	require.True(t, ok)

	assert.Equal(t, orig.Name(), got.Name())
	assert.Equal(t, orig.Symbol(), got.Symbol())
	assert.Equal(t, orig.SymbolColor(), got.SymbolColor())
	assert.False(t, got.IsEnabled())

	want, have := orig.Effects(), got.Effects()
	require.Len(t, have, len(want))
	for i := range want {
		assert.True(t, want[i].Equals(have[i]), "effect %d: %s vs %s", i, want[i].Identifier(), have[i].Identifier())
		assert.Equal(t, want[i].(interface{ Value() float64 }).Value(), have[i].(interface{ Value() float64 }).Value())
	}

	// identical stat contribution once equipped
	a, b := NewStatable("a", 10), NewStatable("b", 10)
	require.NoError(t, a.Auras().Add(orig))
	require.NoError(t, b.Auras().Add(got))
	for st := Stat(0); st < statCount; st++ {
		assert.Equal(t, a.Get(st), b.Get(st), st.String())
	}
}

func TestTimedAura_RoundTripKeepsCountdown(t *testing.T) {
	orig := NewTimedAura("Haste", 8*time.Second, must(NewMovementSpeedEffect(30, ManipPercental)))
	s := NewStatable("hero", 1)
	require.NoError(t, s.Auras().Add(orig))
	require.NoError(t, s.Auras().Update(3*time.Second))

	got := readAura(t, writeAura(t, orig), Services{}).(*TimedAura)
	assert.Equal(t, 8*time.Second, got.Duration())
	assert.Equal(t, 5*time.Second, got.Remaining())
}

func TestTimedAura_ReadsVersion1(t *testing.T) {
	src := NewTimedAura("Old", 0, must(NewStatEffect(StatLuck, 1, ManipFixed)))
	w := serialization.NewWriter(64)
	sc := NewSerializationContext(w)
	sc.WriteString("TimedAura")
	require.NoError(t, src.serializeCore(sc))
	sc.WriteInt(1)
	sc.WriteLong(int64(4 * time.Second))

	got := readAura(t, w.Bytes(), Services{}).(*TimedAura)
	assert.Equal(t, 4*time.Second, got.Duration())
	assert.Equal(t, 4*time.Second, got.Remaining())
}

func TestTimedAura_BadVersionLeavesStateUnchanged(t *testing.T) {
	loaded := readAura(t, writeAura(t,
		NewTimedAura("Shield", 10*time.Second, must(NewStatEffect(StatArmor, 50, ManipFixed)))),
		Services{}).(*TimedAura)

	other := NewTimedAura("Other", time.Second, must(NewStatEffect(StatLuck, 3, ManipFixed)))
	w := serialization.NewWriter(64)
	sc := NewSerializationContext(w)
	require.NoError(t, other.serializeCore(sc))
	sc.WriteInt(99)
	sc.WriteLong(int64(time.Second))
	sc.WriteLong(int64(time.Second))

	dc := NewDeserializationContext(serialization.NewReader(w.Bytes()), NewRegistry(), Services{})
	err := loaded.Deserialize(dc)
	require.ErrorIs(t, err, serialization.ErrInvalidVersion)

	var verr *serialization.InvalidVersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, int32(99), verr.Version)

	assert.Equal(t, "Shield", loaded.Name())
	assert.Equal(t, 10*time.Second, loaded.Duration())
	assert.Equal(t, 10*time.Second, loaded.Remaining())
	require.Len(t, loaded.Effects(), 1)
	assert.Equal(t, "Armor.Fixed", loaded.Effects()[0].Identifier())
}

func TestTimedStatusProcEffect_RoundTripInjectsServices(t *testing.T) {
	chance, err := NewAttackSpeedProcChance(AttackMelee, 2)
	require.NoError(t, err)
	orig := NewPermanentAura("Axe",
		NewTimedStatusProcEffect(chance, must(NewAttackHook(AttackMelee, true)),
			NewTimedAura("Rage", 6*time.Second, must(NewStatEffect(StatStrength, 10, ManipPercental)))),
		NewHealProcEffect(nil, NewKillHook(), 25),
	)

	fallback := rng.New(77)
	got := readAura(t, writeAura(t, orig), Services{Rand: fallback})
	effects := got.Effects()
	require.Len(t, effects, 2)

	proc, ok := effects[0].(*TimedStatusProcEffect)
	require.True(t, ok)
	assert.Same(t, fallback, proc.fallback)
	assert.Equal(t, "Rage", proc.Aura().Name())
	assert.Equal(t, 6*time.Second, proc.Aura().Duration())

	pc, ok := proc.ProcChance().(*AttackSpeedProcChance)
	require.True(t, ok)
	assert.Equal(t, AttackMelee, pc.AttackType())
	assert.Equal(t, 2.0, pc.ProcsPerMinute())

	hook, ok := proc.Hook().(*AttackHook)
	require.True(t, ok)
	assert.True(t, hook.CritOnly())

	heal, ok := effects[1].(*HealProcEffect)
	require.True(t, ok)
	assert.Nil(t, heal.ProcChance())
	assert.Equal(t, 25.0, heal.Amount())
	assert.IsType(t, &KillHook{}, heal.Hook())
}

func TestWriteAura_RuntimeOnlyEffectNotSupported(t *testing.T) {
	a := NewPermanentAura("Focus", NewCooldownEffect(NewCooldown("dash", time.Second), 20))
	w := serialization.NewWriter(64)
	err := NewSerializationContext(w).WriteAura(a)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestReadEffect_UnknownTag(t *testing.T) {
	w := serialization.NewWriter(32)
	w.WriteString("FlamingSwordEffect")
	dc := NewDeserializationContext(serialization.NewReader(w.Bytes()), NewRegistry(), Services{})

	_, err := dc.ReadEffect()
	require.ErrorIs(t, err, ErrUnknownType)
	var uerr *UnknownTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "FlamingSwordEffect", uerr.Tag)
}

func TestReadEffect_RequiredTagMissing(t *testing.T) {
	w := serialization.NewWriter(32)
	w.WriteString("")
	dc := NewDeserializationContext(serialization.NewReader(w.Bytes()), NewRegistry(), Services{})
	_, err := dc.ReadEffect()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReadEffect_TruncatedRecord(t *testing.T) {
	data := writeAura(t, NewPermanentAura("Ring", must(NewStatEffect(StatVitality, 4, ManipFixed))))
	dc := NewDeserializationContext(serialization.NewReader(data[:len(data)-3]), NewRegistry(), Services{})
	_, err := dc.ReadAura()
	assert.Error(t, err)
}
