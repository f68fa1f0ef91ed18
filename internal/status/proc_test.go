package status

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zelda/internal/rng"
)

func TestFixedProcChance_Boundaries(t *testing.T) {
	r := rng.New(99)

	never, err := NewFixedProcChance(0)
	require.NoError(t, err)
	always, err := NewFixedProcChance(100)
	require.NoError(t, err)

	for i := 0; i < 100_000; i++ {
		if never.TryProc(nil, r) {
			t.Fatalf("chance 0 procced on draw %d", i)
		}
		if !always.TryProc(nil, r) {
			t.Fatalf("chance 100 failed on draw %d", i)
		}
	}
}

func TestFixedProcChance_SetChanceRange(t *testing.T) {
	tests := []struct {
		chance  float64
		wantErr bool
	}{
		{0, false},
		{42.5, false},
		{100, false},
		{-1, true},
		{150, true},
		{math.NaN(), true},
	}

	for _, tt := range tests {
		c := &FixedProcChance{chance: 10}
		err := c.SetChance(tt.chance)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrOutOfRange, "chance %v", tt.chance)
			assert.Equal(t, 10.0, c.Chance(), "failed SetChance must not mutate")
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.chance, c.Chance())
	}
}

func TestFixedProcChance_Statistical(t *testing.T) {
	r := rng.New(2024)
	c, err := NewFixedProcChance(25)
	require.NoError(t, err)

	hits := 0
	const n = 40_000
	for i := 0; i < n; i++ {
		if c.TryProc(nil, r) {
			hits++
		}
	}
	assert.InDelta(t, 0.25, float64(hits)/n, 0.02)
}

func TestPerMinuteProcChance_ZeroRateNeverProcs(t *testing.T) {
	r := rng.New(5)
	for _, ppm := range []float64{0, 1, 60, 1e6} {
		c := &PerMinuteProcChance{}
		require.NoError(t, c.SetProcsPerMinute(ppm))
		for i := 0; i < 1000; i++ {
			if c.TryProcAt(0, r) {
				t.Fatalf("ppm=%v procced at zero rate", ppm)
			}
		}
		assert.Negative(t, c.ChanceAt(0))
	}
}

func TestPerMinuteProcChance_ChanceAt(t *testing.T) {
	c := &PerMinuteProcChance{}
	require.NoError(t, c.SetProcsPerMinute(2))
	assert.InDelta(t, 5.0, c.ChanceAt(40), 1e-9)
	assert.ErrorIs(t, c.SetProcsPerMinute(-1), ErrOutOfRange)
}

// fixedRate is an OccurrenceRate that ignores the caller.
type fixedRate struct {
	perMinute float64
	calls     int
}

func (f *fixedRate) OccurrencesPerMinute(*Statable) float64 {
	f.calls++
	return f.perMinute
}

func TestPerMinuteProcChance_RollsAtReportedRate(t *testing.T) {
	c := &PerMinuteProcChance{}
	require.NoError(t, c.SetProcsPerMinute(15))

	// 15 procs over 60 occurrences is a 25% chance per occurrence
	rate := &fixedRate{perMinute: 60}
	r := rng.New(11)
	const n = 20000
	hits := 0
	for i := 0; i < n; i++ {
		if c.tryProc(rate, nil, r) {
			hits++
		}
	}
	assert.Equal(t, n, rate.calls)
	assert.InDelta(t, 0.25, float64(hits)/n, 0.02)

	// the rate is asked again on every roll
	rate.perMinute = 0
	for i := 0; i < 100; i++ {
		require.False(t, c.tryProc(rate, nil, r))
	}
}

func TestAttackSpeedProcChance_MatchesItsOwnRate(t *testing.T) {
	c, err := NewAttackSpeedProcChance(AttackMelee, 10)
	require.NoError(t, err)
	s := NewStatable("fighter", 1)

	viaTry := rng.New(21)
	viaRate := rng.New(21)
	for i := 0; i < 500; i++ {
		require.Equal(t, c.TryProcAt(c.OccurrencesPerMinute(s), viaRate), c.TryProc(s, viaTry))
	}
}

func TestAttackSpeedProcChance(t *testing.T) {
	_, err := NewAttackSpeedProcChance(AttackAll, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	c, err := NewAttackSpeedProcChance(AttackRanged, 3)
	require.NoError(t, err)
	assert.ErrorIs(t, c.SetAttackType(AttackAll), ErrInvalidArgument)
	assert.Equal(t, AttackRanged, c.AttackType())

	s := NewStatable("archer", 1)
	// 1.5s per ranged attack -> 40 attacks per minute
	assert.InDelta(t, 40.0, c.OccurrencesPerMinute(s), 1e-9)

	// an attack speed slowed to a standstill yields a zero rate
	require.NoError(t, s.Auras().Add(NewPermanentAura("frozen",
		must(NewAttackSpeedEffect(AttackRanged, -100, ManipPercental)))))
	assert.Equal(t, 0.0, c.OccurrencesPerMinute(s))

	r := rng.New(3)
	for i := 0; i < 1000; i++ {
		require.False(t, c.TryProc(s, r))
	}
}

func TestTimedStatusProcEffect_RefreshDoesNotStack(t *testing.T) {
	hero := NewStatable("hero", 1)
	target := NewStatable("dummy", 1)
	target.SetBase(StatMaxLife, 1e9)

	buff := newCountingEffect("frenzy")
	nested := NewTimedAura("Frenzy", 5*time.Second, buff)
	proc := NewTimedStatusProcEffect(nil, must(NewAttackHook(AttackMelee, false)), nested)
	require.NoError(t, hero.Auras().Add(NewPermanentAura("Axe of Frenzy", proc)))

	hit := AttackEvent{Target: target, Attack: AttackMelee, Damage: 1}

	hero.NotifyAttack(hit)
	assert.Equal(t, 2, hero.Auras().Len())
	require.NoError(t, hero.Auras().Update(3*time.Second))

	hero.NotifyAttack(hit)
	assert.Equal(t, 2, hero.Auras().Len(), "second proc must not add another copy")
	assert.Equal(t, 1, buff.enabled)
	assert.Equal(t, 5*time.Second, nested.Remaining(), "second proc resets the countdown")

	require.NoError(t, hero.Auras().Update(5*time.Second))
	assert.False(t, nested.IsEnabled())
	assert.Equal(t, 1, buff.disabled)

	hero.NotifyAttack(hit)
	assert.True(t, nested.IsEnabled())
	assert.Equal(t, 2, buff.enabled)

	// ranged attacks do not match a melee hook
	require.NoError(t, hero.Auras().Remove(nested))
	hero.NotifyAttack(AttackEvent{Target: target, Attack: AttackRanged, Damage: 1})
	assert.False(t, nested.IsEnabled())
}

func TestProcEffect_HookLifetimeFollowsAura(t *testing.T) {
	hero := NewStatable("hero", 1)
	hook := must(NewAttackHook(AttackAll, true))
	proc := NewTimedStatusProcEffect(nil, hook, NewTimedAura("Edge", time.Second))
	aura := NewPermanentAura("Blade", proc)

	require.NoError(t, hero.Auras().Add(aura))
	assert.True(t, hook.IsHooked())
	assert.Equal(t, 1, hero.Attacked().Len())
	assert.Equal(t, 1, hook.Invoked().Len())

	require.NoError(t, hero.Auras().Remove(aura))
	assert.False(t, hook.IsHooked())
	assert.Equal(t, 0, hero.Attacked().Len())
	assert.Equal(t, 0, hook.Invoked().Len())

	// non-crit hits do not fire a crit-only hook
	require.NoError(t, hero.Auras().Add(aura))
	hero.NotifyAttack(AttackEvent{Attack: AttackMelee})
	assert.False(t, proc.Aura().IsEnabled())
	hero.NotifyAttack(AttackEvent{Attack: AttackMelee, Crit: true})
	assert.True(t, proc.Aura().IsEnabled())
}

func TestHook_DoubleHookFails(t *testing.T) {
	s := NewStatable("hero", 1)
	h := NewHurtHook(0)
	require.NoError(t, h.Hook(s))
	assert.ErrorIs(t, h.Hook(s), ErrAlreadyHooked)
	h.Unhook()
	h.Unhook()
	assert.Equal(t, 0, s.Hurt().Len())
}

func TestProcEffect_HasProccedUsesSceneRNG(t *testing.T) {
	s := NewStatable("hero", 1)
	chance, err := NewFixedProcChance(100)
	require.NoError(t, err)
	p := &ProcEffect{chance: chance}

	assert.False(t, p.HasProcced(s), "no RNG stream available")

	p.Setup(Services{Rand: rng.New(1)})
	assert.True(t, p.HasProcced(s), "fallback stream")

	s.SetRand(rng.New(2))
	zero, err := NewFixedProcChance(0)
	require.NoError(t, err)
	p.SetProcChance(zero)
	assert.False(t, p.HasProcced(s))

	p.SetProcChance(nil)
	assert.True(t, p.HasProcced(s), "no chance configured always procs")
}

func TestHealProcEffect(t *testing.T) {
	hero := NewStatable("hero", 1)
	hero.SetRand(rng.New(11))
	chance, err := NewFixedProcChance(100)
	require.NoError(t, err)

	require.NoError(t, hero.Auras().Add(NewPermanentAura("Vampiric Ring",
		NewHealProcEffect(chance, NewKillHook(), 15))))
	hero.Damage(nil, 40)

	rat := NewStatable("rat", 1)
	hero.NotifyAttack(AttackEvent{Target: rat, Attack: AttackMelee, Damage: 500})
	assert.Equal(t, 75.0, hero.Life())
}

func TestHurtHook_MinDamage(t *testing.T) {
	hero := NewStatable("hero", 1)
	proc := NewTimedStatusProcEffect(nil, NewHurtHook(10), NewTimedAura("Retaliation", time.Second))
	require.NoError(t, hero.Auras().Add(NewPermanentAura("Spiked Shield", proc)))

	hero.Damage(nil, 5)
	assert.False(t, proc.Aura().IsEnabled())
	hero.Damage(nil, 10)
	assert.True(t, proc.Aura().IsEnabled())
}

func TestProcEffect_Description(t *testing.T) {
	chance, err := NewFixedProcChance(10)
	require.NoError(t, err)
	proc := NewTimedStatusProcEffect(chance, must(NewAttackHook(AttackRanged, true)),
		NewTimedAura("Focus", 6*time.Second, must(NewChanceToStatusEffect(ChanceToCrit, 5, ManipFixed))))

	desc := proc.Description(nil)
	assert.Contains(t, desc, "10% chance on ranged critical hit")
	assert.Contains(t, desc, "Focus for 6s")
	assert.Contains(t, desc, "+5 Chance to Crit")
}
