package status

import (
	"fmt"
	"math"

	"github.com/udisondev/zelda/internal/rng"
)

// ProcChance decides whether a triggering event procs.
type ProcChance interface {
	Serializable
	// TryProc rolls once on r for caller.
	TryProc(caller *Statable, r *rng.Rand) bool
	Clone() ProcChance
	Description() string
}

// FixedProcChance procs with a flat percent chance.
type FixedProcChance struct {
	chance float64
}

// NewFixedProcChance creates a FixedProcChance; chance must be in [0, 100].
func NewFixedProcChance(chance float64) (*FixedProcChance, error) {
	c := &FixedProcChance{}
	if err := c.SetChance(chance); err != nil {
		return nil, err
	}
	return c, nil
}

// Chance returns the percent chance.
func (c *FixedProcChance) Chance() float64 { return c.chance }

// SetChance sets the percent chance.
func (c *FixedProcChance) SetChance(chance float64) error {
	if !(chance >= 0 && chance <= 100) {
		return &OutOfRangeError{Field: "Chance", Value: chance, Min: 0, Max: 100}
	}
	c.chance = chance
	return nil
}

func (c *FixedProcChance) TypeName() string { return "FixedProcChance" }

// TryProc draws from [0, 100) and procs iff the draw is <= Chance.
// A zero chance never procs.
func (c *FixedProcChance) TryProc(_ *Statable, r *rng.Rand) bool {
	if c.chance <= 0 || r == nil {
		return false
	}
	return r.Percent() <= c.chance
}

func (c *FixedProcChance) Clone() ProcChance {
	return &FixedProcChance{chance: c.chance}
}

func (c *FixedProcChance) Description() string {
	return fmt.Sprintf("%s%% chance", formatNumber(c.chance))
}

const fixedProcChanceVersion = 1

func (c *FixedProcChance) Serialize(sc *SerializationContext) error {
	sc.WriteInt(fixedProcChanceVersion)
	sc.WriteDouble(c.chance)
	return nil
}

func (c *FixedProcChance) Deserialize(dc *DeserializationContext) error {
	if _, err := dc.ReadVersion(1, fixedProcChanceVersion, c.TypeName()); err != nil {
		return err
	}
	chance, err := dc.ReadDouble()
	if err != nil {
		return fmt.Errorf("reading chance: %w", err)
	}
	return c.SetChance(chance)
}

// OccurrenceRate reports how often the triggering event happens per minute.
// Every per-minute variant implements it and rolls through
// PerMinuteProcChance.tryProc.
type OccurrenceRate interface {
	OccurrencesPerMinute(caller *Statable) float64
}

// PerMinuteProcChance targets an average number of procs per minute. The
// per-occurrence chance is derived from how often the triggering event
// happens, which variants supply through OccurrenceRate.
type PerMinuteProcChance struct {
	procsPerMinute float64
}

// ProcsPerMinute returns the target average.
func (c *PerMinuteProcChance) ProcsPerMinute() float64 { return c.procsPerMinute }

// SetProcsPerMinute sets the target average; it must be non-negative.
func (c *PerMinuteProcChance) SetProcsPerMinute(ppm float64) error {
	if !(ppm >= 0) {
		return &OutOfRangeError{Field: "ProcsPerMinute", Value: ppm, Min: 0, Max: math.Inf(1)}
	}
	c.procsPerMinute = ppm
	return nil
}

// ChanceAt returns the per-occurrence percent chance for a given rate.
// A rate of zero yields a negative chance, which never procs.
func (c *PerMinuteProcChance) ChanceAt(occurrencesPerMinute float64) float64 {
	if occurrencesPerMinute <= 0 {
		return -1
	}
	return c.procsPerMinute / occurrencesPerMinute * 100
}

// TryProcAt rolls once for the given rate.
func (c *PerMinuteProcChance) TryProcAt(occurrencesPerMinute float64, r *rng.Rand) bool {
	chance := c.ChanceAt(occurrencesPerMinute)
	if chance <= 0 || r == nil {
		return false
	}
	return r.Percent() <= chance
}

// tryProc rolls once at the rate rate reports for caller.
func (c *PerMinuteProcChance) tryProc(rate OccurrenceRate, caller *Statable, r *rng.Rand) bool {
	return c.TryProcAt(rate.OccurrencesPerMinute(caller), r)
}

const perMinuteProcChanceVersion = 1

func (c *PerMinuteProcChance) serializePerMinute(sc *SerializationContext) {
	sc.WriteInt(perMinuteProcChanceVersion)
	sc.WriteDouble(c.procsPerMinute)
}

func readProcsPerMinute(dc *DeserializationContext) (float64, error) {
	if _, err := dc.ReadVersion(1, perMinuteProcChanceVersion, "PerMinuteProcChance"); err != nil {
		return 0, err
	}
	ppm, err := dc.ReadDouble()
	if err != nil {
		return 0, fmt.Errorf("reading procs per minute: %w", err)
	}
	if !(ppm >= 0) {
		return 0, &OutOfRangeError{Field: "ProcsPerMinute", Value: ppm, Min: 0, Max: math.Inf(1)}
	}
	return ppm, nil
}

// AttackSpeedProcChance is a PerMinuteProcChance whose rate is the caller's
// melee or ranged attacks per minute.
type AttackSpeedProcChance struct {
	PerMinuteProcChance
	attack AttackType
}

var _ OccurrenceRate = (*AttackSpeedProcChance)(nil)

// NewAttackSpeedProcChance creates an AttackSpeedProcChance.
// attack must be AttackMelee or AttackRanged.
func NewAttackSpeedProcChance(attack AttackType, procsPerMinute float64) (*AttackSpeedProcChance, error) {
	c := &AttackSpeedProcChance{}
	if err := c.SetAttackType(attack); err != nil {
		return nil, err
	}
	if err := c.SetProcsPerMinute(procsPerMinute); err != nil {
		return nil, err
	}
	return c, nil
}

// AttackType returns the attack kind the rate is derived from.
func (c *AttackSpeedProcChance) AttackType() AttackType { return c.attack }

// SetAttackType accepts only AttackMelee and AttackRanged.
func (c *AttackSpeedProcChance) SetAttackType(attack AttackType) error {
	if attack != AttackMelee && attack != AttackRanged {
		return fmt.Errorf("attack type %s for per-minute proc chance: %w", attack, ErrInvalidArgument)
	}
	c.attack = attack
	return nil
}

func (c *AttackSpeedProcChance) TypeName() string { return "AttackSpeedProcChance" }

// OccurrencesPerMinute converts seconds per attack into attacks per minute.
func (c *AttackSpeedProcChance) OccurrencesPerMinute(caller *Statable) float64 {
	if caller == nil {
		return 0
	}
	secs := caller.AttackSpeed(c.attack)
	if secs <= 0 {
		return 0
	}
	return 60 / secs
}

func (c *AttackSpeedProcChance) TryProc(caller *Statable, r *rng.Rand) bool {
	return c.tryProc(c, caller, r)
}

func (c *AttackSpeedProcChance) Clone() ProcChance {
	clone := *c
	return &clone
}

func (c *AttackSpeedProcChance) Description() string {
	return fmt.Sprintf("%s procs per minute", formatNumber(c.procsPerMinute))
}

const attackSpeedProcChanceVersion = 1

func (c *AttackSpeedProcChance) Serialize(sc *SerializationContext) error {
	c.serializePerMinute(sc)
	sc.WriteInt(attackSpeedProcChanceVersion)
	return sc.WriteByte(byte(c.attack))
}

func (c *AttackSpeedProcChance) Deserialize(dc *DeserializationContext) error {
	ppm, err := readProcsPerMinute(dc)
	if err != nil {
		return err
	}
	if _, err := dc.ReadVersion(1, attackSpeedProcChanceVersion, c.TypeName()); err != nil {
		return err
	}
	b, err := dc.ReadByte()
	if err != nil {
		return fmt.Errorf("reading attack type: %w", err)
	}
	attack, err := attackFromByte(b)
	if err != nil {
		return err
	}
	if err := c.SetAttackType(attack); err != nil {
		return err
	}
	c.procsPerMinute = ppm
	return nil
}
