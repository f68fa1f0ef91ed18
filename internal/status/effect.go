package status

import (
	"fmt"
	"math"
)

// Effect is one atomic modification of a Statable.
//
// OnEnable and OnDisable are called exactly once per activation by the owning
// Aura. Effects do not guard against being enabled twice; the Aura does.
type Effect interface {
	// Identifier is the key used to merge same-kind effects.
	Identifier() string
	OnEnable(user *Statable) error
	OnDisable(user *Statable) error
	// Equals reports conceptual equality (same kind and configuration),
	// ignoring the value. It is not object identity.
	Equals(other Effect) bool
	// Description explains the effect against the user's current stats.
	// user may be nil.
	Description(user *Statable) string
}

// Cloner is implemented by effects that can be copied onto another entity.
// Effects bound to live per-entity state do not implement it.
type Cloner interface {
	Clone() (Effect, error)
}

// Serializable is implemented by every type that can appear in a save record.
type Serializable interface {
	// TypeName is the stable registry tag written before the record.
	TypeName() string
	Serialize(sc *SerializationContext) error
	Deserialize(dc *DeserializationContext) error
}

// PersistentEffect is an effect that can be written to a save record.
type PersistentEffect interface {
	Effect
	Serializable
}

// CloneEffect clones e or fails with ErrNotSupported.
func CloneEffect(e Effect) (Effect, error) {
	c, ok := e.(Cloner)
	if !ok {
		return nil, notSupported("clone", fmt.Sprintf("%T", e))
	}
	return c.Clone()
}

const valueEffectVersion = 1

// ValueEffect is the shared state of numeric effects: a value, how it
// composes, and the Statable it is currently enabled on.
type ValueEffect struct {
	value float64
	manip ManipType
	owner *Statable
}

// Value returns the effect value.
func (v *ValueEffect) Value() float64 { return v.value }

// ManipType returns how the value composes with the stat.
func (v *ValueEffect) ManipType() ManipType { return v.manip }

// SetValue changes the value. If the effect is enabled, the owner's
// modifiers are updated in place.
func (v *ValueEffect) SetValue(value float64) {
	v.value = value
	if v.owner != nil {
		v.owner.UpdateModifier(v, value)
	}
}

// AddValue adds delta to the value. Used to stack onto an existing effect
// instead of adding a second one.
func (v *ValueEffect) AddValue(delta float64) {
	v.SetValue(v.value + delta)
}

// SetManipType changes the manipulation type. It must not be called while
// the effect is enabled.
func (v *ValueEffect) SetManipType(m ManipType) error {
	if !m.Valid() {
		return fmt.Errorf("manip type %d: %w", m, ErrInvalidArgument)
	}
	if v.owner != nil {
		return fmt.Errorf("changing manip type of an enabled effect: %w", ErrNotSupported)
	}
	v.manip = m
	return nil
}

// IsEnabled reports whether the effect currently contributes to a Statable.
func (v *ValueEffect) IsEnabled() bool { return v.owner != nil }

func (v *ValueEffect) enableStats(user *Statable, stats ...Stat) {
	for _, st := range stats {
		user.AddModifier(Modifier{Source: v, Stat: st, Type: v.manip, Value: v.value})
	}
	v.owner = user
}

func (v *ValueEffect) disableStats(user *Statable) {
	user.RemoveModifiers(v)
	v.owner = nil
}

func (v *ValueEffect) copyValue() ValueEffect {
	return ValueEffect{value: v.value, manip: v.manip}
}

func newValueEffect(value float64, manip ManipType) (ValueEffect, error) {
	if !manip.Valid() {
		return ValueEffect{}, fmt.Errorf("manip type %d: %w", manip, ErrInvalidArgument)
	}
	return ValueEffect{value: value, manip: manip}, nil
}

func (v *ValueEffect) serializeValue(sc *SerializationContext) error {
	if !v.manip.Valid() {
		return fmt.Errorf("manip type %d: %w", v.manip, ErrInvalidArgument)
	}
	sc.WriteInt(valueEffectVersion)
	if err := sc.WriteByte(byte(v.manip)); err != nil {
		return err
	}
	sc.WriteDouble(v.value)
	return nil
}

type valueFields struct {
	value float64
	manip ManipType
}

func readValueFields(dc *DeserializationContext) (valueFields, error) {
	if _, err := dc.ReadVersion(1, valueEffectVersion, "ValueEffect"); err != nil {
		return valueFields{}, err
	}
	b, err := dc.ReadByte()
	if err != nil {
		return valueFields{}, fmt.Errorf("reading manip type: %w", err)
	}
	m, err := manipFromByte(b)
	if err != nil {
		return valueFields{}, err
	}
	val, err := dc.ReadDouble()
	if err != nil {
		return valueFields{}, fmt.Errorf("reading value: %w", err)
	}
	return valueFields{value: val, manip: m}, nil
}

func (v *ValueEffect) commit(f valueFields) {
	v.value = f.value
	v.manip = f.manip
}

// describeValue renders "+12 Strength", "+5% Strength" or
// "+24 Strength Rating (2.1%)".
func describeValue(user *Statable, label string, value float64, manip ManipType) string {
	sign := "+"
	if value < 0 {
		sign = "-"
	}
	abs := math.Abs(value)
	switch manip {
	case ManipPercental:
		return fmt.Sprintf("%s%s%% %s", sign, formatNumber(abs), label)
	case ManipRating:
		if user == nil {
			return fmt.Sprintf("%s%s %s Rating", sign, formatNumber(abs), label)
		}
		return fmt.Sprintf("%s%s %s Rating (%.1f%%)", sign, formatNumber(abs), label, user.RatingToPercent(abs))
	default:
		return fmt.Sprintf("%s%s %s", sign, formatNumber(abs), label)
	}
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
