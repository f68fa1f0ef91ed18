package status

import "fmt"

// ChanceToStatusEffect raises or lowers the chance of a combat status
// (crit, dodge, block, ...).
type ChanceToStatusEffect struct {
	ValueEffect
	status ChanceTo
}

// NewChanceToStatusEffect creates a ChanceToStatusEffect.
func NewChanceToStatusEffect(status ChanceTo, value float64, manip ManipType) (*ChanceToStatusEffect, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("chance kind %d: %w", status, ErrInvalidArgument)
	}
	base, err := newValueEffect(value, manip)
	if err != nil {
		return nil, err
	}
	return &ChanceToStatusEffect{ValueEffect: base, status: status}, nil
}

// Status returns the affected chance kind.
func (e *ChanceToStatusEffect) Status() ChanceTo { return e.status }

func (e *ChanceToStatusEffect) TypeName() string { return "ChanceToStatusEffect" }

func (e *ChanceToStatusEffect) Identifier() string {
	return fmt.Sprintf("ChanceTo.%s.%s", e.status, e.manip)
}

func (e *ChanceToStatusEffect) OnEnable(user *Statable) error {
	e.enableStats(user, e.status.Stat())
	return nil
}

func (e *ChanceToStatusEffect) OnDisable(user *Statable) error {
	e.disableStats(user)
	return nil
}

func (e *ChanceToStatusEffect) Equals(other Effect) bool {
	o, ok := other.(*ChanceToStatusEffect)
	return ok && o.status == e.status && o.manip == e.manip
}

func (e *ChanceToStatusEffect) Description(user *Statable) string {
	return describeValue(user, "Chance to "+e.status.String(), e.value, e.manip)
}

func (e *ChanceToStatusEffect) Clone() (Effect, error) {
	return &ChanceToStatusEffect{ValueEffect: e.copyValue(), status: e.status}, nil
}

const chanceToStatusEffectVersion = 1

func (e *ChanceToStatusEffect) Serialize(sc *SerializationContext) error {
	if !e.status.Valid() {
		return fmt.Errorf("chance kind %d: %w", e.status, ErrInvalidArgument)
	}
	if err := e.serializeValue(sc); err != nil {
		return err
	}
	sc.WriteInt(chanceToStatusEffectVersion)
	return sc.WriteByte(byte(e.status))
}

func (e *ChanceToStatusEffect) Deserialize(dc *DeserializationContext) error {
	base, err := readValueFields(dc)
	if err != nil {
		return err
	}
	if _, err := dc.ReadVersion(1, chanceToStatusEffectVersion, e.TypeName()); err != nil {
		return err
	}
	b, err := dc.ReadByte()
	if err != nil {
		return fmt.Errorf("reading chance kind: %w", err)
	}
	status, err := chanceFromByte(b)
	if err != nil {
		return err
	}
	e.commit(base)
	e.status = status
	return nil
}
