package status

import "fmt"

// StatEffect modifies one of the generic stats (Strength, MaxLife, Armor, ...).
type StatEffect struct {
	ValueEffect
	stat Stat
}

// NewStatEffect creates a StatEffect. An unknown stat or manip type is an
// ErrInvalidArgument.
func NewStatEffect(stat Stat, value float64, manip ManipType) (*StatEffect, error) {
	if !stat.Valid() {
		return nil, fmt.Errorf("stat %d: %w", stat, ErrInvalidArgument)
	}
	base, err := newValueEffect(value, manip)
	if err != nil {
		return nil, err
	}
	return &StatEffect{ValueEffect: base, stat: stat}, nil
}

// Stat returns the modified stat.
func (e *StatEffect) Stat() Stat { return e.stat }

func (e *StatEffect) TypeName() string { return "StatEffect" }

func (e *StatEffect) Identifier() string {
	return fmt.Sprintf("%s.%s", e.stat, e.manip)
}

func (e *StatEffect) OnEnable(user *Statable) error {
	e.enableStats(user, e.stat)
	return nil
}

func (e *StatEffect) OnDisable(user *Statable) error {
	e.disableStats(user)
	return nil
}

func (e *StatEffect) Equals(other Effect) bool {
	o, ok := other.(*StatEffect)
	return ok && o.stat == e.stat && o.manip == e.manip
}

func (e *StatEffect) Description(user *Statable) string {
	return describeValue(user, e.stat.String(), e.value, e.manip)
}

func (e *StatEffect) Clone() (Effect, error) {
	return &StatEffect{ValueEffect: e.copyValue(), stat: e.stat}, nil
}

const statEffectVersion = 1

func (e *StatEffect) Serialize(sc *SerializationContext) error {
	if !e.stat.Valid() {
		return fmt.Errorf("stat %d: %w", e.stat, ErrInvalidArgument)
	}
	if err := e.serializeValue(sc); err != nil {
		return err
	}
	sc.WriteInt(statEffectVersion)
	return sc.WriteByte(byte(e.stat))
}

func (e *StatEffect) Deserialize(dc *DeserializationContext) error {
	base, err := readValueFields(dc)
	if err != nil {
		return err
	}
	if _, err := dc.ReadVersion(1, statEffectVersion, e.TypeName()); err != nil {
		return err
	}
	b, err := dc.ReadByte()
	if err != nil {
		return fmt.Errorf("reading stat: %w", err)
	}
	stat := Stat(b)
	if !stat.Valid() {
		return fmt.Errorf("stat %d: %w", b, ErrInvalidArgument)
	}
	e.commit(base)
	e.stat = stat
	return nil
}
