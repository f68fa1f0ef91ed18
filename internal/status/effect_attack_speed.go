package status

import "fmt"

// AttackSpeedEffect makes melee, ranged or all attacks faster.
// Positive values always mean faster attacks.
type AttackSpeedEffect struct {
	ValueEffect
	attack AttackType
}

// NewAttackSpeedEffect creates an AttackSpeedEffect.
func NewAttackSpeedEffect(attack AttackType, value float64, manip ManipType) (*AttackSpeedEffect, error) {
	if !attack.Valid() {
		return nil, fmt.Errorf("attack type %d: %w", attack, ErrInvalidArgument)
	}
	base, err := newValueEffect(value, manip)
	if err != nil {
		return nil, err
	}
	return &AttackSpeedEffect{ValueEffect: base, attack: attack}, nil
}

// AttackType returns which attacks are affected.
func (e *AttackSpeedEffect) AttackType() AttackType { return e.attack }

func (e *AttackSpeedEffect) TypeName() string { return "AttackSpeedEffect" }

func (e *AttackSpeedEffect) Identifier() string {
	return fmt.Sprintf("AttackSpeed.%s.%s", e.attack, e.manip)
}

func (e *AttackSpeedEffect) stats() []Stat {
	switch e.attack {
	case AttackMelee:
		return []Stat{StatMeleeAttackSpeed}
	case AttackRanged:
		return []Stat{StatRangedAttackSpeed}
	default:
		return []Stat{StatMeleeAttackSpeed, StatRangedAttackSpeed}
	}
}

func (e *AttackSpeedEffect) OnEnable(user *Statable) error {
	e.enableStats(user, e.stats()...)
	return nil
}

func (e *AttackSpeedEffect) OnDisable(user *Statable) error {
	e.disableStats(user)
	return nil
}

func (e *AttackSpeedEffect) Equals(other Effect) bool {
	o, ok := other.(*AttackSpeedEffect)
	return ok && o.attack == e.attack && o.manip == e.manip
}

func (e *AttackSpeedEffect) Description(user *Statable) string {
	label := "Attack Speed"
	if e.attack != AttackAll {
		label = e.attack.String() + " Attack Speed"
	}
	return describeValue(user, label, e.value, e.manip)
}

func (e *AttackSpeedEffect) Clone() (Effect, error) {
	return &AttackSpeedEffect{ValueEffect: e.copyValue(), attack: e.attack}, nil
}

const attackSpeedEffectVersion = 1

func (e *AttackSpeedEffect) Serialize(sc *SerializationContext) error {
	if !e.attack.Valid() {
		return fmt.Errorf("attack type %d: %w", e.attack, ErrInvalidArgument)
	}
	if err := e.serializeValue(sc); err != nil {
		return err
	}
	sc.WriteInt(attackSpeedEffectVersion)
	return sc.WriteByte(byte(e.attack))
}

func (e *AttackSpeedEffect) Deserialize(dc *DeserializationContext) error {
	base, err := readValueFields(dc)
	if err != nil {
		return err
	}
	if _, err := dc.ReadVersion(1, attackSpeedEffectVersion, e.TypeName()); err != nil {
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
	e.commit(base)
	e.attack = attack
	return nil
}
