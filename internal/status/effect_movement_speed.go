package status

// MovementSpeedEffect modifies movement speed.
type MovementSpeedEffect struct {
	ValueEffect
}

// NewMovementSpeedEffect creates a MovementSpeedEffect.
func NewMovementSpeedEffect(value float64, manip ManipType) (*MovementSpeedEffect, error) {
	base, err := newValueEffect(value, manip)
	if err != nil {
		return nil, err
	}
	return &MovementSpeedEffect{ValueEffect: base}, nil
}

func (e *MovementSpeedEffect) TypeName() string { return "MovementSpeedEffect" }

func (e *MovementSpeedEffect) Identifier() string {
	return "MovementSpeed." + e.manip.String()
}

func (e *MovementSpeedEffect) OnEnable(user *Statable) error {
	e.enableStats(user, StatMovementSpeed)
	return nil
}

func (e *MovementSpeedEffect) OnDisable(user *Statable) error {
	e.disableStats(user)
	return nil
}

func (e *MovementSpeedEffect) Equals(other Effect) bool {
	o, ok := other.(*MovementSpeedEffect)
	return ok && o.manip == e.manip
}

func (e *MovementSpeedEffect) Description(user *Statable) string {
	return describeValue(user, "Movement Speed", e.value, e.manip)
}

func (e *MovementSpeedEffect) Clone() (Effect, error) {
	return &MovementSpeedEffect{ValueEffect: e.copyValue()}, nil
}

const movementSpeedEffectVersion = 1

func (e *MovementSpeedEffect) Serialize(sc *SerializationContext) error {
	if err := e.serializeValue(sc); err != nil {
		return err
	}
	sc.WriteInt(movementSpeedEffectVersion)
	return nil
}

func (e *MovementSpeedEffect) Deserialize(dc *DeserializationContext) error {
	base, err := readValueFields(dc)
	if err != nil {
		return err
	}
	if _, err := dc.ReadVersion(1, movementSpeedEffectVersion, e.TypeName()); err != nil {
		return err
	}
	e.commit(base)
	return nil
}
