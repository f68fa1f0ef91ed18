package status

import (
	"errors"
	"fmt"
	"slices"
)

// Color is a packed 0xRRGGBBAA buff-bar tint. Presentation owns its meaning.
type Color uint32

// Aura groups effects that are enabled and disabled as one unit.
// Variants are *PermanentAura and *TimedAura.
type Aura interface {
	Serializable
	Name() string
	Effects() []Effect
	Symbol() string
	SymbolColor() Color
	// IsEnabled is true iff the aura is in an AuraList and all of its
	// effects were enabled.
	IsEnabled() bool
	// List returns the owning list, or nil.
	List() *AuraList

	core() *auraCore
	attach(list *AuraList) error
}

// auraCore is the state shared by all aura variants.
type auraCore struct {
	name    string
	symbol  string
	color   Color
	effects []Effect
	list    *AuraList
}

func (a *auraCore) core() *auraCore { return a }

func (a *auraCore) attach(list *AuraList) error { return a.enable(list) }

// Name returns the aura name.
func (a *auraCore) Name() string { return a.name }

// Symbol returns the buff-bar symbol key.
func (a *auraCore) Symbol() string { return a.symbol }

// SymbolColor returns the buff-bar tint.
func (a *auraCore) SymbolColor() Color { return a.color }

// SetSymbol sets the buff-bar symbol and tint.
func (a *auraCore) SetSymbol(symbol string, color Color) {
	a.symbol = symbol
	a.color = color
}

// Effects returns a copy of the effect list.
func (a *auraCore) Effects() []Effect { return slices.Clone(a.effects) }

// IsEnabled reports whether the aura is attached to a list.
func (a *auraCore) IsEnabled() bool { return a.list != nil }

// List returns the owning list, or nil.
func (a *auraCore) List() *AuraList { return a.list }

// AddEffect appends e. If the aura is enabled, e is enabled on the owner
// immediately.
func (a *auraCore) AddEffect(e Effect) error {
	if e == nil {
		return fmt.Errorf("adding nil effect to %s: %w", a.name, ErrInvalidArgument)
	}
	if a.list != nil {
		if err := e.OnEnable(a.list.owner); err != nil {
			return fmt.Errorf("enabling %s: %w", e.Identifier(), err)
		}
	}
	a.effects = append(a.effects, e)
	return nil
}

// RemoveEffect removes e (by reference). If the aura is enabled, e is
// disabled first. Returns false if e is not part of the aura.
func (a *auraCore) RemoveEffect(e Effect) (bool, error) {
	i := slices.IndexFunc(a.effects, func(x Effect) bool { return x == e })
	if i < 0 {
		return false, nil
	}
	var err error
	if a.list != nil {
		err = e.OnDisable(a.list.owner)
	}
	a.effects = slices.Delete(a.effects, i, i+1)
	return true, err
}

// enable enables effects in order. On failure the ones already enabled are
// disabled in reverse order and the aura stays unattached.
func (a *auraCore) enable(list *AuraList) error {
	for i, e := range a.effects {
		if err := e.OnEnable(list.owner); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = a.effects[j].OnDisable(list.owner)
			}
			return fmt.Errorf("enabling %s of aura %s: %w", e.Identifier(), a.name, err)
		}
	}
	a.list = list
	return nil
}

// disable attempts every effect even if some fail and returns the errors
// joined in effect order.
func (a *auraCore) disable() error {
	if a.list == nil {
		return nil
	}
	owner := a.list.owner
	var errs []error
	for _, e := range a.effects {
		if err := e.OnDisable(owner); err != nil {
			errs = append(errs, fmt.Errorf("disabling %s of aura %s: %w", e.Identifier(), a.name, err))
		}
	}
	a.list = nil
	return errors.Join(errs...)
}

func (a *auraCore) cloneEffects() ([]Effect, error) {
	out := make([]Effect, 0, len(a.effects))
	for _, e := range a.effects {
		c, err := CloneEffect(e)
		if err != nil {
			return nil, fmt.Errorf("cloning aura %s: %w", a.name, err)
		}
		out = append(out, c)
	}
	return out, nil
}

const auraCoreVersion = 1

func (a *auraCore) serializeCore(sc *SerializationContext) error {
	sc.WriteInt(auraCoreVersion)
	sc.WriteString(a.name)
	sc.WriteString(a.symbol)
	sc.WriteInt(int32(a.color))
	return sc.WriteEffects(a.effects)
}

type auraFields struct {
	name    string
	symbol  string
	color   Color
	effects []Effect
}

func readAuraFields(dc *DeserializationContext) (auraFields, error) {
	var f auraFields
	if _, err := dc.ReadVersion(1, auraCoreVersion, "Aura"); err != nil {
		return f, err
	}
	var err error
	if f.name, err = dc.ReadString(); err != nil {
		return f, fmt.Errorf("reading aura name: %w", err)
	}
	if f.symbol, err = dc.ReadString(); err != nil {
		return f, fmt.Errorf("reading aura symbol: %w", err)
	}
	color, err := dc.ReadInt()
	if err != nil {
		return f, fmt.Errorf("reading aura color: %w", err)
	}
	f.color = Color(uint32(color))
	if f.effects, err = dc.ReadEffects(); err != nil {
		return f, fmt.Errorf("aura %s: %w", f.name, err)
	}
	return f, nil
}

func (a *auraCore) commit(f auraFields) {
	a.name = f.name
	a.symbol = f.symbol
	a.color = f.color
	a.effects = f.effects
}

func describeEffects(user *Statable, effects []Effect) []string {
	out := make([]string, 0, len(effects))
	for _, e := range effects {
		out = append(out, e.Description(user))
	}
	return out
}

// Describe returns one description line per effect.
func Describe(a Aura, user *Statable) []string {
	return describeEffects(user, a.core().effects)
}

// CloneAura copies a and all of its effects. The copy is unattached.
// Fails with ErrNotSupported if any effect cannot be cloned.
func CloneAura(a Aura) (Aura, error) {
	switch v := a.(type) {
	case *PermanentAura:
		return v.Clone()
	case *TimedAura:
		return v.Clone()
	default:
		return nil, notSupported("clone", fmt.Sprintf("%T", a))
	}
}

// FindAuraEffect returns the first effect of a of type T that satisfies
// match (nil matches everything).
func FindAuraEffect[T Effect](a Aura, match func(T) bool) (T, bool) {
	for _, e := range a.core().effects {
		if t, ok := e.(T); ok && (match == nil || match(t)) {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// PermanentAura stays until explicitly removed from its list.
type PermanentAura struct {
	auraCore
}

// NewPermanentAura creates an unattached aura holding effects.
func NewPermanentAura(name string, effects ...Effect) *PermanentAura {
	return &PermanentAura{auraCore: auraCore{name: name, effects: effects}}
}

func (a *PermanentAura) TypeName() string { return "PermanentAura" }

// Clone returns an unattached deep copy.
func (a *PermanentAura) Clone() (*PermanentAura, error) {
	effects, err := a.cloneEffects()
	if err != nil {
		return nil, err
	}
	return &PermanentAura{auraCore: auraCore{
		name:    a.name,
		symbol:  a.symbol,
		color:   a.color,
		effects: effects,
	}}, nil
}

func (a *PermanentAura) Serialize(sc *SerializationContext) error {
	return a.serializeCore(sc)
}

func (a *PermanentAura) Deserialize(dc *DeserializationContext) error {
	f, err := readAuraFields(dc)
	if err != nil {
		return err
	}
	a.commit(f)
	return nil
}
