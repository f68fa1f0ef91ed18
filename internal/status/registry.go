package status

import (
	"errors"
	"fmt"
	"sort"
)

// typeNamer is the part of Serializable a Family needs. Family cannot be
// constrained by Serializable itself: that interface mentions
// DeserializationContext, which holds the Registry built from families.
type typeNamer interface {
	TypeName() string
}

// Family maps stable type tags of one polymorphic family to constructors.
type Family[T typeNamer] struct {
	name    string
	ctors   map[string]func() T
	aliases map[string]string
}

func newFamily[T Serializable](name string) *Family[T] {
	return &Family[T]{
		name:    name,
		ctors:   make(map[string]func() T),
		aliases: make(map[string]string),
	}
}

// Register adds a constructor for tag, replacing any previous one.
func (f *Family[T]) Register(tag string, ctor func() T) {
	f.ctors[tag] = ctor
}

// Alias makes records written under an old tag load as current.
// Renaming a type without an alias breaks existing save files.
func (f *Family[T]) Alias(old, current string) {
	f.aliases[old] = current
}

// New constructs a zero value for tag.
func (f *Family[T]) New(tag string) (T, error) {
	if current, ok := f.aliases[tag]; ok {
		tag = current
	}
	ctor, ok := f.ctors[tag]
	if !ok {
		var zero T
		return zero, &UnknownTypeError{Family: f.name, Tag: tag}
	}
	return ctor(), nil
}

// Tags returns the registered tags in sorted order.
func (f *Family[T]) Tags() []string {
	tags := make([]string, 0, len(f.ctors))
	for tag := range f.ctors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (f *Family[T]) validate() error {
	var errs []error
	if len(f.ctors) == 0 {
		errs = append(errs, fmt.Errorf("%s: no types registered", f.name))
	}
	for _, tag := range f.Tags() {
		obj := f.ctors[tag]()
		if any(obj) == nil {
			errs = append(errs, fmt.Errorf("%s %q: constructor returned nil", f.name, tag))
			continue
		}
		if got := obj.TypeName(); got != tag {
			errs = append(errs, fmt.Errorf("%s %q: constructor builds %q", f.name, tag, got))
		}
	}
	for old, current := range f.aliases {
		if _, ok := f.ctors[current]; !ok {
			errs = append(errs, fmt.Errorf("%s alias %q: target %q not registered", f.name, old, current))
		}
	}
	return errors.Join(errs...)
}

// Registry is the closed set of types that can appear in save records.
type Registry struct {
	Effects     *Family[PersistentEffect]
	ProcChances *Family[ProcChance]
	Hooks       *Family[Hook]
	Auras       *Family[Aura]
}

// NewRegistry returns a registry holding every built-in type.
func NewRegistry() *Registry {
	r := &Registry{
		Effects:     newFamily[PersistentEffect]("effect"),
		ProcChances: newFamily[ProcChance]("proc chance"),
		Hooks:       newFamily[Hook]("hook"),
		Auras:       newFamily[Aura]("aura"),
	}

	r.Effects.Register("StatEffect", func() PersistentEffect { return &StatEffect{} })
	r.Effects.Register("MovementSpeedEffect", func() PersistentEffect { return &MovementSpeedEffect{} })
	r.Effects.Register("AttackSpeedEffect", func() PersistentEffect { return &AttackSpeedEffect{} })
	r.Effects.Register("ChanceToStatusEffect", func() PersistentEffect { return &ChanceToStatusEffect{} })
	r.Effects.Register("TimedStatusProcEffect", func() PersistentEffect { return &TimedStatusProcEffect{} })
	r.Effects.Register("HealProcEffect", func() PersistentEffect { return &HealProcEffect{} })

	r.ProcChances.Register("FixedProcChance", func() ProcChance { return &FixedProcChance{} })
	r.ProcChances.Register("AttackSpeedProcChance", func() ProcChance { return &AttackSpeedProcChance{attack: AttackMelee} })

	r.Hooks.Register("AttackHook", func() Hook { return &AttackHook{} })
	r.Hooks.Register("HurtHook", func() Hook { return &HurtHook{} })
	r.Hooks.Register("KillHook", func() Hook { return &KillHook{} })

	r.Auras.Register("PermanentAura", func() Aura { return &PermanentAura{} })
	r.Auras.Register("TimedAura", func() Aura { return &TimedAura{} })

	return r
}

// Validate checks every family for completeness. Call it at startup.
func (r *Registry) Validate() error {
	return errors.Join(
		r.Effects.validate(),
		r.ProcChances.validate(),
		r.Hooks.validate(),
		r.Auras.validate(),
	)
}
