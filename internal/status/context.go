package status

import (
	"fmt"

	"github.com/udisondev/zelda/internal/rng"
	"github.com/udisondev/zelda/internal/serialization"
)

// Services are runtime references injected into freshly loaded objects.
// They replace process-wide statics: whoever loads a save decides them.
type Services struct {
	// Rand is the fallback stream for procs rolled by entities outside a scene.
	Rand *rng.Rand
}

// Setuper is implemented by loaded types that need runtime services.
type Setuper interface {
	Setup(s Services)
}

// SerializationContext writes polymorphic records.
type SerializationContext struct {
	*serialization.Writer
}

// NewSerializationContext wraps w.
func NewSerializationContext(w *serialization.Writer) *SerializationContext {
	return &SerializationContext{Writer: w}
}

// writeObject writes (tag, payload). A nil obj is written as an empty tag.
func (sc *SerializationContext) writeObject(obj Serializable) error {
	if obj == nil {
		sc.WriteString("")
		return nil
	}
	sc.WriteString(obj.TypeName())
	if err := obj.Serialize(sc); err != nil {
		return fmt.Errorf("serializing %s: %w", obj.TypeName(), err)
	}
	return nil
}

// WriteEffect writes e, failing with ErrNotSupported for runtime-only effects.
func (sc *SerializationContext) WriteEffect(e Effect) error {
	pe, ok := e.(PersistentEffect)
	if !ok {
		return notSupported("serialize", fmt.Sprintf("%T", e))
	}
	return sc.writeObject(pe)
}

// WriteProcChance writes c; nil is allowed.
func (sc *SerializationContext) WriteProcChance(c ProcChance) error {
	if c == nil {
		return sc.writeObject(nil)
	}
	return sc.writeObject(c)
}

// WriteHook writes h; nil is allowed.
func (sc *SerializationContext) WriteHook(h Hook) error {
	if h == nil {
		return sc.writeObject(nil)
	}
	return sc.writeObject(h)
}

// WriteAura writes a.
func (sc *SerializationContext) WriteAura(a Aura) error {
	if a == nil {
		return fmt.Errorf("writing aura: nil: %w", ErrInvalidArgument)
	}
	return sc.writeObject(a)
}

// WriteEffects writes a count followed by each effect.
func (sc *SerializationContext) WriteEffects(effects []Effect) error {
	sc.WriteInt(int32(len(effects)))
	for _, e := range effects {
		if err := sc.WriteEffect(e); err != nil {
			return err
		}
	}
	return nil
}

// DeserializationContext reads polymorphic records, resolving tags through
// the registry.
type DeserializationContext struct {
	*serialization.Reader
	Registry *Registry
	Services Services
}

// NewDeserializationContext wraps r.
func NewDeserializationContext(r *serialization.Reader, reg *Registry, svc Services) *DeserializationContext {
	return &DeserializationContext{Reader: r, Registry: reg, Services: svc}
}

func readObject[T Serializable](dc *DeserializationContext, f *Family[T], nullable bool) (T, error) {
	var zero T
	tag, err := dc.ReadString()
	if err != nil {
		return zero, fmt.Errorf("reading %s tag: %w", f.name, err)
	}
	if tag == "" {
		if nullable {
			return zero, nil
		}
		return zero, fmt.Errorf("%s is required: %w", f.name, ErrInvalidArgument)
	}
	obj, err := f.New(tag)
	if err != nil {
		return zero, err
	}
	if err := obj.Deserialize(dc); err != nil {
		return zero, fmt.Errorf("deserializing %s: %w", tag, err)
	}
	if s, ok := any(obj).(Setuper); ok {
		s.Setup(dc.Services)
	}
	return obj, nil
}

// ReadEffect reads one effect record.
func (dc *DeserializationContext) ReadEffect() (Effect, error) {
	return readObject(dc, dc.Registry.Effects, false)
}

// ReadEffects reads a count followed by that many effects.
func (dc *DeserializationContext) ReadEffects() ([]Effect, error) {
	n, err := dc.ReadCount(4)
	if err != nil {
		return nil, fmt.Errorf("reading effect count: %w", err)
	}
	effects := make([]Effect, 0, n)
	for i := 0; i < n; i++ {
		e, err := dc.ReadEffect()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		effects = append(effects, e)
	}
	return effects, nil
}

// ReadProcChance reads a nullable proc chance record.
func (dc *DeserializationContext) ReadProcChance() (ProcChance, error) {
	return readObject(dc, dc.Registry.ProcChances, true)
}

// ReadHook reads a nullable hook record.
func (dc *DeserializationContext) ReadHook() (Hook, error) {
	return readObject(dc, dc.Registry.Hooks, true)
}

// ReadAura reads one aura record.
func (dc *DeserializationContext) ReadAura() (Aura, error) {
	return readObject(dc, dc.Registry.Auras, false)
}
