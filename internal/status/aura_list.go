package status

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// AuraList is the per-entity container of active auras.
// It is owned by exactly one Statable.
type AuraList struct {
	owner *Statable
	auras []Aura
}

func newAuraList(owner *Statable) *AuraList {
	return &AuraList{
		owner: owner,
		auras: make([]Aura, 0, 8),
	}
}

// Owner returns the owning Statable.
func (l *AuraList) Owner() *Statable { return l.owner }

// Len returns the number of auras.
func (l *AuraList) Len() int { return len(l.auras) }

// Auras returns a copy of the auras in list order.
func (l *AuraList) Auras() []Aura { return slices.Clone(l.auras) }

// Contains reports whether a (by reference) is in the list.
func (l *AuraList) Contains(a Aura) bool {
	return slices.Contains(l.auras, a)
}

// Find returns the first aura with the given name.
func (l *AuraList) Find(name string) (Aura, bool) {
	for _, a := range l.auras {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Add enables a and appends it. Adding an aura that is already present is a
// no-op. If an effect fails to enable, the aura is not added.
func (l *AuraList) Add(a Aura) error {
	if a == nil {
		return fmt.Errorf("adding nil aura: %w", ErrInvalidArgument)
	}
	if l.Contains(a) {
		return nil
	}
	if a.List() != nil {
		return fmt.Errorf("adding aura %s to %s: %w", a.Name(), l.owner.name, ErrAuraAttached)
	}
	if err := a.attach(l); err != nil {
		return err
	}
	l.auras = append(l.auras, a)

	slog.Debug("aura added", "aura", a.Name(), "owner", l.owner.name, "effects", len(a.core().effects))
	return nil
}

// Remove disables a and removes it. Removing an absent aura is a no-op.
// Every effect is disabled even if some fail; the first error comes first
// in the returned joined error.
func (l *AuraList) Remove(a Aura) error {
	i := slices.Index(l.auras, a)
	if i < 0 {
		return nil
	}
	l.auras = slices.Delete(l.auras, i, i+1)
	err := a.core().disable()

	slog.Debug("aura removed", "aura", a.Name(), "owner", l.owner.name)
	return err
}

// Clear disables and removes every aura in list order.
func (l *AuraList) Clear() error {
	auras := l.auras
	l.auras = make([]Aura, 0, cap(auras))

	var errs []error
	for _, a := range auras {
		if err := a.core().disable(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update advances timed auras by elapsed and removes the ones that ran out.
func (l *AuraList) Update(elapsed time.Duration) error {
	var expired []Aura
	for _, a := range slices.Clone(l.auras) {
		t, ok := a.(*TimedAura)
		if !ok {
			continue
		}
		if t.tick(elapsed) {
			expired = append(expired, t)
		}
	}

	var errs []error
	for _, a := range expired {
		slog.Debug("aura expired", "aura", a.Name(), "owner", l.owner.name)
		if err := l.Remove(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FindEffect returns the first effect of type T, across all auras in list
// order, that satisfies match (nil matches everything).
func FindEffect[T Effect](l *AuraList, match func(T) bool) (T, bool) {
	for _, a := range l.auras {
		if t, ok := FindAuraEffect(a, match); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
