package item

import (
	"math"

	"github.com/udisondev/zelda/internal/status"
)

// Affix is a named modifier rolled onto an item.
type Affix interface {
	Name() string
	Apply(it *Item) error
}

// stackable is an effect whose value can be increased in place.
type stackable interface {
	status.Effect
	AddValue(delta float64)
}

// findOrAdd increments the first effect of type T in the item aura that
// satisfies match, or adds the one built by create.
func findOrAdd[T stackable](it *Item, match func(T) bool, value float64, create func(value float64) (T, error)) error {
	if e, ok := status.FindAuraEffect(it.aura, match); ok {
		e.AddValue(value)
		return nil
	}
	e, err := create(value)
	if err != nil {
		return err
	}
	return it.aura.AddEffect(e)
}

func scaled(base, perLevel float64, level int) float64 {
	return base + math.Floor(perLevel*float64(level))
}

// ImpetuousPrefix adds attack speed rating.
type ImpetuousPrefix struct{}

func (ImpetuousPrefix) Name() string { return "Impetuous" }

// Value returns the rating granted at an item level.
func (ImpetuousPrefix) Value(level int) float64 { return scaled(3, 0.55, level) }

func (p ImpetuousPrefix) Apply(it *Item) error {
	return findOrAdd(it,
		func(e *status.AttackSpeedEffect) bool {
			return e.AttackType() == status.AttackAll && e.ManipType() == status.ManipRating
		},
		p.Value(it.level),
		func(v float64) (*status.AttackSpeedEffect, error) {
			return status.NewAttackSpeedEffect(status.AttackAll, v, status.ManipRating)
		})
}

// SwiftSuffix adds percental movement speed.
type SwiftSuffix struct{}

func (SwiftSuffix) Name() string { return "of Swiftness" }

// Value returns the percent granted at an item level.
func (SwiftSuffix) Value(level int) float64 { return scaled(2, 0.1, level) }

func (s SwiftSuffix) Apply(it *Item) error {
	return findOrAdd(it,
		func(e *status.MovementSpeedEffect) bool { return e.ManipType() == status.ManipPercental },
		s.Value(it.level),
		func(v float64) (*status.MovementSpeedEffect, error) {
			return status.NewMovementSpeedEffect(v, status.ManipPercental)
		})
}

// OfTheFoxSuffix adds dodge rating.
type OfTheFoxSuffix struct{}

func (OfTheFoxSuffix) Name() string { return "of the Fox" }

// Value returns the rating granted at an item level.
func (OfTheFoxSuffix) Value(level int) float64 { return scaled(2, 0.35, level) }

func (f OfTheFoxSuffix) Apply(it *Item) error {
	return findOrAdd(it,
		func(e *status.ChanceToStatusEffect) bool {
			return e.Status() == status.ChanceToDodge && e.ManipType() == status.ManipRating
		},
		f.Value(it.level),
		func(v float64) (*status.ChanceToStatusEffect, error) {
			return status.NewChanceToStatusEffect(status.ChanceToDodge, v, status.ManipRating)
		})
}

// Affixes is the lookup table used by templates and save files.
var Affixes = map[string]Affix{
	ImpetuousPrefix{}.Name(): ImpetuousPrefix{},
	SwiftSuffix{}.Name():     SwiftSuffix{},
	OfTheFoxSuffix{}.Name():  OfTheFoxSuffix{},
}
