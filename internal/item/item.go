package item

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/zelda/internal/status"
)

var (
	// ErrEquipped is returned when equipping an item that is already worn.
	ErrEquipped = errors.New("item already equipped")
	// ErrNotEquipped is returned when unequipping an item that is not worn.
	ErrNotEquipped = errors.New("item not equipped")
)

// Item is a piece of equipment. Its stats live in one PermanentAura that is
// added to the wearer's AuraList on Equip.
type Item struct {
	name    string
	level   int
	slot    Slot
	affixes []string
	aura    *status.PermanentAura
	owner   *status.Statable
}

// NewItem creates an unequipped item with an empty aura.
func NewItem(name string, level int, slot Slot) (*Item, error) {
	if name == "" {
		return nil, fmt.Errorf("item name cannot be empty")
	}
	if level < 1 {
		return nil, fmt.Errorf("item level must be >= 1, got %d", level)
	}
	if !slot.Valid() || slot == SlotNone {
		return nil, fmt.Errorf("item %s: invalid slot %s", name, slot)
	}
	return &Item{
		name:  name,
		level: level,
		slot:  slot,
		aura:  status.NewPermanentAura(name),
	}, nil
}

// Name returns the base name.
func (it *Item) Name() string { return it.name }

// Level returns the item level.
func (it *Item) Level() int { return it.level }

// Slot returns the equipment slot.
func (it *Item) Slot() Slot { return it.slot }

// Aura returns the aura carrying the item's effects.
func (it *Item) Aura() *status.PermanentAura { return it.aura }

// Owner returns the wearer, or nil.
func (it *Item) Owner() *status.Statable { return it.owner }

// IsEquipped reports whether the item is worn.
func (it *Item) IsEquipped() bool { return it.owner != nil }

// DisplayName renders prefixes and suffixes around the base name,
// e.g. "Impetuous Dagger of the Fox".
func (it *Item) DisplayName() string {
	var prefixes, suffixes []string
	for _, a := range it.affixes {
		if strings.HasPrefix(a, "of ") {
			suffixes = append(suffixes, a)
		} else {
			prefixes = append(prefixes, a)
		}
	}
	parts := append(prefixes, it.name)
	parts = append(parts, suffixes...)
	return strings.Join(parts, " ")
}

// Affixes returns the applied affix names in order.
func (it *Item) Affixes() []string {
	return append([]string(nil), it.affixes...)
}

// ApplyAffix applies a to the item. Effects stack onto existing ones of the
// same kind instead of being duplicated.
func (it *Item) ApplyAffix(a Affix) error {
	if err := a.Apply(it); err != nil {
		return fmt.Errorf("applying %s to %s: %w", a.Name(), it.name, err)
	}
	it.affixes = append(it.affixes, a.Name())
	return nil
}

// Equip adds the item aura to owner.
func (it *Item) Equip(owner *status.Statable) error {
	if it.owner != nil {
		return fmt.Errorf("equip %s on %s: %w", it.name, owner.Name(), ErrEquipped)
	}
	if err := owner.Auras().Add(it.aura); err != nil {
		return fmt.Errorf("equip %s on %s: %w", it.name, owner.Name(), err)
	}
	it.owner = owner

	slog.Debug("item equipped", "item", it.name, "slot", it.slot, "owner", owner.Name())
	return nil
}

// Unequip removes the item aura from its wearer. The item is unequipped
// even if some effect fails to disable.
func (it *Item) Unequip() error {
	if it.owner == nil {
		return fmt.Errorf("unequip %s: %w", it.name, ErrNotEquipped)
	}
	owner := it.owner
	it.owner = nil
	if err := owner.Auras().Remove(it.aura); err != nil {
		return fmt.Errorf("unequip %s from %s: %w", it.name, owner.Name(), err)
	}

	slog.Debug("item unequipped", "item", it.name, "owner", owner.Name())
	return nil
}

// Describe returns the display name followed by one line per effect.
func (it *Item) Describe(user *status.Statable) []string {
	return append([]string{it.DisplayName()}, status.Describe(it.aura, user)...)
}
