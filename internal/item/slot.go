package item

import (
	"fmt"
	"strings"
)

// Slot is the equipment slot an item occupies.
type Slot int32

const (
	SlotNone Slot = iota
	SlotWeapon
	SlotHead
	SlotChest
	SlotLegs
	SlotFeet
	SlotGloves
	SlotNeck
	SlotFinger
	SlotRanged

	slotCount
)

var slotNames = [...]string{
	SlotNone:   "None",
	SlotWeapon: "Weapon",
	SlotHead:   "Head",
	SlotChest:  "Chest",
	SlotLegs:   "Legs",
	SlotFeet:   "Feet",
	SlotGloves: "Gloves",
	SlotNeck:   "Neck",
	SlotFinger: "Finger",
	SlotRanged: "Ranged",
}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	return s >= 0 && s < slotCount
}

// String returns human-readable slot name.
func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int32(s))
	}
	return slotNames[s]
}

// ParseSlot parses a slot name (case-insensitive).
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if strings.EqualFold(name, n) {
			return Slot(i), nil
		}
	}
	return SlotNone, fmt.Errorf("unknown slot %q", name)
}
