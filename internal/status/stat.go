package status

import (
	"fmt"
	"strings"
)

// Stat identifies one derived value of a Statable.
type Stat uint8

const (
	StatStrength Stat = iota
	StatDexterity
	StatAgility
	StatVitality
	StatIntelligence
	StatLuck
	StatMaxLife
	StatMaxMana
	StatArmor
	StatMovementSpeed
	StatMeleeAttackSpeed  // seconds per attack
	StatRangedAttackSpeed // seconds per attack
	StatChanceToCrit
	StatChanceToDodge
	StatChanceToBlock
	StatChanceToMiss
	StatChanceToParry
	StatChanceToPierce

	statCount
)

var statNames = [statCount]string{
	StatStrength:          "Strength",
	StatDexterity:         "Dexterity",
	StatAgility:           "Agility",
	StatVitality:          "Vitality",
	StatIntelligence:      "Intelligence",
	StatLuck:              "Luck",
	StatMaxLife:           "MaxLife",
	StatMaxMana:           "MaxMana",
	StatArmor:             "Armor",
	StatMovementSpeed:     "MovementSpeed",
	StatMeleeAttackSpeed:  "MeleeAttackSpeed",
	StatRangedAttackSpeed: "RangedAttackSpeed",
	StatChanceToCrit:      "ChanceToCrit",
	StatChanceToDodge:     "ChanceToDodge",
	StatChanceToBlock:     "ChanceToBlock",
	StatChanceToMiss:      "ChanceToMiss",
	StatChanceToParry:     "ChanceToParry",
	StatChanceToPierce:    "ChanceToPierce",
}

// Valid reports whether s is a known stat.
func (s Stat) Valid() bool {
	return s < statCount
}

func (s Stat) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stat(%d)", s)
	}
	return statNames[s]
}

// ParseStat parses a stat name (case-insensitive).
func ParseStat(name string) (Stat, error) {
	for i, n := range statNames {
		if strings.EqualFold(name, n) {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("stat %q: %w", name, ErrInvalidArgument)
}

func (s Stat) isAttackSpeed() bool {
	return s == StatMeleeAttackSpeed || s == StatRangedAttackSpeed
}

func (s Stat) isChance() bool {
	return s >= StatChanceToCrit && s <= StatChanceToPierce
}

// AttackType selects which attack kinds an effect or hook applies to.
type AttackType uint8

const (
	AttackAll AttackType = iota
	AttackMelee
	AttackRanged
)

var attackNames = [...]string{
	AttackAll:    "All",
	AttackMelee:  "Melee",
	AttackRanged: "Ranged",
}

// Valid reports whether a is a known attack type.
func (a AttackType) Valid() bool {
	return int(a) < len(attackNames)
}

func (a AttackType) String() string {
	if !a.Valid() {
		return fmt.Sprintf("AttackType(%d)", a)
	}
	return attackNames[a]
}

// Matches reports whether an attack of kind other is covered by a.
func (a AttackType) Matches(other AttackType) bool {
	return a == AttackAll || a == other
}

// ParseAttackType parses "All", "Melee" or "Ranged" (case-insensitive).
func ParseAttackType(s string) (AttackType, error) {
	for i, name := range attackNames {
		if strings.EqualFold(s, name) {
			return AttackType(i), nil
		}
	}
	return 0, fmt.Errorf("attack type %q: %w", s, ErrInvalidArgument)
}

func attackFromByte(b byte) (AttackType, error) {
	a := AttackType(b)
	if !a.Valid() {
		return 0, fmt.Errorf("attack type %d: %w", b, ErrInvalidArgument)
	}
	return a, nil
}

// ChanceTo names a chance-based combat status.
type ChanceTo uint8

const (
	ChanceToCrit ChanceTo = iota
	ChanceToDodge
	ChanceToBlock
	ChanceToMiss
	ChanceToParry
	ChanceToPierce

	chanceToCount
)

// Valid reports whether c is a known chance kind.
func (c ChanceTo) Valid() bool {
	return c < chanceToCount
}

// Stat returns the stat backing c.
func (c ChanceTo) Stat() Stat {
	return StatChanceToCrit + Stat(c)
}

func (c ChanceTo) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ChanceTo(%d)", c)
	}
	return strings.TrimPrefix(c.Stat().String(), "ChanceTo")
}

// ParseChanceTo parses "Crit", "Dodge", ... (case-insensitive).
func ParseChanceTo(s string) (ChanceTo, error) {
	for c := ChanceTo(0); c < chanceToCount; c++ {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("chance kind %q: %w", s, ErrInvalidArgument)
}

func chanceFromByte(b byte) (ChanceTo, error) {
	c := ChanceTo(b)
	if !c.Valid() {
		return 0, fmt.Errorf("chance kind %d: %w", b, ErrInvalidArgument)
	}
	return c, nil
}
