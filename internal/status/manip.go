package status

import (
	"fmt"
	"strings"
)

// ManipType defines how an effect value composes with a stat.
type ManipType uint8

const (
	ManipFixed     ManipType = iota // added to the base value
	ManipPercental                  // percentage of the base value
	ManipRating                     // rating points, converted to percent by level
)

var manipNames = [...]string{
	ManipFixed:     "Fixed",
	ManipPercental: "Percental",
	ManipRating:    "Rating",
}

// Valid reports whether m is a known manipulation type.
func (m ManipType) Valid() bool {
	return int(m) < len(manipNames)
}

func (m ManipType) String() string {
	if !m.Valid() {
		return fmt.Sprintf("ManipType(%d)", m)
	}
	return manipNames[m]
}

// ParseManipType parses "Fixed", "Percental" or "Rating" (case-insensitive).
func ParseManipType(s string) (ManipType, error) {
	for i, name := range manipNames {
		if strings.EqualFold(s, name) {
			return ManipType(i), nil
		}
	}
	return 0, fmt.Errorf("manip type %q: %w", s, ErrInvalidArgument)
}

func manipFromByte(b byte) (ManipType, error) {
	m := ManipType(b)
	if !m.Valid() {
		return 0, fmt.Errorf("manip type %d: %w", b, ErrInvalidArgument)
	}
	return m, nil
}
