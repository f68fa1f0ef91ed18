package serialization

import (
	"errors"
	"fmt"
)

// ErrInvalidVersion is matched by every InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid version")

// InvalidVersionError reports a record whose version lies outside the range
// the reading type accepts. There is no skip-unknown-fields fallback: a load
// that hits this error fails.
type InvalidVersionError struct {
	TypeName string
	Version  int32
	Min      int32
	Max      int32
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %d for %s (accepted %d..%d)", e.Version, e.TypeName, e.Min, e.Max)
}

func (e *InvalidVersionError) Is(target error) bool {
	return target == ErrInvalidVersion
}

// CheckVersion returns an *InvalidVersionError if version is outside [min, max].
func CheckVersion(version, min, max int32, typeName string) error {
	if version < min || version > max {
		return &InvalidVersionError{TypeName: typeName, Version: version, Min: min, Max: max}
	}
	return nil
}

// ReadVersion reads the leading version integer of a record and validates it.
func (r *Reader) ReadVersion(min, max int32, typeName string) (int32, error) {
	v, err := r.ReadInt()
	if err != nil {
		return 0, fmt.Errorf("reading %s version: %w", typeName, err)
	}
	if err := CheckVersion(v, min, max, typeName); err != nil {
		return 0, err
	}
	return v, nil
}
