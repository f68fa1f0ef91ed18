package status

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported is returned when cloning or serializing an effect that
	// is bound to live runtime state. It signals an integration bug.
	ErrNotSupported = errors.New("operation not supported")

	// ErrOutOfRange is matched by OutOfRangeError.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidArgument marks configuration values a type does not accept.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownType is matched by UnknownTypeError.
	ErrUnknownType = errors.New("unknown type")

	// ErrAuraAttached is returned when adding an aura that already belongs
	// to another AuraList.
	ErrAuraAttached = errors.New("aura is attached to another list")

	// ErrAlreadyHooked is returned by Hook.Hook when the hook is bound.
	ErrAlreadyHooked = errors.New("hook already bound")
)

// OutOfRangeError reports a numeric configuration value outside its bounds.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s=%v out of range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// UnknownTypeError reports a type tag that no factory is registered for.
type UnknownTypeError struct {
	Family string
	Tag    string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Family, e.Tag)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

func notSupported(op, typeName string) error {
	return fmt.Errorf("%s %s: %w", op, typeName, ErrNotSupported)
}
