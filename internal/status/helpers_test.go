package status

import (
	"errors"
	"fmt"
)

// countingEffect records enable/disable calls.
type countingEffect struct {
	id         string
	enabled    int
	disabled   int
	enableErr  error
	disableErr error
}

func newCountingEffect(id string) *countingEffect {
	return &countingEffect{id: id}
}

func (e *countingEffect) Identifier() string { return e.id }

func (e *countingEffect) OnEnable(*Statable) error {
	if e.enableErr != nil {
		return e.enableErr
	}
	e.enabled++
	return nil
}

func (e *countingEffect) OnDisable(*Statable) error {
	e.disabled++
	return e.disableErr
}

func (e *countingEffect) Equals(other Effect) bool {
	o, ok := other.(*countingEffect)
	return ok && o.id == e.id
}

func (e *countingEffect) Description(*Statable) string { return fmt.Sprintf("counting %s", e.id) }

var errBoom = errors.New("boom")

// must unwraps a constructor result in fixtures built from known-good values.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
