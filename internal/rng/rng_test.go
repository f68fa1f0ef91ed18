package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRand_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRand_PercentRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		p := r.Percent()
		if p < 0 || p >= 100 {
			t.Fatalf("Percent out of range: %v", p)
		}
	}
}

func TestRand_PositionAndRestore(t *testing.T) {
	r := New(1234)
	for i := 0; i < 37; i++ {
		r.Percent()
	}
	r.Intn(10)
	pos := r.Position()
	assert.Positive(t, pos)

	restored := Restore(r.Seed(), pos)
	assert.Equal(t, pos, restored.Position())
	for i := 0; i < 50; i++ {
		assert.Equal(t, r.Float64(), restored.Float64())
	}
}
