// Package rng provides the Mersenne-Twister random stream shared by procs
// and spawners of one scene.
package rng

import (
	"math/rand"

	"github.com/seehuhn/mt19937"
)

// Rand wraps an MT19937 stream with position tracking.
// Position counts raw draws from the generator, so Restore(seed, pos)
// reproduces the exact state for save/load.
//
// Not safe for concurrent use; the game loop is single-threaded.
type Rand struct {
	seed int64
	src  *countingSource
	r    *rand.Rand
}

type countingSource struct {
	mt *mt19937.MT19937
	n  int64
}

func (c *countingSource) Int63() int64 {
	c.n++
	return c.mt.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.n++
	return c.mt.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.mt.Seed(seed)
	c.n = 0
}

// New creates a stream seeded with seed.
func New(seed int64) *Rand {
	mt := mt19937.New()
	mt.Seed(seed)
	src := &countingSource{mt: mt}
	return &Rand{
		seed: seed,
		src:  src,
		r:    rand.New(src),
	}
}

// Restore creates a stream and advances it to the given position.
func Restore(seed, position int64) *Rand {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.mt.Uint64()
	}
	r.src.n = position
	return r
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Percent returns a uniform value in [0, 100).
func (r *Rand) Percent() float64 {
	return r.r.Float64() * 100
}

// Intn returns a uniform value in [0, n). Panics if n <= 0.
func (r *Rand) Intn(n int) int {
	return r.r.Intn(n)
}

// Seed returns the seed the stream was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// Position returns the number of raw draws made since seeding.
func (r *Rand) Position() int64 {
	return r.src.n
}
