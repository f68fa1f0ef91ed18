package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_SubscribeUnsubscribe(t *testing.T) {
	var e Event[int]
	var got []int

	a := e.Subscribe(func(v int) { got = append(got, v) })
	b := e.Subscribe(func(v int) { got = append(got, v*10) })
	assert.NotEqual(t, a, b)

	e.Raise(1)
	assert.Equal(t, []int{1, 10}, got)

	assert.True(t, e.Unsubscribe(a))
	assert.False(t, e.Unsubscribe(a))
	e.Raise(2)
	assert.Equal(t, []int{1, 10, 20}, got)
	assert.Equal(t, 1, e.Len())
}

func TestEvent_SubscribeDuringRaise(t *testing.T) {
	var e Event[int]
	calls := 0
	e.Subscribe(func(int) {
		calls++
		e.Subscribe(func(int) { calls += 100 })
	})

	e.Raise(0)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, e.Len())
}
