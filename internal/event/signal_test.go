package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_EmitAndUnsubscribe(t *testing.T) {
	var s Signal[int]
	var got []int

	sub := s.Subscribe(func(v int) { got = append(got, v) })
	s.Emit(1)
	sub.Unsubscribe()
	sub.Unsubscribe()
	s.Emit(2)

	assert.Equal(t, []int{1}, got)
	assert.Zero(t, s.Len())
}

func TestSignal_UnsubscribeDuringEmit(t *testing.T) {
	var s Signal[string]
	calls := 0

	var first Subscription
	first = s.Subscribe(func(string) {
		calls++
		first.Unsubscribe()
	})
	s.Subscribe(func(string) { calls++ })

	s.Emit("a")
	assert.Equal(t, 2, calls, "handlers registered at emit time all run")

	s.Emit("b")
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, s.Len())
}

func TestValue_SetNotifies(t *testing.T) {
	v := NewValue(10)
	var changes []Change[int]

	v.Subscribe(func(c Change[int]) { changes = append(changes, c) }, true)
	v.Set(7)
	v.Set(7)
	v.SetSilently(3)

	assert.Equal(t, []Change[int]{{10, 10}, {10, 7}, {7, 7}}, changes)
	assert.Equal(t, 3, v.Get())
}
