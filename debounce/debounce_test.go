package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesTriggers(t *testing.T) {
	d := New(20 * time.Millisecond)

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return d.Fired() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerCancel(t *testing.T) {
	d := New(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}
