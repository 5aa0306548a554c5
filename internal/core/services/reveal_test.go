package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevealer_Schedule_Fires(t *testing.T) {
	r := NewRevealer(5 * time.Millisecond)
	defer r.Dispose()

	fired := make(chan struct{})
	r.Schedule(func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}
	assert.Eventually(t, func() bool { return r.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestRevealer_Cancel(t *testing.T) {
	r := NewRevealer(20 * time.Millisecond)
	defer r.Dispose()

	var calls atomic.Int32
	cancel := r.Schedule(func() { calls.Add(1) })
	assert.Equal(t, 1, r.Pending())

	cancel()
	assert.Equal(t, 0, r.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// Cancelling twice is harmless.
	cancel()
}

func TestRevealer_Dispose_StopsPending(t *testing.T) {
	r := NewRevealer(20 * time.Millisecond)

	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		r.Schedule(func() { calls.Add(1) })
	}
	assert.Equal(t, 3, r.Pending())

	r.Dispose()
	assert.Equal(t, 0, r.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRevealer_ScheduleAfterDispose(t *testing.T) {
	r := NewRevealer(time.Millisecond)
	r.Dispose()

	var calls atomic.Int32
	cancel := r.Schedule(func() { calls.Add(1) })
	assert.NotNil(t, cancel)
	assert.Equal(t, 0, r.Pending())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	cancel()
}
