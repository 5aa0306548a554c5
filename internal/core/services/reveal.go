package services

import (
	"sync"
	"time"
)

// Revealer runs delayed callbacks owned by one presentation component.
// After Dispose, pending callbacks never run and new ones are dropped.
type Revealer struct {
	delay time.Duration

	mu       sync.Mutex
	pending  map[uint64]*time.Timer
	next     uint64
	disposed bool
}

// NewRevealer creates a revealer that waits delay before each callback.
func NewRevealer(delay time.Duration) *Revealer {
	return &Revealer{
		delay:   delay,
		pending: make(map[uint64]*time.Timer),
	}
}

// Schedule runs fn after the delay. The returned cancel func is safe to
// call at any time, including after fn has run.
func (r *Revealer) Schedule(fn func()) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return func() {}
	}

	r.next++
	id := r.next
	r.pending[id] = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		_, live := r.pending[id]
		delete(r.pending, id)
		disposed := r.disposed
		r.mu.Unlock()

		if live && !disposed {
			fn()
		}
	})

	return func() { r.cancel(id) }
}

// Pending returns the number of callbacks that have not fired yet.
func (r *Revealer) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Dispose stops every pending callback.
func (r *Revealer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.pending {
		t.Stop()
		delete(r.pending, id)
	}
	r.disposed = true
}

func (r *Revealer) cancel(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.pending[id]; ok {
		t.Stop()
		delete(r.pending, id)
	}
}
