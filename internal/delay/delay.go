// Package delay provides the only suspension primitive the workflow uses to
// wait for the driven page to react.
package delay

import (
	"sync"
	"time"
)

// Scheduler suspends the caller for a duration. Implementations never fail
// and cannot be cancelled: a wait that started always runs to completion.
type Scheduler interface {
	After(d time.Duration)
}

// Clock is the wall-clock Scheduler.
type Clock struct{}

func (Clock) After(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

// Recorder returns immediately and remembers every requested duration.
// OnWait, if set, runs before the wait is recorded as finished.
type Recorder struct {
	mu     sync.Mutex
	waits  []time.Duration
	OnWait func(n int, d time.Duration)
}

func (r *Recorder) After(d time.Duration) {
	r.mu.Lock()
	r.waits = append(r.waits, d)
	n := len(r.waits)
	hook := r.OnWait
	r.mu.Unlock()

	if hook != nil {
		hook(n, d)
	}
}

// Waits returns a copy of the recorded durations in call order.
func (r *Recorder) Waits() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.waits))
	copy(out, r.waits)
	return out
}

// Total is the sum of all recorded durations.
func (r *Recorder) Total() time.Duration {
	var total time.Duration
	for _, d := range r.Waits() {
		total += d
	}
	return total
}
