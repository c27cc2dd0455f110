// Package schedule provides cancellable one-shot and repeating timers on top
// of an injectable clock, so timer-driven state can be exercised against
// virtual time in tests.
package schedule

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler creates cancellable tasks on an underlying clock.
type Scheduler struct {
	clock clock.Clock
}

// New creates a Scheduler on the given clock.
func New(c clock.Clock) *Scheduler {
	return &Scheduler{clock: c}
}

// NewSystem creates a Scheduler on the wall clock.
func NewSystem() *Scheduler {
	return New(clock.New())
}

// Clock returns the underlying clock.
func (s *Scheduler) Clock() clock.Clock {
	return s.clock
}

// Now returns the scheduler's current time. Owners stamp their state with
// this instead of reading the wall clock directly.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Task is a handle to scheduled work. Cancel is idempotent and safe to call
// after the work has already fired.
type Task struct {
	mu        sync.Mutex
	timer     *clock.Timer
	cancelled bool
	done      bool
}

// After runs fn once after d. On a live clock fn runs on a timer goroutine;
// owners that share state with callers must fence fn with their own lock.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.mu.Lock()
	t.timer = s.clock.AfterFunc(d, func() {
		t.mu.Lock()
		if t.cancelled {
			t.mu.Unlock()
			return
		}
		t.done = true
		t.mu.Unlock()
		fn()
	})
	t.mu.Unlock()
	return t
}

// Every runs fn after each interval d until fn returns false or the task is
// cancelled. Each firing observes the state committed by the previous one.
func (s *Scheduler) Every(d time.Duration, fn func() bool) *Task {
	t := &Task{}
	var run func()
	run = func() {
		t.mu.Lock()
		if t.cancelled {
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()

		if !fn() {
			t.mu.Lock()
			t.done = true
			t.mu.Unlock()
			return
		}

		t.mu.Lock()
		if !t.cancelled {
			t.timer = s.clock.AfterFunc(d, run)
		}
		t.mu.Unlock()
	}
	t.mu.Lock()
	t.timer = s.clock.AfterFunc(d, run)
	t.mu.Unlock()
	return t
}

// Cancel stops the task. No new firing starts after Cancel returns; a firing
// already in flight is fenced by the owner's own state check.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

// Done reports whether the task ran to completion (one-shot fired, or a
// repeating task stopped itself).
func (t *Task) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
