package schedule

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestAfterFiresAtDelay(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	fired := 0
	s.After(100*time.Millisecond, func() { fired++ })

	mock.Add(99 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired %d times before the delay elapsed", fired)
	}

	mock.Add(1 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected exactly one firing, got %d", fired)
	}

	mock.Add(time.Second)
	if fired != 1 {
		t.Fatalf("one-shot fired again, total %d", fired)
	}
}

func TestAfterCancelPreventsFiring(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	fired := 0
	task := s.After(100*time.Millisecond, func() { fired++ })
	task.Cancel()

	mock.Add(time.Second)
	if fired != 0 {
		t.Fatalf("cancelled task fired %d times", fired)
	}
}

func TestCancelIdempotentAndSafeAfterFire(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	task := s.After(10*time.Millisecond, func() {})
	mock.Add(10 * time.Millisecond)

	if !task.Done() {
		t.Fatal("expected task to be done")
	}

	// Must be a no-op, twice.
	task.Cancel()
	task.Cancel()
}

func TestEveryRepeatsUntilStopped(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	ticks := 0
	task := s.Every(200*time.Millisecond, func() bool {
		ticks++
		return ticks < 5
	})

	mock.Add(1 * time.Second)
	if ticks != 5 {
		t.Fatalf("expected 5 ticks, got %d", ticks)
	}
	if !task.Done() {
		t.Fatal("expected task done after fn returned false")
	}

	mock.Add(1 * time.Second)
	if ticks != 5 {
		t.Fatalf("ticks continued after stop: %d", ticks)
	}
}

func TestEveryCancelStopsFutureTicks(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	ticks := 0
	task := s.Every(200*time.Millisecond, func() bool {
		ticks++
		return true
	})

	mock.Add(600 * time.Millisecond)
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}

	task.Cancel()
	mock.Add(1 * time.Second)
	if ticks != 3 {
		t.Fatalf("ticks continued after cancel: %d", ticks)
	}
}

func TestEveryTicksAreOrdered(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	var seen []int
	n := 0
	s.Every(100*time.Millisecond, func() bool {
		n++
		seen = append(seen, n)
		return n < 4
	})

	mock.Add(400 * time.Millisecond)

	for i, v := range seen {
		if v != i+1 {
			t.Fatalf("ticks out of order: %v", seen)
		}
	}
}

func TestNowTracksClock(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	start := s.Now()
	mock.Add(42 * time.Second)
	if got := s.Now().Sub(start); got != 42*time.Second {
		t.Fatalf("expected Now to advance 42s, got %v", got)
	}
}
