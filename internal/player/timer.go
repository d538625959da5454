package player

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Timer counts elapsed seconds on a single background goroutine.
type Timer struct {
	interval time.Duration
	seconds  atomic.Int64

	mu      sync.Mutex
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

// NewTimer creates a stopped timer that adds one second per interval.
// Games use time.Second; tests pass something shorter.
func NewTimer(interval time.Duration) *Timer {
	return &Timer{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the ticking goroutine. It runs until Stop is called or ctx
// is cancelled. Calling Start more than once has no effect.
func (t *Timer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.started = true

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.seconds.Add(1)
			case <-t.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the timer and waits for its goroutine to exit. Safe to call
// repeatedly and before Start.
func (t *Timer) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	started := t.started
	close(t.stop)
	t.mu.Unlock()

	if started {
		<-t.done
	}
}

// Seconds returns the elapsed seconds counted so far.
func (t *Timer) Seconds() int64 {
	return t.seconds.Load()
}

// String formats the elapsed time as 00h00m00s.
func (t *Timer) String() string {
	return FormatElapsed(t.Seconds())
}

// FormatElapsed renders a number of seconds as hours, minutes and seconds.
func FormatElapsed(seconds int64) string {
	minutes := seconds / 60
	hours := minutes / 60
	return fmt.Sprintf("%02dh%02dm%02ds", hours, minutes%60, seconds%60)
}
