package render

import (
	"context"
	"sync"
	"time"
)

// Ticket identifies one scheduled frame. Only the most recently scheduled
// ticket can fire.
type Ticket uint64

// Loop is a cancellable frame scheduler. It can be driven externally, by
// pairing Schedule with a timer that later calls Fire (the TUI uses tea.Tick),
// or internally by Run. Either way no frame fires after Cancel.
type Loop struct {
	clock    Clock
	interval time.Duration

	mu        sync.Mutex
	next      Ticket
	pending   Ticket
	cancelled bool

	// frame serialises frame callbacks in Run with Cancel.
	frame sync.Mutex
}

// NewLoop returns a loop advancing clock at fps frames per second.
func NewLoop(clock Clock, fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{clock: clock, interval: time.Second / time.Duration(fps)}
}

// Interval is the delay between frames.
func (l *Loop) Interval() time.Duration { return l.interval }

// Schedule reserves the next frame and returns its ticket, superseding any
// pending one. It returns 0 once the loop is cancelled.
func (l *Loop) Schedule() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancelled {
		return 0
	}
	l.next++
	l.pending = l.next
	return l.pending
}

// Fire consumes ticket tk and advances the clock. ok is false for a stale,
// zero or cancelled ticket, in which case nothing must be drawn.
func (l *Loop) Fire(tk Ticket, now time.Time) (t float64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancelled || tk == 0 || tk != l.pending {
		return 0, false
	}
	l.pending = 0
	return l.clock.Advance(now), true
}

// Cancel stops the loop. When it returns, no frame callback is running in
// Run and none will start. Frame callbacks must not call Cancel themselves.
func (l *Loop) Cancel() {
	l.frame.Lock()
	defer l.frame.Unlock()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelled = true
	l.pending = 0
}

// Running reports whether the loop has not been cancelled.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.cancelled
}

// Run calls frame with the animation time once per interval until ctx ends
// or the loop is cancelled. frame reports whether it drew; a frame that could
// not draw (for example an unmeasured surface) is simply retried on the next
// tick.
func (l *Loop) Run(ctx context.Context, frame func(t float64) bool) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		tk := l.Schedule()
		if tk == 0 {
			return
		}
		select {
		case <-ctx.Done():
			l.Cancel()
			return
		case now := <-ticker.C:
			l.frame.Lock()
			if t, ok := l.Fire(tk, now); ok {
				frame(t)
			}
			l.frame.Unlock()
		}
	}
}
