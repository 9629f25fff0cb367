// Package countdown implements a one-shot countdown timer. At most one
// countdown is pending per Scheduler; starting a new one supersedes the
// previous. A generation counter invalidates callbacks from superseded or
// cancelled countdowns, so a late fire is a silent no-op.
package countdown

import (
	"errors"
	"sync"
	"time"

	"tempo/internal/core"
	"tempo/internal/format"
)

// ErrNonPositiveDuration is returned by Start for durations <= 0.
var ErrNonPositiveDuration = errors.New("countdown duration must be positive")

// Scheduler owns a single pending countdown.
// All methods are safe for concurrent use.
type Scheduler struct {
	clock    core.Clock
	delayed  core.Scheduler
	notifier core.Notifier

	// Debug, when set, records suppressed fires and notification
	// failures. May be nil.
	Debug *core.DebugLogger

	mu         sync.Mutex
	title      string
	generation uint64
	pending    bool
	dueAt      time.Time
	duration   time.Duration
	handle     core.TimerHandle
}

// NewScheduler creates an idle countdown scheduler. The notifier receives
// exactly one notification per countdown that reaches its due time without
// being cancelled or superseded.
func NewScheduler(clock core.Clock, delayed core.Scheduler, notifier core.Notifier) *Scheduler {
	return &Scheduler{
		clock:    clock,
		delayed:  delayed,
		notifier: notifier,
		title:    "Timer",
	}
}

// SetTitle changes the notification title, e.g. on config reload.
func (s *Scheduler) SetTitle(title string) {
	if title == "" {
		return
	}
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

// Start begins a countdown of d, superseding any pending one. A duration
// <= 0 is declined and leaves prior state untouched.
func (s *Scheduler) Start(d time.Duration) error {
	if d <= 0 {
		return ErrNonPositiveDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Stop()
	}
	s.generation++
	gen := s.generation
	s.pending = true
	s.duration = d
	s.dueAt = s.clock.Now().Add(d)
	s.handle = s.delayed.AfterFunc(d, func() { s.fire(gen) })
	return nil
}

// Cancel stops any pending countdown. Cancelling with nothing pending is
// a no-op; Cancel never fails.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
	// The increment also suppresses a callback already past Stop.
	s.generation++
	s.pending = false
	s.dueAt = time.Time{}
}

// Pending reports whether a countdown is waiting to fire.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Remaining returns the time left on the pending countdown. The second
// return is false when idle. Never negative.
func (s *Scheduler) Remaining() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending {
		return 0, false
	}
	left := s.dueAt.Sub(s.clock.Now())
	if left < 0 {
		left = 0
	}
	return left, true
}

// fire is the completion callback. It runs on whatever goroutine the
// delayed-execution facility uses; the generation check makes a stale
// invocation (cancelled or superseded after scheduling) a no-op.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.Debug.Logf("countdown: suppressed stale fire (generation %d)", gen)
		return
	}
	d := s.duration
	title := s.title
	s.pending = false
	s.dueAt = time.Time{}
	s.handle = nil
	s.mu.Unlock()

	// Notify outside the lock; a slow or failing sink must not block or
	// break the scheduler.
	err := s.notifier.Notify(core.Notification{
		Title: title,
		Body:  "Timer for " + format.Human(d) + " finished",
	})
	if err != nil {
		s.Debug.Logf("countdown: notification failed: %v", err)
	}
}
