// Package stopwatch implements a start/stop/reset elapsed-time
// accumulator. The live elapsed value is computed from the clock on read;
// no background tick is needed.
package stopwatch

import (
	"sync"
	"time"

	"tempo/internal/core"
)

// Stopwatch accumulates elapsed time across start/stop cycles.
// All methods are safe for concurrent use.
type Stopwatch struct {
	clock core.Clock

	mu          sync.Mutex
	running     bool
	accumulated time.Duration
	startedAt   time.Time
}

// New creates a stopped stopwatch at zero.
func New(clock core.Clock) *Stopwatch {
	return &Stopwatch{clock: clock}
}

// Start begins accumulating. No-op if already running; in particular it
// does not move the running baseline.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.startedAt = s.clock.Now()
}

// Stop folds the running span into the accumulated total. No-op if not
// running.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.accumulated += s.clock.Since(s.startedAt)
	s.running = false
}

// Reset zeroes the accumulated total. A running stopwatch keeps running,
// re-based so it continues from zero.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accumulated = 0
	if s.running {
		s.startedAt = s.clock.Now()
	}
}

// IsRunning reports whether the stopwatch is accumulating.
func (s *Stopwatch) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed returns the accumulated total plus the live running span.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return s.accumulated
	}
	return s.accumulated + s.clock.Since(s.startedAt)
}
