package core

import (
	"sync"
	"time"
)

// MockWriter is a thread-safe io.Writer for testing.
type MockWriter struct {
	mu   sync.Mutex
	data []byte
}

func (w *MockWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *MockWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.data)
}

// ManualTimer is the TimerHandle produced by ManualScheduler. It never
// fires on its own; tests fire it explicitly.
type ManualTimer struct {
	Delay time.Duration

	mu      sync.Mutex
	fn      func()
	stopped bool
	fired   bool
}

// Stop marks the timer stopped. Reports true if the callback had not run.
func (t *ManualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the callback unless the timer was stopped. Firing twice runs
// it once. Note the scheduler's dispose-vs-run race is exercised by
// calling Fire from a separate goroutine.
func (t *ManualTimer) Fire() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// FireEvenIfStopped runs the callback regardless of Stop, modelling a
// delayed-execution facility whose callback was already in flight when
// the handle was disposed.
func (t *ManualTimer) FireEvenIfStopped() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// ManualScheduler records scheduled callbacks for tests to fire by hand.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) TimerHandle {
	t := &ManualTimer{Delay: d, fn: f}
	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return t
}

// Timers returns a copy of all timers scheduled so far, oldest first.
func (s *ManualScheduler) Timers() []*ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*ManualTimer, len(s.timers))
	copy(result, s.timers)
	return result
}

// Last returns the most recently scheduled timer, or nil.
func (s *ManualScheduler) Last() *ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// RecordingNotifier captures notifications for assertions. If Err is set,
// Notify records and then returns it.
type RecordingNotifier struct {
	Err error

	mu   sync.Mutex
	sent []Notification
}

func (r *RecordingNotifier) Notify(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.Err
}

func (r *RecordingNotifier) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Notification, len(r.sent))
	copy(result, r.sent)
	return result
}
