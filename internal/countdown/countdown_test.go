package countdown

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tempo/internal/core"
)

func newTestScheduler() (*Scheduler, *core.FakeClock, *core.ManualScheduler, *core.RecordingNotifier) {
	clock := core.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	delayed := core.NewManualScheduler()
	notifier := &core.RecordingNotifier{}
	return NewScheduler(clock, delayed, notifier), clock, delayed, notifier
}

func TestStart_SchedulesCallback(t *testing.T) {
	s, _, delayed, _ := newTestScheduler()

	if err := s.Start(5 * time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	timer := delayed.Last()
	if timer == nil {
		t.Fatal("no callback scheduled")
	}
	if timer.Delay != 5*time.Minute {
		t.Errorf("scheduled delay = %v, expected 5m", timer.Delay)
	}
	if !s.Pending() {
		t.Error("Pending() = false after Start")
	}
}

func TestStart_NonPositiveDeclines(t *testing.T) {
	s, _, delayed, _ := newTestScheduler()

	if err := s.Start(0); !errors.Is(err, ErrNonPositiveDuration) {
		t.Errorf("Start(0) = %v, expected ErrNonPositiveDuration", err)
	}
	if err := s.Start(-time.Second); !errors.Is(err, ErrNonPositiveDuration) {
		t.Errorf("Start(-1s) = %v, expected ErrNonPositiveDuration", err)
	}
	if len(delayed.Timers()) != 0 {
		t.Error("declined Start scheduled a callback")
	}
	if s.Pending() {
		t.Error("Pending() = true after declined Start")
	}
}

func TestStart_NonPositiveLeavesPendingTimerUntouched(t *testing.T) {
	s, clock, _, _ := newTestScheduler()

	if err := s.Start(10 * time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.Advance(time.Minute)

	if err := s.Start(0); err == nil {
		t.Fatal("Start(0) did not decline")
	}

	left, ok := s.Remaining()
	if !ok {
		t.Fatal("pending timer lost after declined Start")
	}
	if left != 9*time.Minute {
		t.Errorf("Remaining() = %v, expected 9m", left)
	}
}

func TestRemaining(t *testing.T) {
	s, clock, _, _ := newTestScheduler()

	if _, ok := s.Remaining(); ok {
		t.Error("Remaining() reported a value while idle")
	}

	if err := s.Start(time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	left, ok := s.Remaining()
	if !ok || left != time.Minute {
		t.Errorf("Remaining() = %v, %v; expected 1m, true", left, ok)
	}

	clock.Advance(40 * time.Second)
	left, _ = s.Remaining()
	if left != 20*time.Second {
		t.Errorf("after 40s, Remaining() = %v, expected 20s", left)
	}

	// Past due but not yet fired: clamped to zero, never negative.
	clock.Advance(time.Minute)
	left, ok = s.Remaining()
	if !ok || left != 0 {
		t.Errorf("past due, Remaining() = %v, %v; expected 0, true", left, ok)
	}
}

func TestFire_Notifies(t *testing.T) {
	s, _, delayed, notifier := newTestScheduler()

	if err := s.Start(2*time.Hour + 5*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delayed.Last().Fire()

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].Title != "Timer" {
		t.Errorf("title = %q, expected \"Timer\"", sent[0].Title)
	}
	if !strings.Contains(sent[0].Body, "2h 5m") {
		t.Errorf("body %q does not mention the original duration", sent[0].Body)
	}
	if s.Pending() {
		t.Error("Pending() = true after fire")
	}
	if _, ok := s.Remaining(); ok {
		t.Error("Remaining() reported a value after fire")
	}
}

func TestStart_SupersedesPending(t *testing.T) {
	s, _, delayed, notifier := newTestScheduler()

	if err := s.Start(time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := delayed.Last()

	if err := s.Start(time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The superseded handle was disposed.
	if first.Stop() {
		t.Error("superseded handle was still active")
	}

	// Even if its callback was already in flight, the generation check
	// suppresses it.
	first.FireEvenIfStopped()
	if len(notifier.Sent()) != 0 {
		t.Error("superseded timer produced a notification")
	}

	// The replacement still fires normally.
	delayed.Last().Fire()
	if len(notifier.Sent()) != 1 {
		t.Errorf("expected 1 notification from replacement, got %d", len(notifier.Sent()))
	}
}

func TestCancel_SuppressesInFlightFire(t *testing.T) {
	s, _, delayed, notifier := newTestScheduler()

	if err := s.Start(time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	timer := delayed.Last()

	s.Cancel()
	timer.FireEvenIfStopped()

	if len(notifier.Sent()) != 0 {
		t.Error("cancelled timer produced a notification")
	}
	if s.Pending() {
		t.Error("Pending() = true after Cancel")
	}
}

func TestCancel_Idempotent(t *testing.T) {
	s, _, _, _ := newTestScheduler()

	// Nothing pending: still a clean no-op.
	s.Cancel()
	s.Cancel()

	if err := s.Start(time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Cancel()
	s.Cancel()

	if s.Pending() {
		t.Error("Pending() = true after Cancel")
	}
}

func TestFire_NotifierErrorSwallowed(t *testing.T) {
	clock := core.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	delayed := core.NewManualScheduler()
	notifier := &core.RecordingNotifier{Err: errors.New("sink unavailable")}
	out := &core.MockWriter{}

	s := NewScheduler(clock, delayed, notifier)
	s.Debug = core.NewDebugLogger(out)

	if err := s.Start(time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delayed.Last().Fire() // must not panic or propagate

	if !strings.Contains(out.String(), "notification failed") {
		t.Errorf("debug log missing failure entry, got %q", out.String())
	}

	// Scheduler remains usable.
	if err := s.Start(time.Second); err != nil {
		t.Errorf("Start after notify failure: %v", err)
	}
}

func TestSetTitle(t *testing.T) {
	s, _, delayed, notifier := newTestScheduler()
	s.SetTitle("Kitchen Timer")
	s.SetTitle("") // ignored

	if err := s.Start(time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delayed.Last().Fire()

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].Title != "Kitchen Timer" {
		t.Errorf("title = %q, expected \"Kitchen Timer\"", sent[0].Title)
	}
}

func TestFire_RealSchedulerEndToEnd(t *testing.T) {
	notifier := &core.RecordingNotifier{}
	s := NewScheduler(core.RealClock{}, core.RealScheduler{}, notifier)

	if err := s.Start(10 * time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for len(notifier.Sent()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("countdown did not fire within 1s")
		}
		time.Sleep(time.Millisecond)
	}

	if s.Pending() {
		t.Error("Pending() = true after fire")
	}
}

func TestConcurrentStartCancel(t *testing.T) {
	s, _, delayed, _ := newTestScheduler()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch (n + j) % 3 {
				case 0:
					_ = s.Start(time.Duration(j+1) * time.Second)
				case 1:
					s.Cancel()
				case 2:
					s.Remaining()
				}
			}
		}(i)
	}
	wg.Wait()

	// Fire everything that was ever scheduled; at most the current
	// generation may notify, and state must stay consistent.
	for _, timer := range delayed.Timers() {
		timer.FireEvenIfStopped()
	}

	if s.Pending() {
		if _, ok := s.Remaining(); !ok {
			t.Error("Pending() true but Remaining() reports idle")
		}
	}
	if err := s.Start(time.Second); err != nil {
		t.Errorf("scheduler unusable after concurrent hammering: %v", err)
	}
}
