// Package core defines the boundary interfaces shared by the timer and
// stopwatch subsystems: the clock, the delayed-execution scheduler, and
// the notification sink.
package core

import "time"

// Notification is a title/body pair handed to a Notifier.
type Notification struct {
	Title string
	Body  string
}

// Notifier delivers a notification. Implementations may fail; callers at
// the scheduling boundary swallow those failures.
type Notifier interface {
	Notify(n Notification) error
}

// TimerHandle is a stoppable one-shot timer. Stop reports whether it
// prevented the callback from running; stopping an already-fired or
// already-stopped handle is a safe no-op.
type TimerHandle interface {
	Stop() bool
}

// Scheduler schedules a callback to run once after a delay. The callback
// may run on any goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) TimerHandle
}

// RealScheduler schedules with the standard time package.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) TimerHandle {
	return time.AfterFunc(d, f)
}
