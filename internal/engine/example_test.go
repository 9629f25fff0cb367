package engine_test

import (
	"fmt"
	"time"

	"tempo/internal/core"
	"tempo/internal/countdown"
	"tempo/internal/engine"
	"tempo/internal/stopwatch"
)

func ExampleEngine_SuggestTimer() {
	clock := core.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := countdown.NewScheduler(clock, core.NewManualScheduler(), &core.RecordingNotifier{})
	s := stopwatch.New(clock)
	eng := engine.New(c, s, engine.DefaultScores())

	// A running timer makes every query also suggest cancelling it.
	eng.Execute(engine.Action{Kind: engine.StartTimer, Duration: 10 * time.Minute})
	clock.Advance(time.Minute)

	for _, sg := range eng.SuggestTimer("2h 5m") {
		fmt.Printf("%s - %s\n", sg.Label, sg.Detail)
	}
	// Output:
	// Start timer - Countdown for 2h 5m
	// Cancel timer - 9:00 remaining
}
