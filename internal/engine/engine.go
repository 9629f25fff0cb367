// Package engine maps parsed queries onto the countdown and stopwatch
// subsystems and produces ranked, executable suggestions.
package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"tempo/internal/countdown"
	"tempo/internal/format"
	"tempo/internal/query"
	"tempo/internal/stopwatch"
)

// ActionKind identifies one of the five operations the engine can execute.
type ActionKind int

const (
	StartTimer ActionKind = iota
	CancelTimer
	StartStopwatch
	StopStopwatch
	ResetStopwatch
)

func (k ActionKind) String() string {
	switch k {
	case StartTimer:
		return "start-timer"
	case CancelTimer:
		return "cancel-timer"
	case StartStopwatch:
		return "start-stopwatch"
	case StopStopwatch:
		return "stop-stopwatch"
	case ResetStopwatch:
		return "reset-stopwatch"
	}
	return "unknown"
}

// Action is an executable command. Duration is meaningful only for
// StartTimer.
type Action struct {
	Kind     ActionKind
	Duration time.Duration
}

// Suggestion is a ranked candidate action for a query. Higher Score is
// more relevant; equal scores keep insertion order.
type Suggestion struct {
	Label  string
	Detail string
	Action Action
	Score  int
}

// Scores assigns relevance to each suggestion family.
type Scores struct {
	StartTimer       int
	CancelTimer      int
	StopwatchControl int
	Reset            int
}

// DefaultScores ranks direct matches above the standing cancel/reset
// extras.
func DefaultScores() Scores {
	return Scores{
		StartTimer:       100,
		CancelTimer:      90,
		StopwatchControl: 100,
		Reset:            80,
	}
}

// Engine owns one countdown scheduler and one stopwatch and exposes the
// command-dispatch surface over both.
type Engine struct {
	countdown *countdown.Scheduler
	stopwatch *stopwatch.Stopwatch

	mu     sync.Mutex
	scores Scores
}

func New(c *countdown.Scheduler, s *stopwatch.Stopwatch, scores Scores) *Engine {
	return &Engine{countdown: c, stopwatch: s, scores: scores}
}

// SetScores replaces the relevance scores, e.g. on config reload.
func (e *Engine) SetScores(scores Scores) {
	e.mu.Lock()
	e.scores = scores
	e.mu.Unlock()
}

func (e *Engine) currentScores() Scores {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scores
}

// Countdown exposes the owned scheduler for status readers.
func (e *Engine) Countdown() *countdown.Scheduler { return e.countdown }

// Stopwatch exposes the owned accumulator for status readers.
func (e *Engine) Stopwatch() *stopwatch.Stopwatch { return e.stopwatch }

// SuggestTimer interprets text in the timer context. A parsable positive
// duration yields a start suggestion; the cancel vocabulary yields a
// cancel suggestion; a pending countdown always adds a cancel suggestion
// labeled with the live remaining time.
func (e *Engine) SuggestTimer(text string) []Suggestion {
	scores := e.currentScores()
	var suggestions []Suggestion

	if _, ok := query.TimerKeyword(text); ok {
		if left, pending := e.countdown.Remaining(); pending {
			suggestions = append(suggestions, cancelSuggestion(left, scores.CancelTimer))
		}
	} else if d, err := query.ParseDuration(text); err == nil && d > 0 {
		suggestions = append(suggestions, Suggestion{
			Label:  "Start timer",
			Detail: fmt.Sprintf("Countdown for %s", format.Human(d)),
			Action: Action{Kind: StartTimer, Duration: d},
			Score:  scores.StartTimer,
		})
	}

	// A pending timer is always cancellable, whatever the query said.
	if left, pending := e.countdown.Remaining(); pending && !containsKind(suggestions, CancelTimer) {
		suggestions = append(suggestions, cancelSuggestion(left, scores.CancelTimer))
	}

	return rank(suggestions)
}

// SuggestStopwatch interprets text in the stopwatch context. The control
// vocabulary yields the matching action; a non-zero elapsed value always
// adds a reset suggestion labeled with the live elapsed time.
func (e *Engine) SuggestStopwatch(text string) []Suggestion {
	scores := e.currentScores()
	var suggestions []Suggestion

	if k, ok := query.StopwatchKeyword(text); ok {
		switch k {
		case query.KeywordStart:
			suggestions = append(suggestions, Suggestion{
				Label:  "Start stopwatch",
				Detail: "Begin accumulating elapsed time",
				Action: Action{Kind: StartStopwatch},
				Score:  scores.StopwatchControl,
			})
		case query.KeywordStop:
			suggestions = append(suggestions, Suggestion{
				Label:  "Stop stopwatch",
				Detail: fmt.Sprintf("Hold at %s", format.Stopwatch(e.stopwatch.Elapsed())),
				Action: Action{Kind: StopStopwatch},
				Score:  scores.StopwatchControl,
			})
		case query.KeywordReset:
			suggestions = append(suggestions, Suggestion{
				Label:  "Reset stopwatch",
				Detail: "Back to zero",
				Action: Action{Kind: ResetStopwatch},
				Score:  scores.StopwatchControl,
			})
		}
	}

	if elapsed := e.stopwatch.Elapsed(); elapsed > 0 && !containsKind(suggestions, ResetStopwatch) {
		suggestions = append(suggestions, Suggestion{
			Label:  "Reset stopwatch",
			Detail: fmt.Sprintf("Discard %s", format.Stopwatch(elapsed)),
			Action: Action{Kind: ResetStopwatch},
			Score:  scores.Reset,
		})
	}

	return rank(suggestions)
}

// Execute performs an action against the owned subsystems.
func (e *Engine) Execute(a Action) error {
	switch a.Kind {
	case StartTimer:
		return e.countdown.Start(a.Duration)
	case CancelTimer:
		e.countdown.Cancel()
		return nil
	case StartStopwatch:
		e.stopwatch.Start()
		return nil
	case StopStopwatch:
		e.stopwatch.Stop()
		return nil
	case ResetStopwatch:
		e.stopwatch.Reset()
		return nil
	}
	return fmt.Errorf("unknown action kind %d", a.Kind)
}

func cancelSuggestion(left time.Duration, score int) Suggestion {
	return Suggestion{
		Label:  "Cancel timer",
		Detail: fmt.Sprintf("%s remaining", format.Clock(left)),
		Action: Action{Kind: CancelTimer},
		Score:  score,
	}
}

func containsKind(suggestions []Suggestion, kind ActionKind) bool {
	for _, s := range suggestions {
		if s.Action.Kind == kind {
			return true
		}
	}
	return false
}

// rank orders by descending score, keeping insertion order on ties.
func rank(suggestions []Suggestion) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions
}
