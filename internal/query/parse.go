// Package query turns free text into timer/stopwatch commands. Three
// duration forms are recognized: colon-separated clock notation, unit
// tokens, and a bare number of minutes. Leading keywords select an action
// directly, bypassing duration parsing.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Keyword is an action selected by a leading token.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordCancel
	KeywordStart
	KeywordStop
	KeywordReset
)

var timerKeywords = map[string]Keyword{
	"cancel": KeywordCancel,
	"stop":   KeywordCancel,
}

var stopwatchKeywords = map[string]Keyword{
	"start": KeywordStart,
	"stop":  KeywordStop,
	"pause": KeywordStop,
	"reset": KeywordReset,
	"clear": KeywordReset,
}

// TimerKeyword matches the leading token of text against the timer
// vocabulary (cancel, stop).
func TimerKeyword(text string) (Keyword, bool) {
	return leadingKeyword(text, timerKeywords)
}

// StopwatchKeyword matches the leading token of text against the
// stopwatch vocabulary (start, stop, pause, reset, clear).
func StopwatchKeyword(text string) (Keyword, bool) {
	return leadingKeyword(text, stopwatchKeywords)
}

func leadingKeyword(text string, vocab map[string]Keyword) (Keyword, bool) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return KeywordNone, false
	}
	k, ok := vocab[fields[0]]
	return k, ok
}

// ParseDuration interprets text as a duration. Clock notation ("1:30",
// "1:05:00") and unit tokens ("2h 5m") are exact; a bare number is whole
// or fractional minutes. Unit-token input must be consumed entirely:
// "2h 5m extra" fails. Zero is a valid parse; callers decide whether to
// act on it.
func ParseDuration(text string) (time.Duration, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.Contains(trimmed, ":") {
		return parseClock(trimmed)
	}
	if d, err := parseUnits(trimmed); err == nil {
		return d, nil
	}
	return parseMinutes(trimmed)
}

// parseClock handles MM:SS (two fields) and H:MM:SS (three fields).
// Fields after the first must be two digits at most and below 60.
func parseClock(text string) (time.Duration, error) {
	fields := strings.Split(text, ":")
	if len(fields) != 2 && len(fields) != 3 {
		return 0, fmt.Errorf("clock duration %q: expected MM:SS or H:MM:SS", text)
	}

	values := make([]int, len(fields))
	for i, f := range fields {
		if f == "" {
			return 0, fmt.Errorf("clock duration %q: empty field", text)
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("clock duration %q: bad field %q", text, f)
		}
		if i > 0 && (n > 59 || len(f) > 2) {
			return 0, fmt.Errorf("clock duration %q: field %q out of range", text, f)
		}
		values[i] = n
	}

	if len(fields) == 2 {
		return time.Duration(values[0])*time.Minute + time.Duration(values[1])*time.Second, nil
	}
	return time.Duration(values[0])*time.Hour +
		time.Duration(values[1])*time.Minute +
		time.Duration(values[2])*time.Second, nil
}

// parseUnits scans <integer><unit> tokens, case-insensitive and
// order-independent, summing them. The whole input must be consumed.
func parseUnits(text string) (time.Duration, error) {
	s := strings.ToLower(text)
	var total time.Duration
	tokens := 0
	i := 0

	for i < len(s) {
		if unicode.IsSpace(rune(s[i])) {
			i++
			continue
		}

		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return 0, fmt.Errorf("unit duration %q: expected digit at offset %d", text, i)
		}
		n, err := strconv.Atoi(s[start:i])
		if err != nil {
			return 0, fmt.Errorf("unit duration %q: %v", text, err)
		}

		start = i
		for i < len(s) && s[i] >= 'a' && s[i] <= 'z' {
			i++
		}
		unit, ok := unitValues[s[start:i]]
		if !ok {
			return 0, fmt.Errorf("unit duration %q: unknown unit %q", text, s[start:i])
		}

		total += time.Duration(n) * unit
		tokens++
	}

	if tokens == 0 {
		return 0, fmt.Errorf("unit duration %q: no tokens", text)
	}
	return total, nil
}

var unitValues = map[string]time.Duration{
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour,
	"hour": time.Hour, "hours": time.Hour,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,
	"s": time.Second, "sec": time.Second, "secs": time.Second,
	"second": time.Second, "seconds": time.Second,
}

// parseMinutes handles a bare number, whole or fractional, as minutes.
func parseMinutes(text string) (time.Duration, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("duration %q: not a number", text)
	}
	if f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("duration %q: out of range", text)
	}
	return time.Duration(f * float64(time.Minute)), nil
}
