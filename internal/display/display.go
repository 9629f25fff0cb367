// Package display renders a live status line for the stopwatch and any
// pending countdown, polling on a fixed cadence.
package display

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"tempo/internal/engine"
	"tempo/internal/format"
)

// Renderer polls the engine and rewrites a single status line.
type Renderer struct {
	engine  *engine.Engine
	refresh time.Duration
	ticker  *time.Ticker
	stopCh  chan struct{}
	stopped atomic.Bool
	quiet   bool
	output  io.Writer
	mu      sync.Mutex
}

func NewRenderer(e *engine.Engine, refresh time.Duration, quiet bool) *Renderer {
	return &Renderer{
		engine:  e,
		refresh: refresh,
		quiet:   quiet,
		output:  os.Stderr,
	}
}

func (r *Renderer) SetOutput(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output = w
}

func (r *Renderer) Start() {
	if r.quiet {
		return
	}
	r.stopCh = make(chan struct{})
	r.ticker = time.NewTicker(r.refresh)
	go r.run()
}

func (r *Renderer) run() {
	for {
		select {
		case <-r.stopCh:
			return
		case <-r.ticker.C:
			r.render()
		}
	}
}

func (r *Renderer) render() {
	line := r.StatusLine()
	r.mu.Lock()
	fmt.Fprintf(r.output, "\033[K%s\r", line)
	r.mu.Unlock()
}

// StatusLine formats the current state of both subsystems.
func (r *Renderer) StatusLine() string {
	sw := r.engine.Stopwatch()
	state := "stopped"
	if sw.IsRunning() {
		state = "running"
	}
	line := fmt.Sprintf("stopwatch %s (%s)", format.Stopwatch(sw.Elapsed()), state)

	if left, pending := r.engine.Countdown().Remaining(); pending {
		line += fmt.Sprintf(" | timer %s remaining", format.Clock(left))
	}
	return line
}

func (r *Renderer) Stop() {
	if r.quiet || r.stopped.Swap(true) {
		return
	}
	if r.ticker != nil {
		r.ticker.Stop()
	}
	if r.stopCh != nil {
		close(r.stopCh)
	}
	r.mu.Lock()
	fmt.Fprintf(r.output, "\033[K")
	r.mu.Unlock()
}

// Print writes a message above the status line.
func (r *Renderer) Print(message string) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	fmt.Fprintf(r.output, "\033[K%s\n", message)
	r.mu.Unlock()
}

func (r *Renderer) Printf(formatStr string, args ...any) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	fmt.Fprintf(r.output, "\033[K"+formatStr+"\n", args...)
	r.mu.Unlock()
}
