// Package notify provides notification sinks: a line-oriented writer, an
// HTTP webhook, a rate-capped wrapper, and a fan-out.
package notify

import (
	"fmt"
	"io"
	"sync"

	"tempo/internal/core"
)

// Writer prints notifications as single lines. Safe for concurrent use.
type Writer struct {
	out io.Writer
	mu  sync.Mutex
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Notify(n core.Notification) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintf(w.out, "\033[K*** %s: %s\n", n.Title, n.Body)
	return err
}
