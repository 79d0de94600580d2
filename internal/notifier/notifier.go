// Package notifier delivers alerts to the places a user might see them.
package notifier

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/julianstephens/pulse/internal/logger"
)

// Sink receives fired alerts. Implementations must be safe for concurrent use.
type Sink interface {
	Notify(title, body string) error
}

// Func adapts a function to a Sink.
type Func func(title, body string) error

func (f Func) Notify(title, body string) error { return f(title, body) }

// Multi fans an alert out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Notify(title, body string) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink records alerts in the application log. It never fails.
type LogSink struct{}

func (LogSink) Notify(title, body string) error {
	logger.Info("Alert", "title", title, "body", body)
	return nil
}

// Writer prints alerts as timestamped lines, for foreground commands.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, now: time.Now}
}

func (w *Writer) Notify(title, body string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	line := fmt.Sprintf("[%s] %s", w.now().Format("15:04"), title)
	if body != "" {
		line += " - " + body
	}
	_, err := fmt.Fprintln(w.w, line)
	return err
}
