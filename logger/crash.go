package logger

import (
	"sync"

	"github.com/stepflow/runtime/event"
)

// CrashLogger runs action synchronously on the calling goroutine, so that
// by the time Log returns, the event is guaranteed to have been written.
// It exists for the one event the supervisor must not lose even if the
// process terminates abnormally immediately afterward.
type CrashLogger struct {
	mu      sync.Mutex
	closed  bool
	action  func(event.LoggingEvent)
	onClose func() error
}

// NewCrashLogger wraps action (typically a synced file write) as a
// CrashLogger. onClose may be nil.
func NewCrashLogger(action func(event.LoggingEvent), onClose func() error) *CrashLogger {
	return &CrashLogger{action: action, onClose: onClose}
}

func (c *CrashLogger) Log(e event.LoggingEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.action(e)
}

func (c *CrashLogger) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.onClose != nil {
		return c.onClose()
	}
	return nil
}
