package logger

import (
	"sync"

	"github.com/stepflow/runtime/event"
)

// CollectingLogger appends every event to an in-memory slice. It is used in
// tests in place of a real sink, and doubles as the Connect test double
// (see NewConnectTestHandler) for exercising ConnectSink without a network
// listener.
type CollectingLogger struct {
	mu     sync.Mutex
	events []event.LoggingEvent
}

// NewCollectingLogger returns an empty CollectingLogger.
func NewCollectingLogger() *CollectingLogger {
	return &CollectingLogger{}
}

func (c *CollectingLogger) Log(e event.LoggingEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *CollectingLogger) Close() error { return nil }

// Events returns a defensive copy of the events collected so far.
func (c *CollectingLogger) Events() []event.LoggingEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]event.LoggingEvent, len(c.events))
	copy(out, c.events)
	return out
}
