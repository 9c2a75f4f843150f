package logger

import "github.com/stepflow/runtime/event"

// MultiLogger fans every event out to an ordered list of children, nils
// filtered out at construction so callers can pass conditionally-built
// sinks without checking for nil themselves.
type MultiLogger struct {
	children []Logger
}

// NewMultiLogger returns a MultiLogger over the given children, in order.
func NewMultiLogger(children ...Logger) *MultiLogger {
	kept := make([]Logger, 0, len(children))
	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &MultiLogger{children: kept}
}

func (m *MultiLogger) Log(e event.LoggingEvent) {
	for _, c := range m.children {
		c.Log(e)
	}
}

// Close closes every child in order and returns the first error
// encountered, after attempting to close every one of them regardless.
func (m *MultiLogger) Close() error {
	var first error
	for _, c := range m.children {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
