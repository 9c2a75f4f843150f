// Package logger implements the pluggable sink pipeline that an execution
// supervisor routes every LoggingEvent through: fan-out, prefixing,
// severity filtering, background-threaded, synchronous crash, file, the
// standard streams, an HTTP/Connect POST sink, and an in-memory collector.
package logger

import (
	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/severity"
)

// Logger is the sink contract every concrete logger in this package
// implements. Log is fire-and-forget unless the concrete sink documents
// otherwise (the crash logger blocks). Close is idempotent and must ensure
// every event delivered before it returns has been fully processed.
type Logger interface {
	Log(e event.LoggingEvent)
	Close() error
}

// Filter is implemented by sinks that apply a severity threshold. Progress
// events are opt-in independently of MinSeverity.
type Filter interface {
	MinSeverity() severity.Severity
	LogProgress() bool
}
