// Package event defines the immutable LoggingEvent record produced by every
// supervisor log call, along with its JSON wire encoding.
package event

import (
	"time"

	"github.com/stepflow/runtime/effectuation"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// LoggingEvent is an immutable record of a single log call. The
// EffectuationStack field is always a by-value snapshot taken at emit time —
// it must never alias the live supervisor stack, since the supervisor keeps
// mutating that stack after the event is constructed.
type LoggingEvent struct {
	MessageID         string
	Severity          severity.Severity
	ExecutionLevel    int
	ProcessID         string
	ApplicationName   string
	Fact              message.Text
	Solution          message.Text
	ItemInfo          *ItemInfo
	ItemPositionInfo  *ItemPositionInfo
	EffectuationStack []effectuation.Effectuation
	Timestamp         time.Time
}

// New constructs a LoggingEvent, snapshotting stack by value so later
// mutation of the caller's slice cannot leak back into the event.
func New(
	sev severity.Severity,
	applicationName string,
	fact message.Text,
	solution message.Text,
	stack []effectuation.Effectuation,
	now time.Time,
) LoggingEvent {
	snapshot := make([]effectuation.Effectuation, len(stack))
	copy(snapshot, stack)

	return LoggingEvent{
		Severity:          sev,
		ExecutionLevel:    len(snapshot),
		ApplicationName:   applicationName,
		Fact:              fact,
		Solution:          solution,
		EffectuationStack: snapshot,
		Timestamp:         now,
	}
}

// WithSeverity returns a copy of the event with its severity replaced. Used
// by appease rewriting: the crash sink keeps the original event, the main
// sink receives this rewritten copy.
func (e LoggingEvent) WithSeverity(s severity.Severity) LoggingEvent {
	e.Severity = s
	return e
}

// StepPath returns the encoded frames of the effectuation stack, outermost
// first; the human-readable log line joins them into the "a / b / c" form.
func (e LoggingEvent) StepPath() []string {
	path := make([]string, len(e.EffectuationStack))
	for i, fr := range e.EffectuationStack {
		path[i] = fr.Encode()
	}
	return path
}
