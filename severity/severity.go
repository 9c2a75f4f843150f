// Package severity defines the totally ordered severity taxonomy shared by
// the message catalog, logging events, and the execution supervisor's
// worst-severity accumulator.
package severity

import "log/slog"

// Severity is a totally ordered event level. Comparisons use the numeric
// value directly, so Severity values can be compared with <, <=, > and >=.
type Severity int

const (
	Debug Severity = iota
	Progress
	Info
	Iteration
	Warning
	Error
	Fatal
	Loss
	Deadly
)

// names holds the stable serialization names in declaration order.
var names = [...]string{
	"Debug",
	"Progress",
	"Info",
	"Iteration",
	"Warning",
	"Error",
	"Fatal",
	"Loss",
	"Deadly",
}

// String returns the stable name used for serialization.
func (s Severity) String() string {
	if s < Debug || s > Deadly {
		return "Unknown"
	}
	return names[s]
}

// Parse converts a stable name back to a Severity. Unknown names return
// (0, false).
func Parse(name string) (Severity, bool) {
	for i, n := range names {
		if n == name {
			return Severity(i), true
		}
	}
	return 0, false
}

// StopsExecution reports whether this severity, once reached by the
// worst-severity accumulator, flips the owning execution to stopped.
func (s Severity) StopsExecution() bool {
	return s >= Fatal
}

// SlogLevel maps the severity onto the nearest slog.Level, for hosts that
// want to mirror LoggingEvents into the ambient slog pipeline.
func (s Severity) SlogLevel() slog.Level {
	switch {
	case s <= Debug:
		return slog.LevelDebug
	case s <= Iteration:
		return slog.LevelInfo
	case s == Warning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// OTelSeverityNumber maps the severity onto an OpenTelemetry-compatible
// SeverityNumber (1-24 range), so hosts exporting events to an OTel
// collector do not need a second translation table.
func (s Severity) OTelSeverityNumber() int {
	switch s {
	case Debug:
		return 5
	case Progress, Info, Iteration:
		return 9
	case Warning:
		return 13
	case Error:
		return 17
	case Fatal:
		return 20
	case Loss:
		return 22
	case Deadly:
		return 24
	default:
		return 9
	}
}
