package logger

import "github.com/stepflow/runtime/severity"

// Accept reports whether a sink with the given Filter should process an
// event of the given severity: Progress events are gated separately by
// LogProgress, every other severity by the MinSeverity threshold.
func Accept(f Filter, s severity.Severity) bool {
	if s == severity.Progress {
		return f.LogProgress()
	}
	return s >= f.MinSeverity()
}
