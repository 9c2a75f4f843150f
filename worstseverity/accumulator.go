// Package worstseverity implements the thread-safe, monotonically
// non-decreasing "worst severity observed" summary shared by an execution
// supervisor and any of its parallel siblings.
package worstseverity

import (
	"sync"

	"github.com/stepflow/runtime/severity"
)

// Accumulator tracks the highest severity.Severity observed so far. The zero
// value is not ready for use; call New.
type Accumulator struct {
	mu    sync.Mutex
	worst severity.Severity
}

// New creates an Accumulator starting at severity.Info, per the execution
// supervisor's initial state.
func New() *Accumulator {
	return &Accumulator{worst: severity.Info}
}

// Update merges s into the accumulator: the stored value becomes
// max(current, s) under severity ordering. Returns the resulting worst
// severity.
func (a *Accumulator) Update(s severity.Severity) severity.Severity {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s > a.worst {
		a.worst = s
	}
	return a.worst
}

// Worst returns the current worst severity.
func (a *Accumulator) Worst() severity.Severity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.worst
}

// Stopped reports whether the accumulated worst severity has reached the
// stop threshold (severity.Fatal or above).
func (a *Accumulator) Stopped() bool {
	return a.Worst().StopsExecution()
}
