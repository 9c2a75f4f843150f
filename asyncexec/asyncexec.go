// Package asyncexec mirrors execution.Execution's operators for bodies that
// may suspend. It is a thin, context.Context-aware wrapper: every operator
// runs on whatever goroutine calls it, spawns nothing, and mutates the same
// underlying supervisor state as the synchronous family. Concurrent use of
// the same Async from more than one goroutine is not supported — obtain a
// sibling through execution.Execution.Parallel instead.
package asyncexec

import (
	"context"
	"fmt"

	"github.com/stepflow/runtime/effectuation"
	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/execution"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// Body is the suspension-aware step body shape: a function that may block
// on ctx and returns a value or an error.
type Body func(ctx context.Context) (any, error)

// Async holds a non-owning back-reference to the supervisor it mirrors. It
// must not outlive that supervisor.
type Async struct {
	parent *execution.Execution
}

// New wraps parent as its async mirror.
func New(parent *execution.Execution) *Async {
	return &Async{parent: parent}
}

// AwaitPauseGate blocks until the supervisor's pause gate is open, or ctx is
// canceled. Async step entries do not call this automatically — the
// synchronous pause/proceed checkpoint is observed only by Execution's own
// Effectuate. A host that wants async bodies to honor pause must call this
// explicitly.
func (a *Async) AwaitPauseGate(ctx context.Context) error {
	return a.parent.AwaitPauseGate(ctx)
}

// Effectuate is the async mirror of Execution.Effectuate: dedup, force, and
// the stopped propagation rule all apply identically. Entry goes through
// EffectuateUngated, so the pause gate is not observed and a suspended body
// can never be wedged behind it (see AwaitPauseGate).
func (a *Async) Effectuate(ctx context.Context, step effectuation.StepID, body Body) (any, error) {
	var bodyErr error
	result := a.parent.EffectuateUngated(step, func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// Force is the async mirror of Execution.Force.
func (a *Async) Force(ctx context.Context, body Body) (any, error) {
	var bodyErr error
	result := a.parent.Force(func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// InheritForced is the async mirror of Execution.InheritForced.
func (a *Async) InheritForced(ctx context.Context, body Body) (any, error) {
	var bodyErr error
	result := a.parent.InheritForced(func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// Disremember is the async mirror of Execution.Disremember.
func (a *Async) Disremember(ctx context.Context, body Body) (any, error) {
	var bodyErr error
	result := a.parent.Disremember(func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// Optional is the async mirror of Execution.Optional.
func (a *Async) Optional(ctx context.Context, name string, body Body) (any, error) {
	var bodyErr error
	result := a.parent.Optional(name, func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// Dispensable is the async mirror of Execution.Dispensable.
func (a *Async) Dispensable(ctx context.Context, name string, body Body) (any, error) {
	var bodyErr error
	result := a.parent.Dispensable(name, func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// DispensableIsActive is the async mirror of Execution.DispensableIsActive;
// it runs no body so there is nothing to make suspension-aware, but it is
// exposed here so async callers never need to reach back into the
// synchronous supervisor directly.
func (a *Async) DispensableIsActive(name string) bool {
	return a.parent.DispensableIsActive(name)
}

// Doing is the async mirror of Execution.Doing.
func (a *Async) Doing(ctx context.Context, description string, body Body) (any, error) {
	var bodyErr error
	result := a.parent.Doing(description, func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// Appease is the async mirror of Execution.Appease.
func (a *Async) Appease(ctx context.Context, sev severity.Severity, body Body) (any, error) {
	var bodyErr error
	result := a.parent.Appease(sev, func() any {
		v, err := body(ctx)
		bodyErr = err
		return v
	})
	return result, bodyErr
}

// Log mirrors Execution.Log; logging itself never suspends.
func (a *Async) Log(msg message.Message, args ...any) {
	a.parent.Log(msg, args...)
}

// LogItem mirrors Execution.LogItem.
func (a *Async) LogItem(msg message.Message, pos *event.ItemPositionInfo, addCrashInfo bool, args ...any) {
	a.parent.LogItem(msg, pos, addCrashInfo, args...)
}

// Stopped mirrors Execution.Stopped.
func (a *Async) Stopped() bool { return a.parent.Stopped() }

// String is for debug logging of the wrapped supervisor's identity.
func (a *Async) String() string {
	return fmt.Sprintf("asyncexec.Async(%s)", a.parent.ApplicationName())
}
