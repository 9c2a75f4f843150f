package execution

import (
	"fmt"

	"github.com/stepflow/runtime/effectuation"
	"github.com/stepflow/runtime/severity"
)

// Stopped reports whether this execution's worst severity has reached
// Fatal or above. Every subsequent Effectuate call becomes a no-op.
func (e *Execution) Stopped() bool { return e.worstSeverity.Stopped() }

func (e *Execution) topForced() bool {
	if len(e.forceStack) == 0 {
		return false
	}
	return e.forceStack[len(e.forceStack)-1]
}

// checkpoint waits on the pause gate and immediately releases it. Called on
// entry to every synchronous step body; async operators do not call it.
func (e *Execution) checkpoint() {
	<-e.pauseGate
	e.pauseGate <- struct{}{}
}

// Pause closes the single-slot gate: the next checkpoint (synchronous step
// entry) will block until Proceed is called.
func (e *Execution) Pause() {
	<-e.pauseGate
}

// Proceed reopens the gate. A no-op if it is already open.
func (e *Execution) Proceed() {
	select {
	case e.pauseGate <- struct{}{}:
	default:
	}
}

// Effectuate runs body as step, honoring dedup, force, and the stopped
// propagation rule. Returns nil without running body when the step is
// skipped. Entry waits on the pause gate (see Pause/Proceed).
func (e *Execution) Effectuate(step effectuation.StepID, body func() any) any {
	return e.effectuate(step, body, true)
}

// EffectuateUngated is Effectuate without the pause-gate checkpoint. The
// async mirror enters steps through it, so a suspension-aware body can
// never block on the gate without a ctx escape; async callers that want to
// honor Pause/Proceed opt in through AwaitPauseGate.
func (e *Execution) EffectuateUngated(step effectuation.StepID, body func() any) any {
	return e.effectuate(step, body, false)
}

func (e *Execution) effectuate(step effectuation.StepID, body func() any, gated bool) any {
	if e.Stopped() {
		e.logSkip(step)
		return nil
	}

	forced := e.topForced()
	if _, seen := e.executedSteps[step]; seen && !forced {
		if e.debugMode {
			e.logSkip(step)
		}
		return nil
	}

	e.operationCount++
	if e.beforeStepHook != nil && !e.beforeStepHook(e.operationCount, step) {
		e.operationCount--
		return nil
	}

	if gated {
		e.checkpoint()
	}
	e.logProgress(fmt.Sprintf(">> STEP %s", step))

	e.effectuationStack = append(e.effectuationStack, effectuation.Step(step))
	e.forceStack = append(e.forceStack, false)
	e.executedSteps[step] = struct{}{}
	start := e.now()

	completed := false
	defer func() {
		// Pop before emitting the close line, so DONE/ABORDED carries the
		// same stack snapshot as its matching open event.
		elapsed := e.now().Sub(start).Seconds()
		e.forceStack = e.forceStack[:len(e.forceStack)-1]
		e.effectuationStack = e.effectuationStack[:len(e.effectuationStack)-1]
		if completed {
			if e.Stopped() {
				e.logProgress(fmt.Sprintf("<< ABORDED STEP %s (duration: %.6f seconds)", step, elapsed))
			} else {
				e.logProgress(fmt.Sprintf("<< DONE STEP %s (duration: %.6f seconds)", step, elapsed))
			}
			if e.afterStepHook != nil && !e.afterStepHook(e.operationCount, step) {
				e.operationCount--
			}
		}
	}()

	result := body()
	completed = true
	return result
}

func (e *Execution) logSkip(step effectuation.StepID) {
	e.logDebug(fmt.Sprintf("skipping step %s", step))
}

// Force makes nested Effectuate calls bypass the dedup check for one level
// of nesting; it does not push a frame onto the effectuation stack.
func (e *Execution) Force(body func() any) any {
	e.forceStack = append(e.forceStack, true)
	defer func() { e.forceStack = e.forceStack[:len(e.forceStack)-1] }()
	return body()
}

// InheritForced pushes the current top of the force stack (false if empty)
// instead of unconditionally forcing, so a forced context propagates to
// grandchildren only when explicitly inherited.
func (e *Execution) InheritForced(body func() any) any {
	e.forceStack = append(e.forceStack, e.topForced())
	defer func() { e.forceStack = e.forceStack[:len(e.forceStack)-1] }()
	return body()
}

// Disremember snapshots the dedup set, runs body, then restores the
// snapshot: any steps that ran inside body are forgotten afterward.
func (e *Execution) Disremember(body func() any) any {
	snapshot := make(map[effectuation.StepID]struct{}, len(e.executedSteps))
	for k := range e.executedSteps {
		snapshot[k] = struct{}{}
	}
	defer func() { e.executedSteps = snapshot }()
	return body()
}

// framed pushes frame, runs body, and pops frame on every exit. closeMsg is
// logged only when body returns without panicking. Optional and dispensable
// parts log openMsg before the push and closeMsg after the pop, so both lines
// carry the enclosing stack; a described part logs both while its frame is
// on the stack.
func (e *Execution) framed(frame effectuation.Effectuation, openMsg, closeMsg string, body func() any) any {
	logInside := frame.Kind == effectuation.KindDescribedPart
	if !logInside {
		e.logProgress(openMsg)
	}
	e.effectuationStack = append(e.effectuationStack, frame)
	if logInside {
		e.logProgress(openMsg)
	}

	completed := false
	defer func() {
		if completed && logInside {
			e.logProgress(closeMsg)
		}
		e.effectuationStack = e.effectuationStack[:len(e.effectuationStack)-1]
		if completed && !logInside {
			e.logProgress(closeMsg)
		}
	}()

	result := body()
	completed = true
	return result
}

// Optional runs body only if name is activated and not dispensed with;
// dispensing always wins over activation.
func (e *Execution) Optional(name string, body func() any) any {
	_, activated := e.activatedOptions[name]
	_, dispensed := e.dispensedWith[name]

	if !activated || dispensed {
		e.logProgress(fmt.Sprintf("OPTIONAL PART %q NOT ACTIVATED", name))
		return nil
	}

	return e.framed(
		effectuation.OptionalPart(name),
		fmt.Sprintf(">> START OPTIONAL PART %q", name),
		fmt.Sprintf("<< DONE OPTIONAL PART %q", name),
		body,
	)
}

// Dispensable runs body unless name has been switched off.
func (e *Execution) Dispensable(name string, body func() any) any {
	if _, dispensed := e.dispensedWith[name]; dispensed {
		e.logProgress(fmt.Sprintf("DISPENSABLE PART %q NOT ACTIVATED", name))
		return nil
	}

	return e.framed(
		effectuation.DispensablePart(name),
		fmt.Sprintf(">> START DISPENSABLE PART %q", name),
		fmt.Sprintf("<< DONE DISPENSABLE PART %q", name),
		body,
	)
}

// DispensableIsActive reports whether name is currently switched on,
// emitting the same progress line Dispensable would, without running any
// body.
func (e *Execution) DispensableIsActive(name string) bool {
	if _, dispensed := e.dispensedWith[name]; dispensed {
		e.logProgress(fmt.Sprintf("DISPENSABLE PART %q NOT ACTIVATED", name))
		return false
	}
	e.logProgress(fmt.Sprintf("DISPENSABLE PART %q IS ACTIVE", name))
	return true
}

// Doing runs body inside a described-part frame, for ad hoc narration that
// doesn't warrant a full step identity.
func (e *Execution) Doing(description string, body func() any) any {
	return e.framed(
		effectuation.DescribedPart(description),
		fmt.Sprintf("START DOING %s", description),
		fmt.Sprintf("DONE DOING %s", description),
		body,
	)
}

// Appease runs body with every logged event's severity capped at sev on its
// way to the main logger; the crash logger always receives the original
// severity. Appeased severities never flip Stopped.
func (e *Execution) Appease(sev severity.Severity, body func() any) any {
	e.appeaseStack = append(e.appeaseStack, sev)
	defer func() { e.appeaseStack = e.appeaseStack[:len(e.appeaseStack)-1] }()
	return body()
}

// AppeaseDefault calls Appease with the default cap, severity.Error.
func (e *Execution) AppeaseDefault(body func() any) any {
	return e.Appease(severity.Error, body)
}
