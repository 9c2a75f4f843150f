package execution

import (
	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// Log composes a LoggingEvent from msg and args using the current supervisor
// context, routes it through appease rewriting and the logger pipeline, and
// updates the worst-severity accumulator.
func (e *Execution) Log(msg message.Message, args ...any) {
	e.emit(msg, nil, false, args...)
}

// LogItem is Log with an item-position annotation and an explicit
// addCrashInfo flag, for events emitted while iterating a batch.
func (e *Execution) LogItem(msg message.Message, pos *event.ItemPositionInfo, addCrashInfo bool, args ...any) {
	e.emit(msg, pos, addCrashInfo, args...)
}

func (e *Execution) emit(msg message.Message, pos *event.ItemPositionInfo, addCrashInfo bool, args ...any) {
	fact := msg.Fact.FormatAll(args...)
	var solution message.Text
	if msg.Solution != nil {
		solution = msg.Solution.FormatAll(args...)
	}

	ev := event.New(msg.Severity, e.applicationName, fact, solution, e.effectuationStack, e.now())
	ev.MessageID = msg.ID
	ev.ProcessID = e.processID
	ev.ItemInfo = e.itemInfo
	ev.ItemPositionInfo = pos

	e.deliver(ev, addCrashInfo)
}

// logProgress emits an English-only Progress event using the internal
// fixed-text progress line conventions.
func (e *Execution) logProgress(text string) {
	e.emitInternal(severity.Progress, text)
}

// logDebug emits an English-only Debug event.
func (e *Execution) logDebug(text string) {
	e.emitInternal(severity.Debug, text)
}

func (e *Execution) emitInternal(sev severity.Severity, text string) {
	ev := event.New(sev, e.applicationName, message.Text{message.English: text}, nil, e.effectuationStack, e.now())
	ev.ProcessID = e.processID
	ev.ItemInfo = e.itemInfo

	e.deliver(ev, false)
}

// deliver sends ev to the crash logger (original severity) when requested,
// then to the main logger (appease-rewritten severity), then folds the
// delivered severity into the worst-severity accumulator.
func (e *Execution) deliver(ev event.LoggingEvent, addCrashInfo bool) {
	if (addCrashInfo || e.alwaysAddCrashInfo) && e.crashLogger != nil {
		e.crashLogger.Log(ev)
	}

	delivered := ev
	if len(e.appeaseStack) > 0 {
		if capSeverity := e.appeaseStack[len(e.appeaseStack)-1]; delivered.Severity > capSeverity {
			delivered = delivered.WithSeverity(capSeverity)
		}
	}

	e.mainLogger.Log(delivered)
	e.worstSeverity.Update(delivered.Severity)
}

// UpdateWorstSeverity monotonically merges s into the shared accumulator,
// capped by the innermost active appease frame, and returns the resulting
// worst severity.
func (e *Execution) UpdateWorstSeverity(s severity.Severity) severity.Severity {
	if len(e.appeaseStack) > 0 {
		if capSeverity := e.appeaseStack[len(e.appeaseStack)-1]; s > capSeverity {
			s = capSeverity
		}
	}
	return e.worstSeverity.Update(s)
}

// WorstSeverity returns the current worst severity observed by this
// execution (and any siblings sharing its accumulator).
func (e *Execution) WorstSeverity() severity.Severity {
	return e.worstSeverity.Worst()
}
