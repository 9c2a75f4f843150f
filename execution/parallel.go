package execution

import "github.com/stepflow/runtime/effectuation"

// Parallel forks a sibling supervisor sharing this one's logger, crash
// logger, worst-severity accumulator, application name, process id, and
// item info, with a snapshot of the current effectuation stack. The sibling
// has its own empty dedup set, its own force/appease stacks, and its own
// pause gate, so it is independently usable from another goroutine.
func (e *Execution) Parallel() *Execution {
	sibling := &Execution{
		applicationName:    e.applicationName,
		processID:          e.processID,
		itemInfo:           e.itemInfo,
		logFileInfo:        e.logFileInfo,
		mainLogger:         e.mainLogger,
		crashLogger:        e.crashLogger,
		executedSteps:      make(map[effectuation.StepID]struct{}),
		effectuationStack:  e.EffectuationStack(),
		activatedOptions:   e.activatedOptions,
		dispensedWith:      e.dispensedWith,
		worstSeverity:      e.worstSeverity,
		pauseGate:          make(chan struct{}, 1),
		attached:           make(map[string]any),
		alwaysAddCrashInfo: e.alwaysAddCrashInfo,
		debugMode:          e.debugMode,
		now:                e.now,
	}
	sibling.pauseGate <- struct{}{}
	return sibling
}
