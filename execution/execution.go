// Package execution implements the supervisor that fences a tree of
// user-defined steps for a single work item: dedup by step identity,
// force/optional/dispensable/appease/disremember context stacks, and the
// routing of every log call through the logger pipeline and worst-severity
// accumulator.
package execution

import (
	"github.com/google/uuid"

	"github.com/stepflow/runtime/config"
	"github.com/stepflow/runtime/effectuation"
	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/internal/clock"
	"github.com/stepflow/runtime/logger"
	"github.com/stepflow/runtime/severity"
	"github.com/stepflow/runtime/worstseverity"
)

// StepHook is invoked around a step's actual execution (not around force,
// optional, dispensable, appease, disremember, or inheritForced). Returning
// false refuses the step and rolls back the operation counter.
type StepHook func(operationCount int, step effectuation.StepID) bool

// Execution supervises one work item: its step dedup set, its nested
// context stacks, and the logger pipeline every event routes through.
//
// An Execution is not safe for concurrent use by multiple goroutines,
// except for the operations it delegates to thread-safe collaborators
// (Stopped, WorstSeverity, Pause/Proceed). UpdateWorstSeverity reads the
// appease stack and belongs to the owning goroutine. Use Parallel to obtain a
// sibling supervisor for use from another goroutine.
type Execution struct {
	applicationName string
	processID       string
	itemInfo        *event.ItemInfo
	logFileInfo     string

	mainLogger  logger.Logger
	crashLogger logger.Logger

	executedSteps     map[effectuation.StepID]struct{}
	effectuationStack []effectuation.Effectuation
	forceStack        []bool
	appeaseStack      []severity.Severity

	activatedOptions map[string]struct{}
	dispensedWith    map[string]struct{}

	beforeStepHook StepHook
	afterStepHook  StepHook
	operationCount int

	worstSeverity *worstseverity.Accumulator
	pauseGate     chan struct{}

	attached map[string]any

	alwaysAddCrashInfo bool
	debugMode          bool

	now clock.Source
}

// Option configures an Execution after config-driven initialization.
type Option func(*Execution)

// WithCrashLogger attaches a synchronous crash sink.
func WithCrashLogger(l logger.Logger) Option {
	return func(e *Execution) { e.crashLogger = l }
}

// WithItemInfo attaches the work item's identity.
func WithItemInfo(info *event.ItemInfo) Option {
	return func(e *Execution) { e.itemInfo = info }
}

// WithLogFileInfo records where this execution's log file lives, for hosts
// that want to point users at it in out-of-band reporting.
func WithLogFileInfo(info string) Option {
	return func(e *Execution) { e.logFileInfo = info }
}

// WithActivatedOptions seeds the set of activated optional-part names.
func WithActivatedOptions(names ...string) Option {
	return func(e *Execution) {
		for _, n := range names {
			e.activatedOptions[n] = struct{}{}
		}
	}
}

// WithDispensedWith seeds the set of dispensable-part names switched off.
func WithDispensedWith(names ...string) Option {
	return func(e *Execution) {
		for _, n := range names {
			e.dispensedWith[n] = struct{}{}
		}
	}
}

// WithBeforeStepHook installs a hook invoked before a step actually runs.
func WithBeforeStepHook(h StepHook) Option {
	return func(e *Execution) { e.beforeStepHook = h }
}

// WithAfterStepHook installs a hook invoked after a step finishes running.
func WithAfterStepHook(h StepHook) Option {
	return func(e *Execution) { e.afterStepHook = h }
}

// WithClock overrides the time source, for deterministic tests.
func WithClock(c clock.Source) Option {
	return func(e *Execution) { e.now = c }
}

// New constructs an Execution from cfg and mainLogger, applying opts in
// order. A process ID is minted with uuid if cfg.ProcessID is empty.
func New(cfg config.ExecutionConfig, mainLogger logger.Logger, opts ...Option) *Execution {
	processID := cfg.ProcessID
	if processID == "" {
		processID = uuid.New().String()
	}

	e := &Execution{
		applicationName:    cfg.ApplicationName,
		processID:          processID,
		mainLogger:         mainLogger,
		executedSteps:      make(map[effectuation.StepID]struct{}),
		activatedOptions:   make(map[string]struct{}),
		dispensedWith:      make(map[string]struct{}),
		worstSeverity:      worstseverity.New(),
		pauseGate:          make(chan struct{}, 1),
		attached:           make(map[string]any),
		alwaysAddCrashInfo: cfg.AlwaysAddCrashInfo,
		debugMode:          cfg.Debug,
		now:                clock.Now,
	}
	e.pauseGate <- struct{}{}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ApplicationName returns the supervisor's configured application name.
func (e *Execution) ApplicationName() string { return e.applicationName }

// ProcessID returns the supervisor's process id.
func (e *Execution) ProcessID() string { return e.processID }

// ItemInfo returns the work item identity, if one was attached.
func (e *Execution) ItemInfo() *event.ItemInfo { return e.itemInfo }

// LogFileInfo returns the log file location recorded at construction, if
// any.
func (e *Execution) LogFileInfo() string { return e.logFileInfo }

// EffectuationStack returns a snapshot copy of the current context stack.
func (e *Execution) EffectuationStack() []effectuation.Effectuation {
	out := make([]effectuation.Effectuation, len(e.effectuationStack))
	copy(out, e.effectuationStack)
	return out
}

// OperationCount returns the number of accepted step executions so far.
// A step refused by a hook returning false is not counted.
func (e *Execution) OperationCount() int { return e.operationCount }

// Attach stores a user value under key, for out-of-band data a step body
// wants to retrieve from a sibling step later in the same execution.
func (e *Execution) Attach(key string, value any) { e.attached[key] = value }

// Attached retrieves a value previously stored with Attach.
func (e *Execution) Attached(key string) (any, bool) {
	v, ok := e.attached[key]
	return v, ok
}

// CloseLoggers closes the main logger (which transitively closes its
// children) and, if present, the crash logger.
func (e *Execution) CloseLoggers() error {
	var first error
	if err := e.mainLogger.Close(); err != nil {
		first = err
	}
	if e.crashLogger != nil {
		if err := e.crashLogger.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
