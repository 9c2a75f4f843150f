package logger

import (
	"io"
	"os"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// PrintConfig configures PrintLogger.
type PrintConfig struct {
	Language          message.Language
	MinSeverityValue  severity.Severity
	LogProgressEvents bool
	IndentSteps       bool
	// ErrorsToStandard routes Error and above to standard output instead
	// of standard error.
	ErrorsToStandard bool
}

// DefaultPrintConfig returns the baseline print sink configuration: English,
// every severity, progress lines included, steps indented.
func DefaultPrintConfig() PrintConfig {
	return PrintConfig{
		Language:          message.English,
		MinSeverityValue:  severity.Debug,
		LogProgressEvents: true,
		IndentSteps:       true,
	}
}

// PrintLogger writes human-readable lines to the standard streams. Warning
// and below go to standard output; Error and above go to standard error.
type PrintLogger struct {
	cfg    PrintConfig
	stdout io.Writer
	stderr io.Writer
}

// NewPrintLogger builds a PrintLogger writing to os.Stdout/os.Stderr.
func NewPrintLogger(cfg PrintConfig) *PrintLogger {
	return NewPrintLoggerTo(cfg, os.Stdout, os.Stderr)
}

// NewPrintLoggerTo builds a PrintLogger writing to the given streams, for
// tests and hosts that want to redirect output.
func NewPrintLoggerTo(cfg PrintConfig, stdout, stderr io.Writer) *PrintLogger {
	return &PrintLogger{cfg: cfg, stdout: stdout, stderr: stderr}
}

func (p *PrintLogger) MinSeverity() severity.Severity { return p.cfg.MinSeverityValue }
func (p *PrintLogger) LogProgress() bool              { return p.cfg.LogProgressEvents }

// Log writes the formatted line, or does nothing if the event is filtered.
func (p *PrintLogger) Log(e event.LoggingEvent) {
	if !Accept(p, e.Severity) {
		return
	}

	w := p.stdout
	if e.Severity >= severity.Error && !p.cfg.ErrorsToStandard {
		w = p.stderr
	}

	io.WriteString(w, FormatLine(e, p.cfg.Language, p.cfg.IndentSteps)+"\n")
}

func (p *PrintLogger) Close() error { return nil }
