package logger

import (
	"io"
	"os"
	"sync"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// FileMode selects how FileLogger writes to its underlying path.
type FileMode int

const (
	// FileModeBlocking keeps a single file handle open for the logger's
	// lifetime.
	FileModeBlocking FileMode = iota
	// FileModeReopenPerWrite opens, appends, and closes the file on every
	// write, so an external process can rotate or remove the file between
	// writes without the logger noticing.
	FileModeReopenPerWrite
)

// FileConfig configures FileLogger.
type FileConfig struct {
	Path              string
	Mode              FileMode
	Language          message.Language
	MinSeverityValue  severity.Severity
	LogProgressEvents bool
	IndentSteps       bool
	Deduplicate       bool
	Sync              bool
}

// DefaultFileConfig returns a blocking, deduplicating, English file sink
// configuration writing to path.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:              path,
		Mode:              FileModeBlocking,
		Language:          message.English,
		MinSeverityValue:  severity.Debug,
		LogProgressEvents: true,
		IndentSteps:       true,
		Deduplicate:       true,
	}
}

// FileLogger writes sanitized, newline-terminated lines to a local file. It
// deduplicates exact-text-match lines for the lifetime of the logger when
// cfg.Deduplicate is set, matching the behavior of a process that logs the
// same recurring fact on every iteration of a loop.
type FileLogger struct {
	cfg    FileConfig
	mu     sync.Mutex
	file   *os.File
	seen   map[string]struct{}
	closed bool
}

// NewFileLogger opens path (in blocking mode) and returns a ready FileLogger.
func NewFileLogger(cfg FileConfig) (*FileLogger, error) {
	fl := &FileLogger{cfg: cfg}
	if cfg.Deduplicate {
		fl.seen = make(map[string]struct{})
	}

	if cfg.Mode == FileModeBlocking {
		f, err := openAppend(cfg.Path)
		if err != nil {
			return nil, err
		}
		fl.file = f
	}

	return fl, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

func (f *FileLogger) MinSeverity() severity.Severity { return f.cfg.MinSeverityValue }
func (f *FileLogger) LogProgress() bool              { return f.cfg.LogProgressEvents }

// Log sanitizes and appends one line, subject to filtering and dedup.
func (f *FileLogger) Log(e event.LoggingEvent) {
	if !Accept(f, e.Severity) {
		return
	}

	line := Sanitize(FormatLine(e, f.cfg.Language, f.cfg.IndentSteps))

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	if f.cfg.Deduplicate {
		if _, dup := f.seen[line]; dup {
			return
		}
		f.seen[line] = struct{}{}
	}

	f.writeLocked(line)
}

func (f *FileLogger) writeLocked(line string) {
	switch f.cfg.Mode {
	case FileModeBlocking:
		if f.file == nil {
			return
		}
		if _, err := io.WriteString(f.file, line+"\n"); err != nil {
			reportf("logger.FileLogger", EventFileWriteFailed, map[string]any{"path": f.cfg.Path, "error": err.Error()})
			return
		}
		if f.cfg.Sync {
			f.file.Sync()
		}
	case FileModeReopenPerWrite:
		fh, err := openAppend(f.cfg.Path)
		if err != nil {
			reportf("logger.FileLogger", EventFileReopenFailed, map[string]any{"path": f.cfg.Path, "error": err.Error()})
			return
		}
		if _, err := io.WriteString(fh, line+"\n"); err != nil {
			reportf("logger.FileLogger", EventFileWriteFailed, map[string]any{"path": f.cfg.Path, "error": err.Error()})
		}
		if f.cfg.Sync {
			fh.Sync()
		}
		fh.Close()
	}
}

// Close closes the underlying handle, if one is held open.
func (f *FileLogger) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}
