package logger_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/logger"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/observability"
	"github.com/stepflow/runtime/severity"
)

type capturingObserver struct {
	mu     sync.Mutex
	events []observability.Event
}

func (c *capturingObserver) OnEvent(_ context.Context, e observability.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *capturingObserver) all() []observability.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]observability.Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestFileLoggerReportsReopenFailureAsDiagnostics(t *testing.T) {
	obs := &capturingObserver{}
	logger.SetDiagnosticsObserver(obs)
	defer logger.SetDiagnosticsObserver()

	cfg := logger.DefaultFileConfig(filepath.Join(t.TempDir(), "missing-dir", "out.log"))
	cfg.Mode = logger.FileModeReopenPerWrite

	fl, err := logger.NewFileLogger(cfg)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer fl.Close()

	fl.Log(event.New(severity.Info, "app", message.Text{message.English: "hi"}, nil, nil, time.Now()))

	events := obs.all()
	if len(events) != 1 {
		t.Fatalf("diagnostics events = %d, want 1", len(events))
	}
	if events[0].Type != logger.EventFileReopenFailed {
		t.Errorf("Type = %q, want %q", events[0].Type, logger.EventFileReopenFailed)
	}
	if events[0].Source != "logger.FileLogger" {
		t.Errorf("Source = %q", events[0].Source)
	}
}

func TestSetDiagnosticsObserverFansOutToAll(t *testing.T) {
	first := &capturingObserver{}
	second := &capturingObserver{}
	logger.SetDiagnosticsObserver(first, second)
	defer logger.SetDiagnosticsObserver()

	cfg := logger.DefaultFileConfig(filepath.Join(t.TempDir(), "missing-dir", "out.log"))
	cfg.Mode = logger.FileModeReopenPerWrite

	fl, err := logger.NewFileLogger(cfg)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer fl.Close()

	fl.Log(event.New(severity.Info, "app", message.Text{message.English: "hi"}, nil, nil, time.Now()))

	if len(first.all()) != 1 || len(second.all()) != 1 {
		t.Errorf("fan-out counts = %d, %d, want 1, 1", len(first.all()), len(second.all()))
	}
}
