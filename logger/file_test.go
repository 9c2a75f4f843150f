package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/logger"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

func TestFileLoggerWritesAndDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	fl, err := logger.NewFileLogger(logger.DefaultFileConfig(path))
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}

	e := event.New(severity.Info, "app", message.Text{message.English: "repeat"}, nil, nil, time.Now())
	fl.Log(e)
	fl.Log(e)
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one deduplicated line, got %d: %q", len(lines), string(data))
	}
}

func TestFileLoggerReopenPerWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	cfg := logger.DefaultFileConfig(path)
	cfg.Mode = logger.FileModeReopenPerWrite
	cfg.Deduplicate = false

	fl, err := logger.NewFileLogger(cfg)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer fl.Close()

	fl.Log(event.New(severity.Info, "app", message.Text{message.English: "one"}, nil, nil, time.Now()))
	fl.Log(event.New(severity.Info, "app", message.Text{message.English: "two"}, nil, nil, time.Now()))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "one") || !strings.Contains(string(data), "two") {
		t.Errorf("expected both lines present, got %q", string(data))
	}
}

func TestFileLoggerCloseDropsSubsequentWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	fl, err := logger.NewFileLogger(logger.DefaultFileConfig(path))
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}

	fl.Log(event.New(severity.Info, "app", message.Text{message.English: "after close"}, nil, nil, time.Now()))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected no writes after Close, got %q", string(data))
	}
}
