package logger_test

import (
	"testing"
	"time"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/logger"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

func TestCrashLoggerRunsActionSynchronously(t *testing.T) {
	var flushed bool
	c := logger.NewCrashLogger(func(event.LoggingEvent) {
		flushed = true
	}, nil)

	c.Log(event.New(severity.Fatal, "app", message.Text{message.English: "dying"}, nil, nil, time.Now()))
	if !flushed {
		t.Error("expected action to have run by the time Log returns")
	}
}

func TestCrashLoggerDropsAfterClose(t *testing.T) {
	var count int
	c := logger.NewCrashLogger(func(event.LoggingEvent) { count++ }, nil)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	c.Log(event.New(severity.Fatal, "app", message.Text{message.English: "late"}, nil, nil, time.Now()))

	if count != 0 {
		t.Errorf("expected no action after Close, got count=%d", count)
	}
}
