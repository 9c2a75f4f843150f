package logger_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/logger"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

func TestConcurrentLoggerDeliversInOrderAndDrainsOnClose(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	c := logger.NewConcurrentLogger(logger.DefaultConcurrentConfig(), func(e event.LoggingEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.Fact[message.English])
	}, nil)

	for i := 0; i < 50; i++ {
		c.Log(event.New(severity.Info, "app", message.Text{message.English: string(rune('a' + i%26))}, nil, nil, time.Now()))
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 50 {
		t.Fatalf("expected 50 events drained by Close, got %d", len(seen))
	}
}

func TestConcurrentLoggerDropsAfterClose(t *testing.T) {
	var count int
	var mu sync.Mutex

	c := logger.NewConcurrentLogger(logger.DefaultConcurrentConfig(), func(e event.LoggingEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	}, nil)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	c.Log(event.New(severity.Info, "app", message.Text{message.English: "late"}, nil, nil, time.Now()))

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("expected events after Close to be dropped, got count=%d", count)
	}
}

func TestConcurrentLoggerRunsOnCloseAfterDrain(t *testing.T) {
	var closed bool
	c := logger.NewConcurrentLogger(logger.DefaultConcurrentConfig(), func(event.LoggingEvent) {}, func() error {
		closed = true
		return nil
	})

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closed {
		t.Error("expected onClose to run")
	}
}
