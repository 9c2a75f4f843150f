package logger

import (
	"sync"

	"github.com/stepflow/runtime/event"
)

// ConcurrentConfig configures ConcurrentLogger's queue.
type ConcurrentConfig struct {
	QueueSize int
}

// DefaultConcurrentConfig returns a queue depth sized for bursty step
// completion without unbounded memory growth.
func DefaultConcurrentConfig() ConcurrentConfig {
	return ConcurrentConfig{QueueSize: 256}
}

// ConcurrentLogger hands every event to a single background goroutine so
// that Log never blocks the calling supervisor on sink latency. Close
// drains whatever is still queued before returning, then silently drops
// any event logged afterward.
type ConcurrentLogger struct {
	action  func(event.LoggingEvent)
	onClose func() error

	queue chan event.LoggingEvent
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewConcurrentLogger starts the background worker and returns the logger.
// action is invoked once per event from the worker goroutine only — it need
// not be safe for concurrent use by itself. onClose runs after the queue has
// fully drained and may be nil.
func NewConcurrentLogger(cfg ConcurrentConfig, action func(event.LoggingEvent), onClose func() error) *ConcurrentLogger {
	if cfg.QueueSize <= 0 {
		cfg = DefaultConcurrentConfig()
	}

	c := &ConcurrentLogger{
		action:  action,
		onClose: onClose,
		queue:   make(chan event.LoggingEvent, cfg.QueueSize),
		done:    make(chan struct{}),
	}

	go c.run()
	return c
}

func (c *ConcurrentLogger) run() {
	defer close(c.done)
	for e := range c.queue {
		c.action(e)
	}
}

// Log enqueues e for the background worker. Dropped silently once Close has
// been called.
func (c *ConcurrentLogger) Log(e event.LoggingEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.queue <- e
}

// Close stops accepting new events, waits for the queue to drain, then runs
// onClose. Safe to call more than once; only the first call does anything.
func (c *ConcurrentLogger) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.queue)
	c.mu.Unlock()

	<-c.done

	if c.onClose != nil {
		return c.onClose()
	}
	return nil
}
