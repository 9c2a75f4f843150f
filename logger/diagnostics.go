package logger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stepflow/runtime/observability"
)

// Diagnostics event types emitted by the sinks in this package. These
// describe the pipeline itself (an I/O failure inside a sink), never the
// LoggingEvents flowing through it.
const (
	EventFileWriteFailed  observability.EventType = "logger.file.write_failed"
	EventFileReopenFailed observability.EventType = "logger.file.reopen_failed"
	EventEncodeFailed     observability.EventType = "logger.encode_failed"
	EventPostFailed       observability.EventType = "logger.post_failed"
)

var (
	diagMu sync.RWMutex
	diag   observability.Observer = observability.NewSlogObserver(slog.Default())
)

// SetDiagnosticsObserver replaces the observers that receive this package's
// internal diagnostics. The default writes to standard error through slog.
// More than one observer fans out through a MultiObserver; calling with
// none (or only nil) silences the pipeline entirely.
func SetDiagnosticsObserver(observers ...observability.Observer) {
	kept := make([]observability.Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}

	var o observability.Observer
	switch len(kept) {
	case 0:
		o = observability.NoOpObserver{}
	case 1:
		o = kept[0]
	default:
		o = observability.NewMultiObserver(kept...)
	}

	diagMu.Lock()
	defer diagMu.Unlock()
	diag = o
}

// reportf emits one diagnostics event from a sink. Sinks never propagate
// their own I/O failures to the supervisor logging through them; this is
// the only place those failures surface.
func reportf(source string, eventType observability.EventType, data map[string]any) {
	diagMu.RLock()
	o := diag
	diagMu.RUnlock()

	o.OnEvent(context.Background(), observability.Event{
		Type:      eventType,
		Level:     observability.LevelWarning,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	})
}
