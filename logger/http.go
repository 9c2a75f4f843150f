package logger

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/stepflow/runtime/event"
)

// HTTPSink POSTs each event, JSON-encoded, to a fixed URL using a plain
// net/http client. Delivery failures surface as pipeline diagnostics and
// are otherwise swallowed: a remote log sink must never be able to abort
// the supervisor it is observing.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink returns an HTTPSink posting to url using client, or
// http.DefaultClient if client is nil.
func NewHTTPSink(url string, client *http.Client) *HTTPSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSink{url: url, client: client}
}

func (h *HTTPSink) Log(e event.LoggingEvent) {
	body, err := json.Marshal(e)
	if err != nil {
		reportf("logger.HTTPSink", EventEncodeFailed, map[string]any{"error": err.Error()})
		return
	}

	resp, err := h.client.Post(h.url, "application/json", bytes.NewReader(body))
	if err != nil {
		reportf("logger.HTTPSink", EventPostFailed, map[string]any{"url": h.url, "error": err.Error()})
		return
	}
	resp.Body.Close()
}

func (h *HTTPSink) Close() error { return nil }
