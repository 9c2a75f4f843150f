package logger

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/stepflow/runtime/event"
)

// eventIngestProcedure is the Connect RPC procedure events are posted to,
// following the <package>.<service>/<method> path convention connect-go
// generates from a proto service definition.
const eventIngestProcedure = "/stepflow.logging.v1.EventIngest/Log"

// ConnectSink posts each event to a fixed Connect RPC endpoint as a unary
// call. The event's JSON encoding is converted to a structpb.Struct, which
// satisfies proto.Message without needing protoc-generated stubs, giving
// the "POST a serialized event" contract a concrete transport.
type ConnectSink struct {
	client *connect.Client[structpb.Struct, structpb.Struct]
}

// NewConnectSink builds a ConnectSink posting to baseURL + eventIngestProcedure
// using httpClient, or http.DefaultClient if httpClient is nil.
func NewConnectSink(baseURL string, httpClient *http.Client) *ConnectSink {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ConnectSink{
		client: connect.NewClient[structpb.Struct, structpb.Struct](httpClient, baseURL+eventIngestProcedure),
	}
}

func (c *ConnectSink) Log(e event.LoggingEvent) {
	payload, err := eventToStruct(e)
	if err != nil {
		reportf("logger.ConnectSink", EventEncodeFailed, map[string]any{"error": err.Error()})
		return
	}

	if _, err := c.client.CallUnary(context.Background(), connect.NewRequest(payload)); err != nil {
		reportf("logger.ConnectSink", EventPostFailed, map[string]any{"procedure": eventIngestProcedure, "error": err.Error()})
	}
}

func (c *ConnectSink) Close() error { return nil }

// eventToStruct converts a LoggingEvent to a structpb.Struct by round
// tripping through its JSON encoding, which already carries the stable wire
// field names.
func eventToStruct(e event.LoggingEvent) (*structpb.Struct, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}

	return structpb.NewStruct(generic)
}

// structToEvent is the inverse of eventToStruct, used by the test handler.
func structToEvent(s *structpb.Struct) (event.LoggingEvent, error) {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return event.LoggingEvent{}, err
	}

	var e event.LoggingEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return event.LoggingEvent{}, err
	}
	return e, nil
}

// NewConnectTestHandler returns an http.Handler implementing the Connect
// EventIngest service against an in-memory CollectingLogger, so ConnectSink
// can be exercised against httptest.NewServer without a real ingest
// backend.
func NewConnectTestHandler(collector *CollectingLogger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(eventIngestProcedure, connect.NewUnaryHandler(
		eventIngestProcedure,
		func(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
			e, err := structToEvent(req.Msg)
			if err != nil {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			collector.Log(e)
			return connect.NewResponse(&structpb.Struct{}), nil
		},
	))
	return mux
}
