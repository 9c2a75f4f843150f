package logger

import (
	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/message"
)

// PrefixLogger prepends a fixed string to every localized Fact and Solution
// variant before forwarding to next. Wrapping a PrefixLogger in another
// PrefixLogger concatenates the prefixes in application order.
type PrefixLogger struct {
	prefix string
	next   Logger
}

// NewPrefixLogger returns a logger that prepends prefix to every event's
// Fact and Solution text, in every language, before handing it to next.
func NewPrefixLogger(prefix string, next Logger) *PrefixLogger {
	return &PrefixLogger{prefix: prefix, next: next}
}

func (p *PrefixLogger) Log(e event.LoggingEvent) {
	e.Fact = p.apply(e.Fact)
	e.Solution = p.apply(e.Solution)
	p.next.Log(e)
}

func (p *PrefixLogger) apply(t message.Text) message.Text {
	if t == nil {
		return nil
	}
	out := make(message.Text, len(t))
	for lang, text := range t {
		out[lang] = p.prefix + text
	}
	return out
}

func (p *PrefixLogger) Close() error { return p.next.Close() }
