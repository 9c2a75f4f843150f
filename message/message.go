package message

import "github.com/stepflow/runtime/severity"

// Message is an immutable catalog entry: a severity, a required localized
// fact, and an optional localized solution. Construct one with New and treat
// the result as read-only — callers that need a variant should build a new
// Message rather than mutating Fact/Solution in place.
type Message struct {
	ID       string
	Severity severity.Severity
	Fact     Text
	Solution Text
}

// New builds a Message with no solution text.
func New(id string, sev severity.Severity, fact Text) Message {
	return Message{ID: id, Severity: sev, Fact: fact}
}

// WithSolution returns a copy of the Message carrying the given solution
// text.
func (m Message) WithSolution(solution Text) Message {
	m.Solution = solution
	return m
}

// Holder is implemented by step-data types that carry a catalog of messages.
// Each implementation owns a dictionary built at construction time (hand
// written, generated, or built by a macro) rather than relying on reflection
// over struct fields.
type Holder interface {
	Messages() map[string]Message
}
