package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

const deadlyMarker = "\U0001F480"

// Prefix returns the severity marker prepended to a description in a
// human-readable log line. indent is substituted for severities that carry
// no marker of their own (Debug, Progress, Info, Iteration), letting callers
// show step nesting depth there instead.
func Prefix(s severity.Severity, indent string) string {
	switch s {
	case severity.Warning:
		return "! "
	case severity.Error:
		return "!! "
	case severity.Fatal:
		return "!!! "
	case severity.Loss:
		return "!!!!"
	case severity.Deadly:
		return deadlyMarker
	default:
		return indent
	}
}

// FormatLine renders the shared human-readable log line used by the print
// and file sinks:
//
//	{<pid>} <app> (<time>):  <prefix><fact> -- <solution> (step path: a / b) @ i/n [label]
//
// lang selects the localized fact/solution variant. indentSteps controls
// whether non-marked severities are indented by stack depth.
func FormatLine(e event.LoggingEvent, lang message.Language, indentSteps bool) string {
	indent := ""
	if indentSteps {
		indent = strings.Repeat("  ", e.ExecutionLevel)
	}
	prefix := Prefix(e.Severity, indent)

	description := e.Fact.Format(lang)
	if e.Solution != nil {
		if sol := e.Solution.Format(lang); sol != "" {
			description = description + " -- " + sol
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "{%s} %s (%s):  %s%s",
		e.ProcessID, e.ApplicationName, e.Timestamp.Format(time.RFC3339Nano), prefix, description)

	if len(e.EffectuationStack) > 0 {
		fmt.Fprintf(&b, " (step path: %s)", strings.Join(e.StepPath(), " / "))
	}

	if e.ItemPositionInfo != nil {
		fmt.Fprintf(&b, " @ %d/%d", e.ItemPositionInfo.Index, e.ItemPositionInfo.Total)
	}

	if e.ItemInfo != nil {
		label := e.ItemInfo.Label
		if label == "" {
			label = e.ItemInfo.ID
		}
		if label != "" {
			fmt.Fprintf(&b, " [%s]", label)
		}
	}

	return b.String()
}

// Sanitize makes a line safe for a single-line-per-event file format:
// carriage returns are dropped, then backslashes and newlines are escaped
// so a logged value can never split or corrupt a line.
func Sanitize(line string) string {
	line = strings.ReplaceAll(line, "\r", "")
	line = strings.ReplaceAll(line, "\\", "\\\\")
	line = strings.ReplaceAll(line, "\n", "\\n")
	return line
}
