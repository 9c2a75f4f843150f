package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

const (
	openPrefix    = ">> STEP "
	donePrefix    = "<< DONE STEP "
	abordedPrefix = "<< ABORDED STEP "
)

// printStepTree reads newline-delimited LoggingEvent JSON from r, filters
// to Progress severity, and prints the reconstructed step tree to w. Lines
// that aren't valid JSON events are skipped (a log file produced by the
// print sink, not the JSON encoding, is simply ignored line by line).
func printStepTree(w io.Writer, r io.Reader) error {
	var stack []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e event.LoggingEvent
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		if e.Severity != severity.Progress {
			continue
		}

		text := e.Fact[message.English]

		switch {
		case strings.HasPrefix(text, openPrefix):
			label := strings.TrimPrefix(text, openPrefix)
			fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", len(stack)), label)
			stack = append(stack, label)

		case strings.HasPrefix(text, donePrefix):
			closeFrame(w, &stack, stripDuration(strings.TrimPrefix(text, donePrefix)))

		case strings.HasPrefix(text, abordedPrefix):
			closeFrame(w, &stack, stripDuration(strings.TrimPrefix(text, abordedPrefix)))
		}
	}

	return scanner.Err()
}

func closeFrame(w io.Writer, stack *[]string, label string) {
	s := *stack
	if len(s) == 0 || s[len(s)-1] != label {
		fmt.Fprintf(w, "mismatch: closing %q but open stack is %v\n", label, s)
		return
	}
	*stack = s[:len(s)-1]
}

func stripDuration(text string) string {
	if idx := strings.Index(text, " (duration:"); idx >= 0 {
		return text[:idx]
	}
	return text
}
