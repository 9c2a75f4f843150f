package severity_test

import (
	"testing"

	"github.com/stepflow/runtime/severity"
)

func TestOrdering(t *testing.T) {
	ordered := []severity.Severity{
		severity.Debug,
		severity.Progress,
		severity.Info,
		severity.Iteration,
		severity.Warning,
		severity.Error,
		severity.Fatal,
		severity.Loss,
		severity.Deadly,
	}

	for i := 1; i < len(ordered); i++ {
		if !(ordered[i-1] < ordered[i]) {
			t.Fatalf("expected %s < %s", ordered[i-1], ordered[i])
		}
	}
}

func TestStopsExecution(t *testing.T) {
	cases := map[severity.Severity]bool{
		severity.Debug:   false,
		severity.Warning: false,
		severity.Error:   false,
		severity.Fatal:   true,
		severity.Loss:    true,
		severity.Deadly:  true,
	}
	for s, want := range cases {
		if got := s.StopsExecution(); got != want {
			t.Errorf("%s.StopsExecution() = %v, want %v", s, got, want)
		}
	}
}

func TestStringAndParseRoundTrip(t *testing.T) {
	for s := severity.Debug; s <= severity.Deadly; s++ {
		name := s.String()
		parsed, ok := severity.Parse(name)
		if !ok {
			t.Fatalf("Parse(%q) failed to parse", name)
		}
		if parsed != s {
			t.Errorf("round trip mismatch: %s -> %q -> %s", s, name, parsed)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if _, ok := severity.Parse("Nonsense"); ok {
		t.Fatal("expected Parse to fail on unknown name")
	}
}
