package effectuation_test

import (
	"testing"

	"github.com/stepflow/runtime/effectuation"
)

func TestStepRoundTrip(t *testing.T) {
	e := effectuation.Step(effectuation.New("script1", "function1"))

	encoded := e.Encode()
	want := `step function1@script1`
	if encoded != want {
		t.Fatalf("encode = %q, want %q", encoded, want)
	}

	decoded, err := effectuation.Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != e {
		t.Fatalf("decode = %+v, want %+v", decoded, e)
	}
}

func TestOptionalPartRoundTrip(t *testing.T) {
	e := effectuation.OptionalPart("optional part 1")

	encoded := e.Encode()
	want := `optional part "optional part 1"`
	if encoded != want {
		t.Fatalf("encode = %q, want %q", encoded, want)
	}

	decoded, err := effectuation.Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != e {
		t.Fatalf("decode = %+v, want %+v", decoded, e)
	}
}

func TestDispensablePartRoundTrip(t *testing.T) {
	e := effectuation.DispensablePart("cleanup")
	decoded, err := effectuation.Decode(e.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != e {
		t.Fatalf("decode = %+v, want %+v", decoded, e)
	}
}

func TestDescribedPartRoundTrip(t *testing.T) {
	e := effectuation.DescribedPart("compacting the index")
	decoded, err := effectuation.Decode(e.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != e {
		t.Fatalf("decode = %+v, want %+v", decoded, e)
	}
}

func TestDecodeUnrecognized(t *testing.T) {
	if _, err := effectuation.Decode("nonsense text"); err == nil {
		t.Fatal("expected error decoding unrecognized frame text")
	}
}

func TestDecodeMalformedStep(t *testing.T) {
	if _, err := effectuation.Decode("step noatsign"); err == nil {
		t.Fatal("expected error decoding step text without '@'")
	}
}
