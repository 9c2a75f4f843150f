package logger_test

import (
	"testing"
	"time"

	"github.com/stepflow/runtime/event"
	"github.com/stepflow/runtime/logger"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

func TestPrefixLoggerPrependsToAllLanguages(t *testing.T) {
	c := logger.NewCollectingLogger()
	p := logger.NewPrefixLogger("[batch 3] ", c)

	p.Log(event.New(severity.Info, "app", message.Text{
		message.English: "done",
		message.German:  "fertig",
	}, nil, nil, time.Now()))

	got := c.Events()[0]
	if got.Fact[message.English] != "[batch 3] done" {
		t.Errorf("Fact[en] = %q", got.Fact[message.English])
	}
	if got.Fact[message.German] != "[batch 3] fertig" {
		t.Errorf("Fact[de] = %q", got.Fact[message.German])
	}
}

func TestPrefixLoggerDoubleWrappingConcatenates(t *testing.T) {
	c := logger.NewCollectingLogger()
	inner := logger.NewPrefixLogger("[inner] ", c)
	outer := logger.NewPrefixLogger("[outer] ", inner)

	outer.Log(event.New(severity.Info, "app", message.Text{message.English: "done"}, nil, nil, time.Now()))

	// outer applies its prefix first; inner, nearest the sink, prepends last.
	got := c.Events()[0].Fact[message.English]
	want := "[inner] [outer] done"
	if got != want {
		t.Errorf("Fact[en] = %q, want %q", got, want)
	}
}

func TestPrefixLoggerLeavesNilSolutionAlone(t *testing.T) {
	c := logger.NewCollectingLogger()
	p := logger.NewPrefixLogger("[x] ", c)

	p.Log(event.New(severity.Info, "app", message.Text{message.English: "done"}, nil, nil, time.Now()))
	if c.Events()[0].Solution != nil {
		t.Error("expected nil Solution to remain nil")
	}
}
