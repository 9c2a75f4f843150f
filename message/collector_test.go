package message_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// diskStepData is a hand-written Holder the way a step-data type would
// implement one: the catalog is built once, at construction time.
type diskStepData struct {
	catalog map[string]message.Message
}

func newDiskStepData() *diskStepData {
	return &diskStepData{catalog: map[string]message.Message{
		"disk-full": message.New("disk-full", severity.Error,
			message.Text{message.English: "disk $1 is full"}),
		"disk-slow": message.New("disk-slow", severity.Warning,
			message.Text{message.English: "disk $1 responds slowly"}),
	}}
}

func (d *diskStepData) Messages() map[string]message.Message { return d.catalog }

type netStepData struct{}

func (netStepData) Messages() map[string]message.Message {
	return map[string]message.Message{
		"net-down": message.New("net-down", severity.Fatal,
			message.Text{message.English: "network unreachable"}),
	}
}

type clashingStepData struct{}

func (clashingStepData) Messages() map[string]message.Message {
	return map[string]message.Message{
		"disk-full": message.New("disk-full", severity.Info,
			message.Text{message.English: "not the same message"}),
	}
}

type unnamedStepData struct{}

func (unnamedStepData) Messages() map[string]message.Message {
	return map[string]message.Message{
		"": message.New("", severity.Info, message.Text{message.English: "x"}),
	}
}

func TestCollectorCollect(t *testing.T) {
	c := message.NewCollector()

	if err := c.Collect(newDiskStepData()); err != nil {
		t.Fatalf("Collect disk: %v", err)
	}
	if err := c.Collect(netStepData{}); err != nil {
		t.Fatalf("Collect net: %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	m, ok := c.Get("disk-full")
	if !ok {
		t.Fatal("disk-full not found")
	}
	if m.Severity != severity.Error {
		t.Errorf("Severity = %v, want Error", m.Severity)
	}

	wantIDs := []string{"disk-full", "disk-slow", "net-down"}
	if got := c.IDs(); !reflect.DeepEqual(got, wantIDs) {
		t.Errorf("IDs() = %v, want %v", got, wantIDs)
	}
}

func TestCollectorDuplicateID(t *testing.T) {
	c := message.NewCollector()
	if err := c.Collect(newDiskStepData()); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	err := c.Collect(clashingStepData{})
	if !errors.Is(err, message.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}

	// The earlier registration must be intact.
	if m := c.MustGet("disk-full"); m.Severity != severity.Error {
		t.Errorf("clash overwrote the original message: %+v", m)
	}
}

func TestCollectorEmptyID(t *testing.T) {
	c := message.NewCollector()
	if err := c.Collect(unnamedStepData{}); !errors.Is(err, message.ErrEmptyID) {
		t.Fatalf("err = %v, want ErrEmptyID", err)
	}
}

func TestCollectorMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet on a missing id should panic")
		}
	}()
	message.NewCollector().MustGet("nope")
}
