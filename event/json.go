package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stepflow/runtime/effectuation"
	"github.com/stepflow/runtime/message"
	"github.com/stepflow/runtime/severity"
)

// langMapJSON is the wire shape for a localized Text: all three language
// slots are always present, encoded as a JSON string or null.
type langMapJSON struct {
	En *string `json:"en"`
	De *string `json:"de"`
	Fr *string `json:"fr"`
}

func encodeText(t message.Text) *langMapJSON {
	if t == nil {
		return nil
	}
	out := &langMapJSON{}
	if v, ok := t[message.English]; ok {
		out.En = &v
	}
	if v, ok := t[message.German]; ok {
		out.De = &v
	}
	if v, ok := t[message.French]; ok {
		out.Fr = &v
	}
	return out
}

func decodeText(j *langMapJSON) message.Text {
	if j == nil {
		return nil
	}
	out := message.Text{}
	if j.En != nil {
		out[message.English] = *j.En
	}
	if j.De != nil {
		out[message.German] = *j.De
	}
	if j.Fr != nil {
		out[message.French] = *j.Fr
	}
	return out
}

// wireEvent is the stable wire shape consumed by the HTTP sink and the
// steptree post-processor: messageID, type, processID, applicationName,
// itemInfo, itemPositionInfo, effectuationIDStack, time, plus nested
// fact/solution objects.
type wireEvent struct {
	MessageID            string             `json:"messageID,omitempty"`
	Type                 string             `json:"type"`
	ProcessID            string             `json:"processID,omitempty"`
	ApplicationName      string             `json:"applicationName"`
	Fact                 *langMapJSON       `json:"fact"`
	Solution             *langMapJSON       `json:"solution"`
	ItemInfo             *wireItemInfo      `json:"itemInfo,omitempty"`
	ItemPositionInfo     *ItemPositionInfo  `json:"itemPositionInfo,omitempty"`
	EffectuationIDStack  []string           `json:"effectuationIDStack"`
	ExecutionLevel       int                `json:"executionLevel"`
	Time                 time.Time          `json:"time"`
}

type wireItemInfo struct {
	ID         string         `json:"id"`
	Label      string         `json:"label,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// MarshalJSON encodes the event in the wire format above.
func (e LoggingEvent) MarshalJSON() ([]byte, error) {
	stack := make([]string, len(e.EffectuationStack))
	for i, fr := range e.EffectuationStack {
		stack[i] = fr.Encode()
	}

	w := wireEvent{
		MessageID:           e.MessageID,
		Type:                e.Severity.String(),
		ProcessID:           e.ProcessID,
		ApplicationName:     e.ApplicationName,
		Fact:                encodeText(e.Fact),
		Solution:            encodeText(e.Solution),
		ItemPositionInfo:    e.ItemPositionInfo,
		EffectuationIDStack: stack,
		ExecutionLevel:      e.ExecutionLevel,
		Time:                e.Timestamp,
	}
	if e.ItemInfo != nil {
		w.ItemInfo = &wireItemInfo{
			ID:         e.ItemInfo.ID,
			Label:      e.ItemInfo.Label,
			Attributes: e.ItemInfo.Attributes,
		}
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes an event previously encoded by MarshalJSON.
func (e *LoggingEvent) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	sev, ok := severity.Parse(w.Type)
	if !ok {
		return fmt.Errorf("event: unknown severity %q", w.Type)
	}

	stack := make([]effectuation.Effectuation, len(w.EffectuationIDStack))
	for i, text := range w.EffectuationIDStack {
		fr, err := effectuation.Decode(text)
		if err != nil {
			return fmt.Errorf("event: effectuation stack entry %d: %w", i, err)
		}
		stack[i] = fr
	}

	*e = LoggingEvent{
		MessageID:         w.MessageID,
		Severity:          sev,
		ExecutionLevel:    w.ExecutionLevel,
		ProcessID:         w.ProcessID,
		ApplicationName:   w.ApplicationName,
		Fact:              decodeText(w.Fact),
		Solution:          decodeText(w.Solution),
		ItemPositionInfo:  w.ItemPositionInfo,
		EffectuationStack: stack,
		Timestamp:         w.Time,
	}
	if w.ItemInfo != nil {
		e.ItemInfo = &ItemInfo{
			ID:         w.ItemInfo.ID,
			Label:      w.ItemInfo.Label,
			Attributes: w.ItemInfo.Attributes,
		}
	}

	return nil
}
