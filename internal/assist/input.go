package assist

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// Request bodies are free-form: any well-formed JSON decodes, and fields of
// an unexpected type are rendered to text instead of failing.

// fields splits a JSON object into its members. Anything else has none.
func fields(data []byte) map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// textOf renders a JSON value as text. Arrays are joined with ", " and
// objects contribute their values in key order.
func textOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	return render(v)
}

func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := render(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		parts := make([]string, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			if s := render(t[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *ValidateInput) UnmarshalJSON(data []byte) error {
	f := fields(data)
	*in = ValidateInput{Idea: textOf(f["idea"]), Description: textOf(f["description"])}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *RoadmapInput) UnmarshalJSON(data []byte) error {
	f := fields(data)
	*in = RoadmapInput{
		Title:       textOf(f["title"]),
		Type:        textOf(f["type"]),
		Description: textOf(f["description"]),
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. A bare string is taken as the page.
func (c *ChatContext) UnmarshalJSON(data []byte) error {
	f := fields(data)
	if f == nil {
		*c = ChatContext{Page: textOf(data)}
		return nil
	}
	*c = ChatContext{Page: textOf(f["page"]), Role: textOf(f["role"])}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *ChatInput) UnmarshalJSON(data []byte) error {
	f := fields(data)
	*in = ChatInput{Message: textOf(f["message"])}
	if raw, ok := f["context"]; ok {
		return in.Context.UnmarshalJSON(raw)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *LeanCanvasInput) UnmarshalJSON(data []byte) error {
	f := fields(data)
	*in = LeanCanvasInput{}
	if raw, ok := f["conversation"]; ok {
		if err := in.Conversation.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if d := fields(f["projectData"]); d != nil {
		in.ProjectData = &models.LeanCanvas{
			Problem:          textOf(d["problem"]),
			Solution:         textOf(d["solution"]),
			KeyMetrics:       textOf(d["keyMetrics"]),
			UniqueValue:      textOf(d["uniqueValue"]),
			UnfairAdvantage:  textOf(d["unfairAdvantage"]),
			Channels:         textOf(d["channels"]),
			CustomerSegments: textOf(d["customerSegments"]),
			CostStructure:    textOf(d["costStructure"]),
			RevenueStreams:   textOf(d["revenueStreams"]),
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. A projectData that is not an
// object counts as missing.
func (in *PitchDeckInput) UnmarshalJSON(data []byte) error {
	f := fields(data)
	*in = PitchDeckInput{}
	if d := fields(f["projectData"]); d != nil {
		in.ProjectData = &ProjectData{
			Title:         textOf(d["title"]),
			Description:   textOf(d["description"]),
			Problem:       textOf(d["problem"]),
			Solution:      textOf(d["solution"]),
			Market:        textOf(d["market"]),
			BusinessModel: textOf(d["businessModel"]),
			Traction:      textOf(d["traction"]),
			Team:          textOf(d["team"]),
			Ask:           textOf(d["ask"]),
		}
	}
	return nil
}
