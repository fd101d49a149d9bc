package assist

import (
	"encoding/json"
	"strings"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// ValidateInput is an idea to assess.
type ValidateInput struct {
	Idea        string `json:"idea"`
	Description string `json:"description"`
}

// Analysis is the qualitative part of an idea assessment.
type Analysis struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Suggestions     []string `json:"suggestions"`
	MarketPotential string   `json:"marketPotential"`
}

// Validation is the result of the validate intent.
type Validation struct {
	ViabilityScore int      `json:"viabilityScore"`
	Analysis       Analysis `json:"analysis"`
}

// RoadmapInput describes the project to plan.
type RoadmapInput struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Phase is one roadmap stage.
type Phase struct {
	Name     string   `json:"name"`
	Duration string   `json:"duration"`
	Steps    []string `json:"steps"`
}

// Roadmap is the result of the roadmap intent.
type Roadmap struct {
	Title  string  `json:"title"`
	Phases []Phase `json:"phases"`
}

// Conversation is chat history given as a string or as an array whose items
// are strings or objects with a content or text field. Any other value is
// rendered to text.
type Conversation string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*c = Conversation(conversationLine(data))
		return nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, conversationLine(item))
	}
	*c = Conversation(strings.Join(lines, "\n"))
	return nil
}

func conversationLine(raw json.RawMessage) string {
	if f := fields(raw); f != nil {
		if s := textOf(f["content"]); s != "" {
			return s
		}
		if _, ok := f["text"]; ok {
			return textOf(f["text"])
		}
	}
	return textOf(raw)
}

// LeanCanvasInput is a conversation plus any canvas fields the caller already knows.
type LeanCanvasInput struct {
	Conversation Conversation       `json:"conversation"`
	ProjectData  *models.LeanCanvas `json:"projectData"`
}

// ProjectData is the project summary a pitch deck is built from.
// Any deck field set here is kept as is.
type ProjectData struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Problem       string `json:"problem"`
	Solution      string `json:"solution"`
	Market        string `json:"market"`
	BusinessModel string `json:"businessModel"`
	Traction      string `json:"traction"`
	Team          string `json:"team"`
	Ask           string `json:"ask"`
}

// PitchDeckInput wraps the project summary.
type PitchDeckInput struct {
	ProjectData *ProjectData `json:"projectData"`
}

// MissingProjectData reports whether neither title nor description was given.
func (in PitchDeckInput) MissingProjectData() bool {
	return in.ProjectData == nil ||
		(strings.TrimSpace(in.ProjectData.Title) == "" && strings.TrimSpace(in.ProjectData.Description) == "")
}

// PitchDeck is the result of the pitchDeck intent.
type PitchDeck struct {
	Title         string `json:"title"`
	Problem       string `json:"problem"`
	Solution      string `json:"solution"`
	Market        string `json:"market"`
	BusinessModel string `json:"businessModel"`
	Traction      string `json:"traction"`
	Team          string `json:"team"`
	Ask           string `json:"ask"`
}

// ChatContext tells the assistant where the user is.
type ChatContext struct {
	Page string `json:"page"`
	Role string `json:"role"`
}

// ChatInput is one chat turn.
type ChatInput struct {
	Message string      `json:"message"`
	Context ChatContext `json:"context"`
}

// ChatReply is the result of the chat intent.
type ChatReply struct {
	Reply      string `json:"reply"`
	Suggestion string `json:"suggestion"`
}
