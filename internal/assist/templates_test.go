package assist

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/good-yellow-bee/innohub/internal/models"
)

func TestValidateTemplate_EcoDelivery(t *testing.T) {
	v := validateTemplate(ValidateInput{
		Idea:        "EcoDelivery",
		Description: "Carbon-neutral courier network for eco-friendly shops",
	})

	if v.ViabilityScore < 75 || v.ViabilityScore > 95 {
		t.Errorf("viabilityScore = %d, want within [75,95]", v.ViabilityScore)
	}
	if !slices.Contains(v.Analysis.Strengths, "Sustainability focus is a strong trend") {
		t.Errorf("strengths = %v, want sustainability entry", v.Analysis.Strengths)
	}
	if v.Analysis.Strengths[0] != "Clear target audience" || v.Analysis.Strengths[1] != "Solves a real problem" {
		t.Errorf("base strengths missing: %v", v.Analysis.Strengths)
	}
	if v.Analysis.MarketPotential != "Moderate to High" {
		t.Errorf("marketPotential = %q", v.Analysis.MarketPotential)
	}
	if len(v.Analysis.Weaknesses) != 2 || len(v.Analysis.Suggestions) != 2 {
		t.Errorf("analysis = %+v", v.Analysis)
	}
}

func TestValidateTemplate_Keywords(t *testing.T) {
	tests := []struct {
		name string
		in   ValidateInput
		want []string
	}{
		{
			name: "AI keyword",
			in:   ValidateInput{Idea: "Tutor", Description: "An AI study buddy"},
			want: []string{"Leverages emerging tech"},
		},
		{
			name: "social and smart",
			in:   ValidateInput{Idea: "Smart campus", Description: "Connect students socially"},
			want: []string{"Leverages emerging tech", "Strong community potential"},
		},
		{
			name: "no keywords",
			in:   ValidateInput{Idea: "Bakery", Description: "Bread for the town"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateTemplate(tt.in)
			extra := v.Analysis.Strengths[2:]
			if !slices.Equal(extra, tt.want) {
				t.Errorf("extra strengths = %v, want %v", extra, tt.want)
			}
		})
	}
}

func TestValidateTemplate_Deterministic(t *testing.T) {
	in := ValidateInput{Idea: "Same idea", Description: "Same text"}
	a, b := validateTemplate(in), validateTemplate(in)
	if a.ViabilityScore != b.ViabilityScore {
		t.Errorf("scores differ: %d vs %d", a.ViabilityScore, b.ViabilityScore)
	}
}

func TestRoadmapTemplate(t *testing.T) {
	tests := []struct {
		name      string
		in        RoadmapInput
		wantTitle string
		wantFirst string
	}{
		{"ai", RoadmapInput{Title: "Vision", Type: "AI model"}, "Roadmap for Vision", "Phase 1: Data & Model Training"},
		{"mobile", RoadmapInput{Title: "Fit", Type: "Mobile"}, "Roadmap for Fit", "Phase 1: Prototype & Design"},
		{"default", RoadmapInput{Type: "Hardware"}, "Roadmap for Project", "Phase 1: Concept & MVP"},
		{"description keywords", RoadmapInput{Title: "Fit", Type: "Web", Description: "companion mobile version"}, "Roadmap for Fit", "Phase 1: Prototype & Design"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := roadmapTemplate(tt.in)
			if r.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", r.Title, tt.wantTitle)
			}
			if len(r.Phases) != 3 {
				t.Fatalf("phases = %d, want 3", len(r.Phases))
			}
			if r.Phases[0].Name != tt.wantFirst {
				t.Errorf("phase 1 = %q, want %q", r.Phases[0].Name, tt.wantFirst)
			}
			if r.Phases[2].Name != "Phase 3: Scale & Growth" || r.Phases[2].Duration != "Ongoing" {
				t.Errorf("phase 3 = %+v", r.Phases[2])
			}
		})
	}
}

func TestLeanCanvasTemplate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := leanCanvasTemplate(LeanCanvasInput{})
		if c.Problem != "Identify the top 3 problems your customers face" {
			t.Errorf("problem = %q", c.Problem)
		}
		if c.RevenueStreams != "How will you make money?" {
			t.Errorf("revenueStreams = %q", c.RevenueStreams)
		}
	})

	t.Run("later rules overwrite earlier ones", func(t *testing.T) {
		c := leanCanvasTemplate(LeanCanvasInput{Conversation: "Machine learning course recommendations for the job market"})
		if c.Solution != "AI-driven personalized learning platform that analyzes skills, career goals, and industry trends" {
			t.Errorf("solution = %q", c.Solution)
		}
		if c.Channels != "Online platforms, social media, partnerships with employers" {
			t.Errorf("channels = %q", c.Channels)
		}
	})

	t.Run("caller fields override", func(t *testing.T) {
		c := leanCanvasTemplate(LeanCanvasInput{
			Conversation: "an AI tool",
			ProjectData:  &models.LeanCanvas{Solution: "Our own solution"},
		})
		if c.Solution != "Our own solution" {
			t.Errorf("solution = %q, want caller value", c.Solution)
		}
		if c.UniqueValue != "Advanced AI technology that adapts and learns" {
			t.Errorf("uniqueValue = %q", c.UniqueValue)
		}
	})
}

func TestConversation_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"string", `"hello"`, "hello"},
		{"strings", `["a","b"]`, "a\nb"},
		{"objects", `[{"content":"a"},{"text":"b"},"c"]`, "a\nb\nc"},
		{"null", `null`, ""},
		{"number", `42`, "42"},
		{"object", `{"text":"ai tutor"}`, "ai tutor"},
		{"nested", `[{"content":["ai","course"]},7]`, "ai, course\n7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Conversation
			if err := json.Unmarshal([]byte(tt.data), &c); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if string(c) != tt.want {
				t.Errorf("conversation = %q, want %q", c, tt.want)
			}
		})
	}
}

func TestPitchDeckTemplate(t *testing.T) {
	tests := []struct {
		name        string
		data        *ProjectData
		wantTitle   string
		wantProblem string
	}{
		{"education", &ProjectData{Title: "SkillUp", Description: "Learn skills fast"}, "SkillUp", "Students and professionals struggle"},
		{"ai", &ProjectData{Title: "Auto", Description: "AI for small shops"}, "Auto", "Businesses struggle to leverage AI"},
		{"generic", &ProjectData{Title: "Bakery", Description: "Fresh bread"}, "Bakery", "Current solutions in the market"},
		{"empty", nil, "Your Startup Name", "Current solutions in the market"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := pitchDeckTemplate(PitchDeckInput{ProjectData: tt.data})
			if d.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", d.Title, tt.wantTitle)
			}
			if !strings.HasPrefix(d.Problem, tt.wantProblem) {
				t.Errorf("problem = %q, want prefix %q", d.Problem, tt.wantProblem)
			}
			for name, v := range map[string]string{
				"solution": d.Solution, "market": d.Market, "businessModel": d.BusinessModel,
				"traction": d.Traction, "team": d.Team, "ask": d.Ask,
			} {
				if v == "" {
					t.Errorf("%s is empty", name)
				}
			}
		})
	}

	d := pitchDeckTemplate(PitchDeckInput{ProjectData: &ProjectData{Title: "Bakery"}})
	if d.Solution != "Bakery provides an innovative approach that solves these challenges through technology and user-centric design." {
		t.Errorf("generic solution = %q", d.Solution)
	}

	d = pitchDeckTemplate(PitchDeckInput{ProjectData: &ProjectData{Title: "X", Ask: "$1"}})
	if d.Ask != "$1" {
		t.Errorf("ask = %q, want caller value", d.Ask)
	}
}

func TestChatTemplate(t *testing.T) {
	r := chatTemplate(ChatInput{Message: "How do I find users?"})
	if !slices.Contains(chatReplies, r.Reply) {
		t.Errorf("reply %q is not a canned reply", r.Reply)
	}
	if r.Suggestion != "Would you like to generate a tasks list for this?" {
		t.Errorf("suggestion = %q", r.Suggestion)
	}
	if again := chatTemplate(ChatInput{Message: "How do I find users?"}); again.Reply != r.Reply {
		t.Error("reply should be stable for the same message")
	}
}

func TestTemplateProvider_Generate(t *testing.T) {
	p := TemplateProvider{}

	out, err := p.Generate(context.Background(), Request{Intent: IntentRoadmap, Input: RoadmapInput{Title: "App"}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	var r Roadmap
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("output is not a roadmap: %v", err)
	}
	if r.Title != "Roadmap for App" {
		t.Errorf("title = %q", r.Title)
	}

	if _, err := p.Generate(context.Background(), Request{Intent: "unknown", Input: 42}); err == nil {
		t.Error("expected error for unknown input type")
	}
}

func TestCompileKeywords(t *testing.T) {
	p, err := compileKeywords("eco", `quote"d`)
	if err != nil {
		t.Fatalf("compileKeywords() error = %v", err)
	}
	if !matches(p, keywordEnv(`a QUOTE"D word`)) {
		t.Error("expected match on quoted keyword")
	}
	if matches(p, keywordEnv("nothing here")) {
		t.Error("unexpected match")
	}
	if _, err := compileKeywords(); err == nil {
		t.Error("expected error for no keywords")
	}
}
