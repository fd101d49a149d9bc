package assist

import (
	"context"
	"errors"
	"slices"
	"testing"
)

// stubProvider replies with a fixed text or error.
type stubProvider struct {
	reply string
	err   error
	calls int
	last  Request
}

func (s *stubProvider) Name() string { return "remote" }

func (s *stubProvider) Generate(_ context.Context, req Request) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func TestGateway_TemplateProvider(t *testing.T) {
	g := New(nil)
	if g.Provider() != "template" {
		t.Errorf("Provider() = %q, want template", g.Provider())
	}

	v, source := g.Validate(context.Background(), ValidateInput{Idea: "EcoDelivery", Description: "green shipping"})
	if source != SourceTemplate {
		t.Errorf("source = %q, want template", source)
	}
	if !slices.Contains(v.Analysis.Strengths, "Sustainability focus is a strong trend") {
		t.Errorf("strengths = %v", v.Analysis.Strengths)
	}
}

func TestGateway_RemoteReply(t *testing.T) {
	p := &stubProvider{reply: "```json\n{\"viabilityScore\": 88, \"analysis\": {\"strengths\": [\"Fast\"], \"weaknesses\": [], \"suggestions\": [], \"marketPotential\": \"High\"}}\n```"}
	g := New(p)

	v, source := g.Validate(context.Background(), ValidateInput{Idea: "Idea"})
	if source != SourceRemote {
		t.Errorf("source = %q, want remote", source)
	}
	if v.ViabilityScore != 88 || v.Analysis.MarketPotential != "High" {
		t.Errorf("validation = %+v", v)
	}
	if p.last.Intent != IntentValidate || p.last.Prompt == "" {
		t.Errorf("request = %+v", p.last)
	}
}

func TestGateway_FallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
	}{
		{"provider error", &stubProvider{err: errors.New("connection refused")}},
		{"empty reply", &stubProvider{reply: ""}},
		{"not json", &stubProvider{reply: "I think this idea is great!"}},
		{"wrong shape", &stubProvider{reply: `{"viabilityScore": "high"}`}},
		{"incomplete", &stubProvider{reply: `{"viabilityScore": 50, "analysis": {"strengths": []}}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.provider)
			in := ValidateInput{Idea: "Smart AI tutor"}

			v, source := g.Validate(context.Background(), in)
			if source != SourceTemplate {
				t.Errorf("source = %q, want template", source)
			}
			want := validateTemplate(in)
			if v.ViabilityScore != want.ViabilityScore || !slices.Equal(v.Analysis.Strengths, want.Analysis.Strengths) {
				t.Errorf("validation = %+v, want template %+v", v, want)
			}
			if tt.provider.calls != 1 {
				t.Errorf("calls = %d, want 1", tt.provider.calls)
			}
		})
	}
}

func TestGateway_AllIntentsFallBack(t *testing.T) {
	g := New(&stubProvider{err: ErrUpstreamUnavailable})
	ctx := context.Background()

	if r, src := g.Roadmap(ctx, RoadmapInput{Title: "App"}); src != SourceTemplate || len(r.Phases) != 3 {
		t.Errorf("roadmap = %+v (%s)", r, src)
	}
	if c, src := g.LeanCanvas(ctx, LeanCanvasInput{Conversation: "education"}); src != SourceTemplate || c.Problem == "" {
		t.Errorf("lean canvas = %+v (%s)", c, src)
	}
	if d, src, err := g.PitchDeck(ctx, PitchDeckInput{ProjectData: &ProjectData{Title: "X"}}); err != nil || src != SourceTemplate || d.Title != "X" {
		t.Errorf("pitch deck = %+v (%s, %v)", d, src, err)
	}
	if r, src := g.Chat(ctx, ChatInput{Message: "hi"}); src != SourceTemplate || r.Reply == "" {
		t.Errorf("chat = %+v (%s)", r, src)
	}
}

func TestGateway_PitchDeckMissingInput(t *testing.T) {
	p := &stubProvider{reply: `{}`}
	g := New(p)

	for _, in := range []PitchDeckInput{{}, {ProjectData: &ProjectData{}}, {ProjectData: &ProjectData{Title: "  "}}} {
		d, src, err := g.PitchDeck(context.Background(), in)
		if !errors.Is(err, ErrMissingProjectData) {
			t.Fatalf("error = %v, want ErrMissingProjectData", err)
		}
		if src != SourceTemplate {
			t.Errorf("source = %q, want template", src)
		}
		if d.Title == "" || d.Problem == "" || d.Solution == "" || d.Ask == "" {
			t.Errorf("deck has empty fields: %+v", d)
		}
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times for invalid input", p.calls)
	}
}

func TestGateway_ChatRemote(t *testing.T) {
	g := New(&stubProvider{reply: `Here you go: {"reply": "Talk to users", "suggestion": "Run interviews"}`})

	r, src := g.Chat(context.Background(), ChatInput{Message: "what next?"})
	if src != SourceRemote {
		t.Errorf("source = %q, want remote", src)
	}
	if r.Reply != "Talk to users" || r.Suggestion != "Run interviews" {
		t.Errorf("reply = %+v", r)
	}
}

func TestNewFromConfig(t *testing.T) {
	if g := NewFromConfig(RemoteConfig{}); g.Provider() != "template" {
		t.Errorf("no key: provider = %q, want template", g.Provider())
	}
	if g := NewFromConfig(RemoteConfig{APIKey: "k", BaseURL: "ftp://nope"}); g.Provider() != "template" {
		t.Errorf("bad config: provider = %q, want template", g.Provider())
	}
	if g := NewFromConfig(RemoteConfig{APIKey: "k"}); g.Provider() != "remote" {
		t.Errorf("valid config: provider = %q, want remote", g.Provider())
	}
}
