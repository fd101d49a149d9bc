package assist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestRemote(t *testing.T, handler http.HandlerFunc) *RemoteProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewRemoteProvider(RemoteConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewRemoteProvider() error = %v", err)
	}
	return p
}

func TestRemoteProvider_Generate(t *testing.T) {
	var gotPath, gotKey, gotAgent, gotPrompt string
	p := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotAgent = r.Header.Get("User-Agent")

		var body generateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Contents) == 1 && len(body.Contents[0].Parts) == 1 {
			gotPrompt = body.Contents[0].Parts[0].Text
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"reply\":"},{"text":"\"hi\"}"}]}}]}`))
	})

	out, err := p.Generate(context.Background(), Request{Intent: IntentChat, Prompt: "say hi"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != `{"reply":"hi"}` {
		t.Errorf("output = %q", out)
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if !strings.HasPrefix(gotAgent, "innohub/") {
		t.Errorf("user agent = %q", gotAgent)
	}
	if gotPrompt != "say hi" {
		t.Errorf("prompt = %q", gotPrompt)
	}
}

func TestRemoteProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}},
		{"no candidates", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}},
		{"empty text", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`))
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestRemote(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{Prompt: "x"})
			if !errors.Is(err, ErrUpstreamUnavailable) {
				t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
			}
		})
	}
}

func TestRemoteProvider_CanceledContext(t *testing.T) {
	p := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, Request{Prompt: "x"}); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestRemoteConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  RemoteConfig
		wantErr bool
	}{
		{"defaults", RemoteConfig{APIKey: "k"}, false},
		{"missing key", RemoteConfig{}, true},
		{"bad scheme", RemoteConfig{APIKey: "k", BaseURL: "ftp://example.com"}, true},
		{"no host", RemoteConfig{APIKey: "k", BaseURL: "https://"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (cfg.Model != DefaultModel || cfg.BaseURL != DefaultBaseURL || cfg.Timeout != 30*time.Second) {
				t.Errorf("defaults not applied: %+v", cfg)
			}
		})
	}
}

func TestGateway_WithRemoteProvider(t *testing.T) {
	p := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	d, src, err := New(p).PitchDeck(context.Background(), PitchDeckInput{ProjectData: &ProjectData{Title: "LearnHub", Description: "education platform"}})
	if err != nil {
		t.Fatalf("PitchDeck() error = %v", err)
	}
	if src != SourceTemplate {
		t.Errorf("source = %q, want template", src)
	}
	if d.Title != "LearnHub" || d.Problem == "" {
		t.Errorf("deck = %+v", d)
	}
}
