package assist

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/good-yellow-bee/innohub/internal/metrics"
	"github.com/good-yellow-bee/innohub/internal/models"
)

// Gateway answers assist intents through a provider with template fallback.
// The provider is fixed for the gateway's lifetime.
type Gateway struct {
	provider Provider
}

// New creates a gateway over provider. A nil provider serves templates.
func New(provider Provider) *Gateway {
	if provider == nil {
		provider = TemplateProvider{}
	}
	return &Gateway{provider: provider}
}

// NewFromConfig picks the remote provider when an API key is configured and
// valid, and the template provider otherwise.
func NewFromConfig(cfg RemoteConfig) *Gateway {
	if cfg.APIKey == "" {
		log.Info().Msg("no generative AI key configured, serving assist templates")
		return New(TemplateProvider{})
	}

	remote, err := NewRemoteProvider(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("remote assist provider unavailable, serving templates")
		return New(TemplateProvider{})
	}
	log.Info().Str("model", remote.Model()).Msg("remote assist provider configured")
	return New(remote)
}

// Provider returns the name of the configured provider.
func (g *Gateway) Provider() string {
	return g.provider.Name()
}

// Validate scores a startup idea.
func (g *Gateway) Validate(ctx context.Context, in ValidateInput) (Validation, Source) {
	return generate(ctx, g, IntentValidate, validatePrompt(in), in,
		func(v *Validation) bool {
			return len(v.Analysis.Strengths) > 0 && v.Analysis.MarketPotential != ""
		},
		func() Validation { return validateTemplate(in) },
	)
}

// Roadmap plans launch phases for a project.
func (g *Gateway) Roadmap(ctx context.Context, in RoadmapInput) (Roadmap, Source) {
	return generate(ctx, g, IntentRoadmap, roadmapPrompt(in), in,
		func(r *Roadmap) bool {
			if len(r.Phases) == 0 {
				return false
			}
			for _, p := range r.Phases {
				if p.Name == "" || len(p.Steps) == 0 {
					return false
				}
			}
			return true
		},
		func() Roadmap { return roadmapTemplate(in) },
	)
}

// LeanCanvas fills the nine canvas boxes from a conversation.
func (g *Gateway) LeanCanvas(ctx context.Context, in LeanCanvasInput) (models.LeanCanvas, Source) {
	return generate(ctx, g, IntentLeanCanvas, leanCanvasPrompt(in), in,
		func(c *models.LeanCanvas) bool {
			return c.Problem != "" && c.Solution != "" && c.UniqueValue != "" && c.CustomerSegments != ""
		},
		func() models.LeanCanvas { return leanCanvasTemplate(in) },
	)
}

// PitchDeck drafts pitch deck content. Without a title or description it
// returns the template deck together with ErrMissingProjectData.
func (g *Gateway) PitchDeck(ctx context.Context, in PitchDeckInput) (PitchDeck, Source, error) {
	if in.MissingProjectData() {
		metrics.AssistRequestsTotal.WithLabelValues(string(IntentPitchDeck), string(SourceTemplate)).Inc()
		return pitchDeckTemplate(in), SourceTemplate, ErrMissingProjectData
	}

	deck, source := generate(ctx, g, IntentPitchDeck, pitchDeckPrompt(in), in,
		func(d *PitchDeck) bool {
			return d.Problem != "" && d.Solution != "" && d.Market != ""
		},
		func() PitchDeck { return pitchDeckTemplate(in) },
	)
	if deck.Title == "" {
		deck.Title = in.ProjectData.Title
	}
	return deck, source, nil
}

// Chat answers one co-founder chat message.
func (g *Gateway) Chat(ctx context.Context, in ChatInput) (ChatReply, Source) {
	return generate(ctx, g, IntentChat, chatPrompt(in), in,
		func(r *ChatReply) bool { return strings.TrimSpace(r.Reply) != "" },
		func() ChatReply { return chatTemplate(in) },
	)
}

// Fallback reasons, used as metric labels.
const (
	reasonUpstream   = "upstream"
	reasonParse      = "parse"
	reasonIncomplete = "incomplete"
)

// generate runs one intent through the provider and decodes the reply into
// T. Any failure is answered by fallback.
func generate[T any](
	ctx context.Context,
	g *Gateway,
	intent Intent,
	prompt string,
	input any,
	complete func(*T) bool,
	fallback func() T,
) (T, Source) {
	source := Source(g.provider.Name())

	result, reason, err := decodeReply(ctx, g.provider, Request{Intent: intent, Prompt: prompt, Input: input}, complete)
	if err != nil {
		log.Warn().
			Err(err).
			Str("intent", string(intent)).
			Str("reason", reason).
			Msg("assist provider failed, serving template")
		metrics.AssistFallbacksTotal.WithLabelValues(string(intent), reason).Inc()
		result, source = fallback(), SourceTemplate
	}

	metrics.AssistRequestsTotal.WithLabelValues(string(intent), string(source)).Inc()
	return result, source
}

func decodeReply[T any](ctx context.Context, p Provider, req Request, complete func(*T) bool) (T, string, error) {
	var out T

	reply, err := p.Generate(ctx, req)
	if err != nil {
		if !errors.Is(err, ErrUpstreamUnavailable) {
			err = errors.Join(ErrUpstreamUnavailable, err)
		}
		return out, reasonUpstream, err
	}

	raw, err := extractJSON(reply)
	if err != nil {
		return out, reasonParse, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, reasonParse, err
	}
	if !complete(&out) {
		return out, reasonIncomplete, errors.New("reply is missing required fields")
	}
	return out, "", nil
}
