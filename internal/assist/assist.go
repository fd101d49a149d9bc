// Package assist answers the AI helper intents used by the ideation tools.
//
// A Gateway sends an intent-specific prompt to its Provider and decodes the
// JSON object in the reply. Any provider failure, unparseable reply or
// incomplete result is answered from deterministic keyword templates
// instead, so callers always receive a well-formed result.
package assist

import (
	"context"
	"errors"
)

// Intent names one of the supported assist operations.
type Intent string

const (
	IntentValidate   Intent = "validate"
	IntentRoadmap    Intent = "roadmap"
	IntentLeanCanvas Intent = "leanCanvas"
	IntentPitchDeck  Intent = "pitchDeck"
	IntentChat       Intent = "chat"
)

// Source reports which path produced a result.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceTemplate Source = "template"
)

var (
	// ErrUpstreamUnavailable marks provider failures. The gateway never
	// returns it; it triggers the template fallback.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMissingProjectData is returned by PitchDeck when the input has
	// neither a title nor a description.
	ErrMissingProjectData = errors.New("project title or description is required")
)

// Request is one generation call.
type Request struct {
	Intent Intent
	// Prompt is the natural-language instruction for text providers.
	Prompt string
	// Input is the typed intent input, used by providers that do not read prompts.
	Input any
}

// Provider produces reply text that should contain a JSON object.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
