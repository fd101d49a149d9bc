// Package ai exposes the assist gateway over HTTP. Every endpoint answers
// with content: the remote model when it is usable, a template otherwise.
package ai

import (
	"errors"
	"net/http"

	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/assist"
)

// SourceHeader reports which provider produced the response body.
const SourceHeader = "X-Assist-Source"

type Handler struct {
	gateway *assist.Gateway
}

func NewHandler(gateway *assist.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var in assist.ValidateInput
	if !respond.Decode(w, r, &in) {
		return
	}
	out, source := h.gateway.Validate(r.Context(), in)
	reply(w, source, out)
}

func (h *Handler) Roadmap(w http.ResponseWriter, r *http.Request) {
	var in assist.RoadmapInput
	if !respond.Decode(w, r, &in) {
		return
	}
	out, source := h.gateway.Roadmap(r.Context(), in)
	reply(w, source, out)
}

func (h *Handler) LeanCanvas(w http.ResponseWriter, r *http.Request) {
	var in assist.LeanCanvasInput
	if !respond.Decode(w, r, &in) {
		return
	}
	out, source := h.gateway.LeanCanvas(r.Context(), in)
	reply(w, source, out)
}

// PitchDeck rejects input without a title or description, but still sends
// a template deck under data so the client can render something.
func (h *Handler) PitchDeck(w http.ResponseWriter, r *http.Request) {
	var in assist.PitchDeckInput
	if !respond.Decode(w, r, &in) {
		return
	}

	deck, source, err := h.gateway.PitchDeck(r.Context(), in)
	w.Header().Set(SourceHeader, string(source))
	if errors.Is(err, assist.ErrMissingProjectData) {
		respond.FailWithData(w, respond.Validation("Project title or description is required"), deck)
		return
	}
	respond.OK(w, deck)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var in assist.ChatInput
	if !respond.Decode(w, r, &in) {
		return
	}
	out, source := h.gateway.Chat(r.Context(), in)
	reply(w, source, out)
}

func reply(w http.ResponseWriter, source assist.Source, data any) {
	w.Header().Set(SourceHeader, string(source))
	respond.OK(w, data)
}
