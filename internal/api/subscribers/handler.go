// Package subscribers handles newsletter sign-ups.
package subscribers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

const msgAlreadySubscribed = "This email is already subscribed"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe stores a lower-cased email address once.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubscribeRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		respond.Fail(w, respond.Validation("Email is required"))
		return
	}
	if !emailPattern.MatchString(email) {
		respond.Fail(w, respond.Validation("Please provide a valid email address"))
		return
	}

	existing, err := h.storage.Subscribers().GetByEmail(ctx, email)
	if err != nil {
		respond.Internal(w, r, "get subscriber", err)
		return
	}
	if existing != nil {
		respond.Fail(w, respond.Conflict(msgAlreadySubscribed))
		return
	}

	if err := h.storage.Subscribers().Create(ctx, &models.Subscriber{Email: email}); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			respond.Fail(w, respond.Conflict(msgAlreadySubscribed))
			return
		}
		respond.Internal(w, r, "create subscriber", err)
		return
	}
	respond.Created(w, respond.Msg{Msg: "Successfully subscribed to newsletter!"})
}
