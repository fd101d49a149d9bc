// Package messages serves direct messages between members and to mentors.
package messages

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/mentorship"
	"github.com/good-yellow-bee/innohub/internal/messaging"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

type Handler struct {
	storage     storage.Storage
	messages    *messaging.Store
	mentorships *mentorship.Service
	now         func() time.Time
}

func NewHandler(store storage.Storage, messages *messaging.Store, mentorships *mentorship.Service) *Handler {
	return &Handler{storage: store, messages: messages, mentorships: mentorships, now: time.Now}
}

type SendRequest struct {
	RecipientID string             `json:"recipientId"`
	Message     string             `json:"message"`
	Type        models.MessageType `json:"type"`
	MentorID    string             `json:"mentorId"`
}

type SendResponse struct {
	Msg     string         `json:"msg"`
	Message models.Message `json:"message"`
}

// Send delivers a team message, or queues a mentor request when type is
// "mentor" and a mentorId is given.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SendRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	body := strings.TrimSpace(req.Message)
	if body == "" {
		respond.Fail(w, respond.Validation("Message is required"))
		return
	}

	senderID := middleware.GetUserID(ctx)
	sender, err := h.storage.Users().GetByID(ctx, senderID)
	if err != nil {
		respond.Internal(w, r, "get sender", err)
		return
	}
	if sender == nil {
		respond.Fail(w, respond.NotFound("Sender not found"))
		return
	}

	msg := models.Message{
		ID:           uuid.New().String(),
		SenderID:     sender.ID,
		SenderName:   sender.Username,
		SenderAvatar: sender.Avatar,
		Body:         body,
		Type:         models.MessageTeam,
		Timestamp:    h.now(),
	}

	if req.Type == models.MessageMentor && req.MentorID != "" {
		h.sendToMentor(w, r, req.MentorID, msg)
		return
	}

	if strings.TrimSpace(req.RecipientID) == "" {
		respond.Fail(w, respond.Validation("Recipient ID is required for team messages"))
		return
	}
	recipient, err := h.storage.Users().GetByID(ctx, req.RecipientID)
	if err != nil {
		respond.Internal(w, r, "get recipient", err)
		return
	}
	if recipient == nil {
		respond.Fail(w, respond.NotFound("Recipient not found"))
		return
	}

	msg.RecipientID = recipient.ID
	msg.RecipientName = recipient.Username
	h.messages.Add(msg)
	respond.Created(w, SendResponse{Msg: "Message sent successfully", Message: msg})
}

// sendToMentor records the message as a mentorship request. It is not kept
// in the inbox.
func (h *Handler) sendToMentor(w http.ResponseWriter, r *http.Request, mentorID string, msg models.Message) {
	mentor, err := h.storage.Mentors().GetByID(r.Context(), mentorID)
	if err != nil {
		respond.Internal(w, r, "get mentor", err)
		return
	}
	if mentor == nil {
		respond.Fail(w, respond.NotFound("Mentor not found"))
		return
	}

	if _, err := h.mentorships.Request(r.Context(), mentor.ID, msg.SenderID, msg.Body); err != nil {
		switch {
		case errors.Is(err, mentorship.ErrMentorNotFound):
			respond.Fail(w, respond.NotFound("Mentor not found"))
		case errors.Is(err, mentorship.ErrPendingRequest):
			respond.Fail(w, respond.Conflict(err.Error()))
		default:
			respond.Internal(w, r, "send mentor message", err)
		}
		return
	}

	msg.RecipientID = mentor.ID
	msg.RecipientName = mentor.Name
	msg.Type = models.MessageMentor
	respond.Created(w, SendResponse{Msg: "Message sent to mentor successfully", Message: msg})
}

// List returns the caller's sent and received messages, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, h.messages.ForUser(middleware.GetUserID(r.Context())))
}

// MarkRead marks a message addressed to the caller as read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if !h.messages.MarkRead(chi.URLParam(r, "id"), middleware.GetUserID(r.Context())) {
		respond.Fail(w, respond.NotFound("Message not found"))
		return
	}
	respond.OK(w, respond.Msg{Msg: "Message marked as read"})
}
