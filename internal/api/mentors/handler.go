// Package mentors serves the mentor directory and mentorship requests.
package mentors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/mentorship"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

const msgMentorNotFound = "Mentor not found"

type Handler struct {
	storage     storage.Storage
	mentorships *mentorship.Service
}

func NewHandler(store storage.Storage, mentorships *mentorship.Service) *Handler {
	return &Handler{storage: store, mentorships: mentorships}
}

// CreateRequest accepts "name", or "username" from older clients.
type CreateRequest struct {
	Name     string               `json:"name"`
	Username string               `json:"username"`
	Role     string               `json:"role"`
	Company  string               `json:"company"`
	Bio      string               `json:"bio"`
	Skills   models.StringList    `json:"skills"`
	Avatar   string               `json:"avatar"`
	Socials  models.MentorSocials `json:"socials"`
}

type ConnectRequest struct {
	Message string `json:"message"`
}

type RespondRequest struct {
	Status models.RequestStatus `json:"status"`
}

// ConnectResponse acknowledges a queued request.
type ConnectResponse struct {
	Msg     string                `json:"msg"`
	Request *models.MentorRequest `json:"request"`
}

// ChatInfo is the mentor header shown in a chat window.
type ChatInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role"`
	Company  string `json:"company,omitempty"`
}

// List returns all mentors, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.storage.Mentors().List(r.Context())
	if err != nil {
		respond.Internal(w, r, "list mentors", err)
		return
	}
	if mentors == nil {
		mentors = []*models.Mentor{}
	}
	respond.OK(w, mentors)
}

// Create lists a new mentor on behalf of the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.Username)
	}
	if err := validateCreate(name, req); err != nil {
		respond.Fail(w, respond.Validation(err.Error()))
		return
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = mentorship.AvatarURL(name)
	}

	mentor := &models.Mentor{
		Name:      name,
		Role:      strings.TrimSpace(req.Role),
		Company:   req.Company,
		Bio:       req.Bio,
		Skills:    req.Skills.Strings(),
		Avatar:    avatar,
		Socials:   req.Socials,
		CreatedBy: middleware.GetUserID(r.Context()),
	}
	if err := h.storage.Mentors().Create(r.Context(), mentor); err != nil {
		respond.Internal(w, r, "create mentor", err)
		return
	}
	respond.Created(w, mentor)
}

// Request queues a connection request from the caller.
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConnectRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(ctx)
	user, err := h.storage.Users().GetByID(ctx, userID)
	if err != nil {
		respond.Internal(w, r, "get requester", err)
		return
	}
	if user == nil {
		respond.Fail(w, respond.NotFound("User not found"))
		return
	}

	request, err := h.mentorships.Request(ctx, chi.URLParam(r, "id"), userID, req.Message)
	if err != nil {
		h.mentorshipError(w, r, "send mentor request", err)
		return
	}
	respond.Created(w, ConnectResponse{Msg: "Mentor request sent successfully", Request: request})
}

// RespondToRequest accepts or rejects a pending request. Only the user who
// listed the mentor may answer.
func (h *Handler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	request, err := h.mentorships.Respond(r.Context(),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "requestId"),
		middleware.GetUserID(r.Context()),
		req.Status,
	)
	if err != nil {
		h.mentorshipError(w, r, "answer mentor request", err)
		return
	}
	respond.OK(w, request)
}

// Chat returns the mentor header for a chat window.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	mentor, ok := h.load(w, r)
	if !ok {
		return
	}
	respond.OK(w, ChatInfo{
		ID:       mentor.ID,
		Username: mentor.Name,
		Avatar:   mentor.Avatar,
		Role:     mentor.Role,
		Company:  mentor.Company,
	})
}

// Delete removes a mentor. Mentors with a recorded creator may only be
// removed by that user.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mentor, ok := h.load(w, r)
	if !ok {
		return
	}
	if mentor.CreatedBy != "" && mentor.CreatedBy != middleware.GetUserID(r.Context()) {
		respond.Fail(w, respond.ErrNotOwner)
		return
	}

	if err := h.storage.Mentors().Delete(r.Context(), mentor.ID); err != nil {
		respond.Internal(w, r, "delete mentor", err)
		return
	}
	respond.OK(w, respond.Msg{Msg: "Mentor removed"})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*models.Mentor, bool) {
	mentor, err := h.storage.Mentors().GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Internal(w, r, "get mentor", err)
		return nil, false
	}
	if mentor == nil {
		respond.Fail(w, respond.NotFound(msgMentorNotFound))
		return nil, false
	}
	return mentor, true
}

func (h *Handler) mentorshipError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, mentorship.ErrMentorNotFound):
		respond.Fail(w, respond.NotFound(msgMentorNotFound))
	case errors.Is(err, mentorship.ErrRequestNotFound):
		respond.Fail(w, respond.NotFound("Request not found"))
	case errors.Is(err, mentorship.ErrPendingRequest), errors.Is(err, mentorship.ErrAlreadyResolved):
		respond.Fail(w, respond.Conflict(err.Error()))
	case errors.Is(err, mentorship.ErrInvalidStatus):
		respond.Fail(w, respond.Validation(err.Error()))
	case errors.Is(err, mentorship.ErrNotMentorOwner):
		respond.Fail(w, respond.ErrNotOwner)
	default:
		respond.Internal(w, r, op, err)
	}
}

func validateCreate(name string, req CreateRequest) error {
	switch {
	case name == "":
		return errors.New("Name is required")
	case strings.TrimSpace(req.Role) == "":
		return errors.New("Role is required")
	case strings.TrimSpace(req.Bio) == "":
		return errors.New("Bio is required")
	case len(req.Skills) == 0:
		return errors.New("At least one skill is required")
	}
	return nil
}
