package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/innohub/internal/api/auth"
	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

const msgUserNotFound = "User not found"

// Handler handles account endpoints.
type Handler struct {
	storage storage.Storage
}

// NewHandler creates a new user handler.
func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

// SetRoleRequest is the request body for changing a user's role.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// ChangePasswordRequest is the request body for changing password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Me returns the current authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.load(w, r, middleware.GetUserID(r.Context()))
	if !ok {
		return
	}
	respond.OK(w, user.Public())
}

// List returns all users (admin only).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.storage.Users().List(r.Context())
	if err != nil {
		respond.Internal(w, r, "list users", err)
		return
	}

	resp := make([]models.PublicUser, len(users))
	for i, u := range users {
		resp[i] = u.Public()
	}
	respond.OK(w, resp)
}

// SetRole changes a user's role (admin only).
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req SetRoleRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	role, err := ValidateRole(req.Role)
	if err != nil {
		respond.Fail(w, respond.Validation(err.Error()))
		return
	}

	user, ok := h.load(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	user.Role = role
	if err := h.storage.Users().Update(r.Context(), user); err != nil {
		respond.Internal(w, r, "update user role", err)
		return
	}
	respond.OK(w, user.Public())
}

// ChangePassword changes the current user's password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		respond.Fail(w, respond.Validation(err.Error()))
		return
	}

	user, ok := h.load(w, r, middleware.GetUserID(r.Context()))
	if !ok {
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		respond.Fail(w, respond.Validation("current password is incorrect"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		respond.Internal(w, r, "hash password", err)
		return
	}
	user.PasswordHash = hash
	if err := h.storage.Users().Update(r.Context(), user); err != nil {
		respond.Internal(w, r, "update password", err)
		return
	}
	respond.OK(w, respond.Msg{Msg: "Password updated"})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, id string) (*models.User, bool) {
	user, err := h.storage.Users().GetByID(r.Context(), id)
	if err != nil {
		respond.Internal(w, r, "get user", err)
		return nil, false
	}
	if user == nil {
		respond.Fail(w, respond.NotFound(msgUserNotFound))
		return nil, false
	}
	return user, true
}
