// Package team serves teammate matching and member lookups.
package team

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
	"github.com/good-yellow-bee/innohub/internal/teammatch"
)

const msgUserNotFound = "User not found"

type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

type ConnectRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type ConnectResponse struct {
	Msg        string     `json:"msg"`
	TargetUser TargetUser `json:"targetUser"`
}

type TargetUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Member is the public card used by chat windows.
type Member struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Avatar   string      `json:"avatar,omitempty"`
	Role     models.Role `json:"role"`
	Bio      string      `json:"bio,omitempty"`
	Skills   []string    `json:"skills"`
}

// Match ranks other members against the caller's skills. ?role narrows the
// pool; "All" or empty means no filter. An empty pool yields placeholder
// suggestions.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	me, ok := h.loadUser(w, r, middleware.GetUserID(ctx))
	if !ok {
		return
	}

	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if strings.EqualFold(role, "all") {
		role = ""
	}

	pool, err := h.storage.Users().Candidates(ctx, me.ID, models.Role(role), teammatch.PoolSize)
	if err != nil {
		respond.Internal(w, r, "list candidates", err)
		return
	}

	results := teammatch.Rank(me.Skills, pool)
	if len(results) == 0 {
		results = teammatch.Synthetic(me.ID, role, me.Skills)
	}
	respond.OK(w, results)
}

// Connect acknowledges a connection request. Requests are not stored.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respond.Fail(w, respond.Validation("User ID is required"))
		return
	}

	target, ok := h.loadUser(w, r, req.UserID)
	if !ok {
		return
	}
	respond.OK(w, ConnectResponse{
		Msg:        "Connection request sent successfully",
		TargetUser: TargetUser{ID: target.ID, Username: target.Username},
	})
}

func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	respond.OK(w, Member{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
		Role:     u.Role,
		Bio:      u.Bio,
		Skills:   skills,
	})
}

func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request, id string) (*models.User, bool) {
	u, err := h.storage.Users().GetByID(r.Context(), id)
	if err != nil {
		respond.Internal(w, r, "get user", err)
		return nil, false
	}
	if u == nil {
		respond.Fail(w, respond.NotFound(msgUserNotFound))
		return nil, false
	}
	return u, true
}
