// Package projects serves project CRUD, likes, comments, open roles, the lean
// canvas, the contribution ledger and the workspace board.
package projects

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/ledger"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
	"github.com/good-yellow-bee/innohub/internal/workspace"
)

const msgProjectNotFound = "Project not found"

// unknownOwner stands in for owners whose account no longer exists.
var unknownOwner = models.UserSummary{Username: "Unknown"}

type Handler struct {
	storage   storage.Storage
	workspace *workspace.Service
	now       func() time.Time
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{
		storage:   store,
		workspace: workspace.NewService(store.Projects()),
		now:       time.Now,
	}
}

// ProjectResponse is a project with its owner's summary.
type ProjectResponse struct {
	*models.Project
	User      models.UserSummary `json:"user"`
	LikedByMe *bool              `json:"likedByMe,omitempty"`
}

// Request types
type CreateRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        models.StringList `json:"tags"`
	Link        string            `json:"link"`
	GitHub      string            `json:"github"`
}

// UpdateRequest changes only the fields that are set.
type UpdateRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        models.StringList `json:"tags"`
	Link        string            `json:"link"`
	GitHub      string            `json:"github"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type RoleRequest struct {
	Role        string            `json:"role"`
	Skills      models.StringList `json:"skills"`
	Description string            `json:"description"`
}

// List returns all projects, or those whose title or tags contain ?search=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.storage.Projects().List(ctx, r.URL.Query().Get("search"))
	if err != nil {
		respond.Internal(w, r, "list projects", err)
		return
	}

	resp, err := h.withOwners(ctx, projects)
	if err != nil {
		respond.Internal(w, r, "load project owners", err)
		return
	}
	respond.OK(w, resp)
}

// Mine returns the caller's projects.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	projects, err := h.storage.Projects().ListByOwner(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respond.Internal(w, r, "list own projects", err)
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	respond.OK(w, projects)
}

// Get returns one project. With a token, the response says whether the
// caller liked it.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, ok := h.load(w, r)
	if !ok {
		return
	}

	resp, err := h.withOwners(ctx, []*models.Project{project})
	if err != nil {
		respond.Internal(w, r, "load project owner", err)
		return
	}
	if userID := middleware.GetUserID(ctx); userID != "" {
		liked := project.LikedBy(userID)
		resp[0].LikedByMe = &liked
	}
	respond.OK(w, resp[0])
}

// Create creates a project owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if err := ValidateCreate(req); err != nil {
		respond.Fail(w, respond.Validation(err.Error()))
		return
	}

	userID := middleware.GetUserID(r.Context())
	now := h.now()

	project := models.NewProject(strings.TrimSpace(req.Title), strings.TrimSpace(req.Description), userID)
	project.Tags = req.Tags.Strings()
	project.Link = req.Link
	project.GitHub = req.GitHub
	ledger.ProjectCreated(project, userID, now)

	if err := h.storage.Projects().Create(r.Context(), project); err != nil {
		respond.Internal(w, r, "create project", err)
		return
	}
	respond.Created(w, project)
}

// Update changes the set fields of a project. Owner only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if req.Title != "" {
		if err := ValidateTitle(req.Title); err != nil {
			respond.Fail(w, respond.Validation(err.Error()))
			return
		}
		project.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Tags != nil {
		project.Tags = req.Tags.Strings()
	}
	if req.Link != "" {
		project.Link = req.Link
	}
	if req.GitHub != "" {
		project.GitHub = req.GitHub
	}

	ledger.ProjectUpdated(project, middleware.GetUserID(r.Context()), h.now())

	if err := h.storage.Projects().Update(r.Context(), project); err != nil {
		respond.Internal(w, r, "update project", err)
		return
	}
	respond.OK(w, project)
}

// Delete removes a project. Owner only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.storage.Projects().Delete(r.Context(), project.ID); err != nil {
		respond.Internal(w, r, "delete project", err)
		return
	}
	respond.OK(w, respond.Msg{Msg: "Project removed"})
}

// ToggleLike adds the caller's like, or removes it if present, and returns
// the likes newest first.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	project, ok := h.load(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	now := h.now()

	liked := !project.LikedBy(userID)
	if liked {
		project.Likes = append([]models.Like{{UserID: userID, CreatedAt: now}}, project.Likes...)
	} else {
		kept := project.Likes[:0]
		for _, l := range project.Likes {
			if l.UserID != userID {
				kept = append(kept, l)
			}
		}
		project.Likes = kept
	}
	ledger.LikeToggled(project, userID, liked, now)

	if err := h.storage.Projects().Update(r.Context(), project); err != nil {
		respond.Internal(w, r, "toggle like", err)
		return
	}
	respond.OK(w, project.Likes)
}

// Comment prepends a comment and returns the comments newest first.
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CommentRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		respond.Fail(w, respond.Validation("Text is required"))
		return
	}

	userID := middleware.GetUserID(ctx)
	user, err := h.storage.Users().GetByID(ctx, userID)
	if err != nil {
		respond.Internal(w, r, "get comment author", err)
		return
	}
	if user == nil {
		respond.Fail(w, respond.NotFound("User not found"))
		return
	}

	project, ok := h.load(w, r)
	if !ok {
		return
	}

	now := h.now()
	comment := models.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      user.Username,
		Avatar:    user.Avatar,
		Text:      text,
		CreatedAt: now,
	}
	project.Comments = append([]models.Comment{comment}, project.Comments...)
	ledger.Commented(project, userID, now)

	if err := h.storage.Projects().Update(ctx, project); err != nil {
		respond.Internal(w, r, "add comment", err)
		return
	}
	respond.OK(w, project.Comments)
}

// AddRole appends an open role and returns all open roles. Owner only.
func (h *Handler) AddRole(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req RoleRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		respond.Fail(w, respond.Validation("Role is required"))
		return
	}

	project.OpenRoles = append(project.OpenRoles, models.OpenRole{
		ID:          uuid.New().String(),
		Role:        role,
		Skills:      req.Skills.Strings(),
		Description: req.Description,
		Status:      models.RoleStatusOpen,
	})
	ledger.RoleAdded(project, middleware.GetUserID(r.Context()), role, h.now())

	if err := h.storage.Projects().Update(r.Context(), project); err != nil {
		respond.Internal(w, r, "add open role", err)
		return
	}
	respond.OK(w, project.OpenRoles)
}

// UpdateLeanCanvas replaces the project's lean canvas. Owner only.
func (h *Handler) UpdateLeanCanvas(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var canvas models.LeanCanvas
	if !respond.Decode(w, r, &canvas) {
		return
	}

	project.LeanCanvas = &canvas
	ledger.CanvasUpdated(project, middleware.GetUserID(r.Context()), h.now())

	if err := h.storage.Projects().Update(r.Context(), project); err != nil {
		respond.Internal(w, r, "update lean canvas", err)
		return
	}
	respond.OK(w, project.LeanCanvas)
}

// Contributions returns the project's ledger, newest first, with each actor
// resolved. ?limit= caps it.
func (h *Handler) Contributions(w http.ResponseWriter, r *http.Request) {
	project, ok := h.load(w, r)
	if !ok {
		return
	}

	entries := ledger.Newest(project.Contributions)
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	views, err := h.people().contributions(r.Context(), entries)
	if err != nil {
		respond.Internal(w, r, "load contributors", err)
		return
	}
	respond.OK(w, views)
}

// load fetches the {id} project, writing a 404 or 500 on failure.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	project, err := h.storage.Projects().GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Internal(w, r, "get project", err)
		return nil, false
	}
	if project == nil {
		respond.Fail(w, respond.NotFound(msgProjectNotFound))
		return nil, false
	}
	return project, true
}

// loadOwned is load plus the ownership check.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	project, ok := h.load(w, r)
	if !ok {
		return nil, false
	}
	if !project.IsOwner(middleware.GetUserID(r.Context())) {
		respond.Fail(w, respond.ErrNotOwner)
		return nil, false
	}
	return project, true
}

func (h *Handler) withOwners(ctx context.Context, projects []*models.Project) ([]ProjectResponse, error) {
	owners := h.people()
	resp := make([]ProjectResponse, len(projects))

	for i, p := range projects {
		owner, err := owners.summary(ctx, p.OwnerID)
		if err != nil {
			return nil, err
		}
		resp[i] = ProjectResponse{Project: p, User: owner}
	}
	return resp, nil
}
