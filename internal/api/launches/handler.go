// Package launches serves the launch showcase.
package launches

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

const msgLaunchNotFound = "Launch not found"

type Handler struct {
	storage storage.Storage
	now     func() time.Time
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store, now: time.Now}
}

type CreateRequest struct {
	ProjectID   string            `json:"projectId"`
	Title       string            `json:"title"`
	Tagline     string            `json:"tagline"`
	Description string            `json:"description"`
	Tags        models.StringList `json:"tags"`
	Images      []string          `json:"images"`
	WebsiteURL  string            `json:"websiteUrl"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

// ProjectSummary is the short project form shown on a launch card.
type ProjectSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LaunchResponse is a launch with its launcher and project resolved.
type LaunchResponse struct {
	*models.Launch
	Launcher models.UserSummary `json:"launcher"`
	Project  *ProjectSummary    `json:"project,omitempty"`
}

// List returns every launch, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	launches, err := h.storage.Launches().List(ctx)
	if err != nil {
		respond.Internal(w, r, "list launches", err)
		return
	}

	users := make(map[string]models.UserSummary)
	resp := make([]LaunchResponse, 0, len(launches))
	for _, l := range launches {
		launcher, ok := users[l.LauncherID]
		if !ok {
			u, err := h.storage.Users().GetByID(ctx, l.LauncherID)
			if err != nil {
				respond.Internal(w, r, "get launcher", err)
				return
			}
			launcher = models.UserSummary{ID: l.LauncherID, Username: "Unknown"}
			if u != nil {
				launcher = u.Summary()
			}
			users[l.LauncherID] = launcher
		}

		item := LaunchResponse{Launch: l, Launcher: launcher}
		p, err := h.storage.Projects().GetByID(ctx, l.ProjectID)
		if err != nil {
			respond.Internal(w, r, "get launched project", err)
			return
		}
		if p != nil {
			item.Project = &ProjectSummary{ID: p.ID, Title: p.Title, Description: p.Description}
		}
		resp = append(resp, item)
	}
	respond.OK(w, resp)
}

// Create launches a project the caller owns. A project launches once.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if err := validateCreate(req); err != nil {
		respond.Fail(w, respond.Validation(err.Error()))
		return
	}

	userID := middleware.GetUserID(ctx)
	project, err := h.storage.Projects().GetByID(ctx, req.ProjectID)
	if err != nil {
		respond.Internal(w, r, "get project", err)
		return
	}
	if project == nil {
		respond.Fail(w, respond.NotFound("Project not found"))
		return
	}
	if !project.IsOwner(userID) {
		respond.Fail(w, respond.ErrNotOwner)
		return
	}

	existing, err := h.storage.Launches().GetByProjectID(ctx, project.ID)
	if err != nil {
		respond.Internal(w, r, "check existing launch", err)
		return
	}
	if existing != nil {
		respond.Fail(w, respond.Conflict("Project already launched"))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = project.Title
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	launch := &models.Launch{
		ProjectID:   project.ID,
		LauncherID:  userID,
		Title:       title,
		Tagline:     strings.TrimSpace(req.Tagline),
		Description: req.Description,
		Images:      images,
		Tags:        req.Tags.Strings(),
		Upvotes:     []string{},
		Comments:    []models.Comment{},
		WebsiteURL:  req.WebsiteURL,
		CreatedAt:   h.now(),
	}
	if err := h.storage.Launches().Create(ctx, launch); err != nil {
		// The unique index on projectId catches a concurrent launch.
		if errors.Is(err, storage.ErrDuplicate) {
			respond.Fail(w, respond.Conflict("Project already launched"))
			return
		}
		respond.Internal(w, r, "create launch", err)
		return
	}
	respond.Created(w, launch)
}

// Upvote toggles the caller's upvote and returns the upvote list.
func (h *Handler) Upvote(w http.ResponseWriter, r *http.Request) {
	launch, ok := h.load(w, r)
	if !ok {
		return
	}
	launch.ToggleUpvote(middleware.GetUserID(r.Context()))

	if err := h.storage.Launches().Update(r.Context(), launch); err != nil {
		respond.Internal(w, r, "toggle upvote", err)
		return
	}
	respond.OK(w, launch.Upvotes)
}

// Comment prepends a comment and returns the comment list.
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

	launch, ok := h.load(w, r)
	if !ok {
		return
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      user.Username,
		Avatar:    user.Avatar,
		Text:      text,
		CreatedAt: h.now(),
	}
	launch.Comments = append([]models.Comment{comment}, launch.Comments...)

	if err := h.storage.Launches().Update(ctx, launch); err != nil {
		respond.Internal(w, r, "add launch comment", err)
		return
	}
	respond.OK(w, launch.Comments)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*models.Launch, bool) {
	launch, err := h.storage.Launches().GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Internal(w, r, "get launch", err)
		return nil, false
	}
	if launch == nil {
		respond.Fail(w, respond.NotFound(msgLaunchNotFound))
		return nil, false
	}
	if launch.Upvotes == nil {
		launch.Upvotes = []string{}
	}
	if launch.Comments == nil {
		launch.Comments = []models.Comment{}
	}
	return launch, true
}

func validateCreate(req CreateRequest) error {
	tagline := strings.TrimSpace(req.Tagline)
	switch {
	case strings.TrimSpace(req.ProjectID) == "":
		return errors.New("Project ID is required")
	case tagline == "":
		return errors.New("Tagline is required")
	case utf8.RuneCountInString(tagline) > models.MaxTaglineLength:
		return errors.New("Tagline must be 140 characters or fewer")
	case strings.TrimSpace(req.Description) == "":
		return errors.New("Description is required")
	}
	return nil
}
