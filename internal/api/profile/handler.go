// Package profile serves the caller's portfolio, stats and contribution history.
package profile

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/ledger"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

const (
	defaultBio   = "Innovation enthusiast."
	defaultSkill = "Learner"
)

type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

// Owner is the account data shown on a profile page.
type Owner struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}

type ProfileResponse struct {
	*models.Profile
	User Owner `json:"user"`
}

// Stats summarises activity on the caller's own projects.
type Stats struct {
	Projects      int `json:"projects"`
	Contributions int `json:"contributions"`
	Reputation    int `json:"reputation"`
	Likes         int `json:"likes"`
}

// UpdateRequest carries profile fields and the account fields that are
// edited from the profile page. Empty fields are left unchanged.
type UpdateRequest struct {
	Company        string            `json:"company"`
	Website        string            `json:"website"`
	Location       string            `json:"location"`
	Bio            string            `json:"bio"`
	Status         string            `json:"status"`
	Role           string            `json:"role"`
	Skills         models.StringList `json:"skills"`
	GitHubUsername string            `json:"githubusername"`
	YouTube        string            `json:"youtube"`
	Twitter        string            `json:"twitter"`
	Facebook       string            `json:"facebook"`
	LinkedIn       string            `json:"linkedin"`
	Instagram      string            `json:"instagram"`

	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
	Username   string `json:"username"`
}

// Me returns the caller's profile, creating a default one on first visit.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.storage.Profiles().GetByUserID(ctx, user.ID)
	if err != nil {
		respond.Internal(w, r, "get profile", err)
		return
	}
	if profile == nil {
		profile = &models.Profile{
			UserID: user.ID,
			Bio:    defaultBio,
			Role:   models.DefaultProfileRole,
			Skills: []string{defaultSkill},
		}
		if err := h.storage.Profiles().Create(ctx, profile); err != nil {
			respond.Internal(w, r, "create default profile", err)
			return
		}
	}
	respond.OK(w, render(profile, user))
}

// Stats reports counts over the caller's projects. Reputation is
// projects*10 + likes*2 + comments.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	projects, err := h.storage.Projects().ListByOwner(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respond.Internal(w, r, "list own projects", err)
		return
	}
	respond.OK(w, computeStats(projects))
}

// Contributions returns the caller's ledger entries across all projects,
// newest first. ?limit caps the result.
func (h *Handler) Contributions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	projects, err := h.storage.Projects().ListByContributor(r.Context(), userID)
	if err != nil {
		respond.Internal(w, r, "list contributed projects", err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	respond.OK(w, ledger.ForUser(projects, userID, limit))
}

// Upsert creates or updates the caller's profile and the account fields
// edited alongside it.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.storage.Profiles().GetByUserID(ctx, user.ID)
	if err != nil {
		respond.Internal(w, r, "get profile", err)
		return
	}
	created := profile == nil
	if created {
		profile = &models.Profile{UserID: user.ID, Role: models.DefaultProfileRole, Skills: []string{}}
	}
	applyProfile(profile, req)

	if created {
		err = h.storage.Profiles().Create(ctx, profile)
	} else {
		err = h.storage.Profiles().Update(ctx, profile)
	}
	if err != nil {
		respond.Internal(w, r, "save profile", err)
		return
	}

	if applyAccount(user, req) {
		if err := h.storage.Users().Update(ctx, user); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				respond.Fail(w, respond.Conflict("Username is already taken"))
				return
			}
			respond.Internal(w, r, "update account", err)
			return
		}
	}
	respond.OK(w, render(profile, user))
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, err := h.storage.Users().GetByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respond.Internal(w, r, "get user", err)
		return nil, false
	}
	if user == nil {
		respond.Fail(w, respond.NotFound("User not found"))
		return nil, false
	}
	return user, true
}

func applyProfile(p *models.Profile, req UpdateRequest) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&p.Company, req.Company)
	set(&p.Website, req.Website)
	set(&p.Location, req.Location)
	set(&p.Bio, req.Bio)
	set(&p.Status, req.Status)
	set(&p.Role, req.Role)
	if len(req.Skills) > 0 {
		p.Skills = req.Skills.Strings()
	}

	set(&p.Social.GitHub, req.GitHubUsername)
	set(&p.Social.YouTube, req.YouTube)
	set(&p.Social.Twitter, req.Twitter)
	set(&p.Social.Facebook, req.Facebook)
	set(&p.Social.LinkedIn, req.LinkedIn)
	set(&p.Social.Instagram, req.Instagram)
}

// applyAccount copies account fields onto u and reports whether any changed.
func applyAccount(u *models.User, req UpdateRequest) bool {
	changed := false
	for _, f := range []struct {
		dst *string
		v   string
	}{
		{&u.Avatar, req.Avatar},
		{&u.CoverImage, req.CoverImage},
		{&u.Username, req.Username},
	} {
		v := strings.TrimSpace(f.v)
		if v != "" && v != *f.dst {
			*f.dst = v
			changed = true
		}
	}
	return changed
}

func computeStats(projects []*models.Project) Stats {
	var s Stats
	s.Projects = len(projects)
	for _, p := range projects {
		s.Likes += len(p.Likes)
		s.Contributions += len(p.Comments)
	}
	s.Reputation = s.Projects*10 + s.Likes*2 + s.Contributions
	return s
}

func render(p *models.Profile, u *models.User) ProfileResponse {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return ProfileResponse{
		Profile: p,
		User: Owner{
			ID:         u.ID,
			Username:   u.Username,
			Email:      u.Email,
			Avatar:     u.Avatar,
			CoverImage: u.CoverImage,
		},
	}
}
