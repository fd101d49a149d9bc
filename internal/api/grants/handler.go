// Package grants serves funding opportunity listings.
package grants

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

// Deadlines are accepted as RFC 3339 timestamps or plain dates.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

type CreateRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        models.GrantType  `json:"type"`
	Amount      string            `json:"amount"`
	Deadline    string            `json:"deadline"`
	Eligibility models.StringList `json:"eligibility"`
	Link        string            `json:"link"`
	Tags        models.StringList `json:"tags"`
	Featured    bool              `json:"featured"`
}

// List returns grants ordered by deadline, optionally filtered by ?type and
// ?search.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := storage.GrantFilter{
		Type:   models.GrantType(r.URL.Query().Get("type")),
		Search: r.URL.Query().Get("search"),
	}

	grants, err := h.storage.Grants().List(r.Context(), filter)
	if err != nil {
		respond.Internal(w, r, "list grants", err)
		return
	}
	if grants == nil {
		grants = []*models.Grant{}
	}
	respond.OK(w, grants)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	grant, msg := buildGrant(req)
	if msg != "" {
		respond.Fail(w, respond.Validation(msg))
		return
	}

	if err := h.storage.Grants().Create(r.Context(), grant); err != nil {
		respond.Internal(w, r, "create grant", err)
		return
	}
	respond.Created(w, grant)
}

// Delete removes a grant. Routed behind the admin role check.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	grant, err := h.storage.Grants().GetByID(r.Context(), id)
	if err != nil {
		respond.Internal(w, r, "get grant", err)
		return
	}
	if grant == nil {
		respond.Fail(w, respond.NotFound("Grant not found"))
		return
	}

	if err := h.storage.Grants().Delete(r.Context(), id); err != nil {
		respond.Internal(w, r, "delete grant", err)
		return
	}
	respond.OK(w, respond.Msg{Msg: "Grant removed"})
}

func buildGrant(req CreateRequest) (*models.Grant, string) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	link := strings.TrimSpace(req.Link)

	switch {
	case title == "":
		return nil, "Title is required"
	case description == "":
		return nil, "Description is required"
	case !req.Type.Valid():
		return nil, "Type must be one of Grant, Competition, Scholarship, Hackathon, VC"
	case link == "":
		return nil, "Link is required"
	}

	deadline, ok := parseDeadline(req.Deadline)
	if !ok {
		return nil, "Deadline must be a date (YYYY-MM-DD)"
	}

	return &models.Grant{
		Title:       title,
		Description: description,
		Type:        req.Type,
		Amount:      req.Amount,
		Deadline:    deadline,
		Eligibility: req.Eligibility.Strings(),
		Link:        link,
		Tags:        req.Tags.Strings(),
		Featured:    req.Featured,
	}, ""
}

func parseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
