package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
	"github.com/good-yellow-bee/innohub/internal/storage/storagetest"
)

const testUserHeader = "X-Test-User"

// testRouter mounts the handler with the caller identity taken from
// X-Test-User instead of a token.
func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get(testUserHeader); id != "" {
				r = r.WithContext(middleware.WithUserID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/projects", h.List)
	r.Post("/projects", h.Create)
	r.Get("/projects/me", h.Mine)
	r.Put("/projects/like/{id}", h.ToggleLike)
	r.Post("/projects/comment/{id}", h.Comment)
	r.Get("/projects/{id}", h.Get)
	r.Put("/projects/{id}", h.Update)
	r.Delete("/projects/{id}", h.Delete)
	r.Put("/projects/{id}/roles", h.AddRole)
	r.Put("/projects/{id}/lean-canvas", h.UpdateLeanCanvas)
	r.Get("/projects/{id}/contributions", h.Contributions)
	r.Get("/projects/{id}/workspace", h.GetWorkspace)
	r.Put("/projects/{id}/workspace/kanban", h.AddTask)
	r.Put("/projects/{id}/workspace/kanban/move", h.MoveTask)
	r.Post("/projects/{id}/workspace/notes", h.AddNote)
	return r
}

func setup(t *testing.T) (http.Handler, storage.Storage) {
	t.Helper()
	store := storagetest.NewSQLite(t)
	return testRouter(NewHandler(store)), store
}

func do(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return env.Error.Code
}

func TestCreate(t *testing.T) {
	h, store := setup(t)
	owner := storagetest.CreateUser(t, store, "sarah", models.RoleStudent)

	rec := do(t, h, "POST", "/projects", owner.ID, map[string]any{
		"title":       "EcoDelivery",
		"description": "Green last-mile delivery",
		"tags":        "Sustainability, Logistics",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var p models.Project
	decodeData(t, rec, &p)
	if p.OwnerID != owner.ID {
		t.Errorf("ownerId = %q, want %q", p.OwnerID, owner.ID)
	}
	if len(p.Tags) != 2 || p.Tags[1] != "Logistics" {
		t.Errorf("tags = %v", p.Tags)
	}
	if len(p.Contributions) != 1 || p.Contributions[0].Action != models.ActionCreated {
		t.Fatalf("contributions = %+v", p.Contributions)
	}
	if p.Contributions[0].Description != `Created project "EcoDelivery"` {
		t.Errorf("description = %q", p.Contributions[0].Description)
	}
}

func TestCreate_Validation(t *testing.T) {
	h, _ := setup(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing title", map[string]string{"description": "d"}},
		{"missing description", map[string]string{"title": "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, "POST", "/projects", "u1", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if code := errorCode(t, rec); code != "VALIDATION_FAILED" {
				t.Errorf("code = %q", code)
			}
		})
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/projects", bytes.NewBufferString("{"))
	h.ServeHTTP(rec, req)
	if code := errorCode(t, rec); code != "BAD_REQUEST" {
		t.Errorf("malformed body code = %q, want BAD_REQUEST", code)
	}
}

func TestListAndGet(t *testing.T) {
	h, store := setup(t)
	owner := storagetest.CreateUser(t, store, "mike", models.RoleStudent)
	p := storagetest.CreateProject(t, store, "Campus AI Tutor", owner.ID)
	storagetest.CreateProject(t, store, "Orphan", "deleted-user")

	rec := do(t, h, "GET", "/projects?search=tutor", "", nil)
	var list []ProjectResponse
	decodeData(t, rec, &list)
	if len(list) != 1 || list[0].ID != p.ID {
		t.Fatalf("search result = %+v", list)
	}
	if list[0].User.Username != "mike" {
		t.Errorf("owner = %+v", list[0].User)
	}

	rec = do(t, h, "GET", "/projects", "", nil)
	decodeData(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Title != "Orphan" || list[0].User.Username != "Unknown" {
		t.Errorf("newest = %s by %s", list[0].Title, list[0].User.Username)
	}

	rec = do(t, h, "GET", "/projects/"+p.ID, "", nil)
	var got ProjectResponse
	decodeData(t, rec, &got)
	if got.LikedByMe != nil {
		t.Error("anonymous read must not carry likedByMe")
	}

	rec = do(t, h, "GET", "/projects/"+p.ID, owner.ID, nil)
	decodeData(t, rec, &got)
	if got.LikedByMe == nil || *got.LikedByMe {
		t.Errorf("likedByMe = %v, want false", got.LikedByMe)
	}

	rec = do(t, h, "GET", "/projects/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", rec.Code)
	}
}

func TestUpdateAndDelete_OwnerOnly(t *testing.T) {
	h, store := setup(t)
	owner := storagetest.CreateUser(t, store, "owner", models.RoleStudent)
	p := storagetest.CreateProject(t, store, "Budget Buddy", owner.ID)

	rec := do(t, h, "PUT", "/projects/"+p.ID, "intruder", map[string]string{"title": "Hijacked"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "UNAUTHORIZED" {
		t.Errorf("code = %q", code)
	}

	rec = do(t, h, "PUT", "/projects/"+p.ID, owner.ID, map[string]string{"title": "Budget Buddy 2"})
	var updated models.Project
	decodeData(t, rec, &updated)
	if updated.Title != "Budget Buddy 2" || updated.Description != p.Description {
		t.Errorf("updated = %s / %s", updated.Title, updated.Description)
	}
	last := updated.Contributions[len(updated.Contributions)-1]
	if last.Action != models.ActionUpdated || last.Description != `Updated project "Budget Buddy 2"` {
		t.Errorf("last contribution = %+v", last)
	}

	if rec := do(t, h, "DELETE", "/projects/"+p.ID, "intruder", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("intruder delete status = %d", rec.Code)
	}
	if rec := do(t, h, "DELETE", "/projects/"+p.ID, owner.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("owner delete status = %d", rec.Code)
	}
	if got, _ := store.Projects().GetByID(context.Background(), p.ID); got != nil {
		t.Error("project should be gone")
	}
}

func TestToggleLike(t *testing.T) {
	h, store := setup(t)
	p := storagetest.CreateProject(t, store, "GreenGrid", "owner")

	var likes []models.Like
	rec := do(t, h, "PUT", "/projects/like/"+p.ID, "fan", nil)
	decodeData(t, rec, &likes)
	if len(likes) != 1 || likes[0].UserID != "fan" {
		t.Fatalf("likes after first toggle = %+v", likes)
	}

	rec = do(t, h, "PUT", "/projects/like/"+p.ID, "fan", nil)
	decodeData(t, rec, &likes)
	if len(likes) != 0 {
		t.Fatalf("likes after second toggle = %+v", likes)
	}

	stored, _ := store.Projects().GetByID(context.Background(), p.ID)
	actions := []models.Action{}
	for _, c := range stored.Contributions {
		actions = append(actions, c.Action)
	}
	if len(actions) != 2 || actions[0] != models.ActionLiked || actions[1] != models.ActionUnliked {
		t.Errorf("actions = %v", actions)
	}
	if stored.Contributions[0].Description != "Liked GreenGrid" {
		t.Errorf("description = %q", stored.Contributions[0].Description)
	}
}

func TestComment(t *testing.T) {
	h, store := setup(t)
	author := storagetest.CreateUser(t, store, "alex", models.RoleStudent)
	p := storagetest.CreateProject(t, store, "StudyBuddy", "owner")

	do(t, h, "POST", "/projects/comment/"+p.ID, author.ID, map[string]string{"text": "first"})
	rec := do(t, h, "POST", "/projects/comment/"+p.ID, author.ID, map[string]string{"text": "second"})

	var comments []models.Comment
	decodeData(t, rec, &comments)
	if len(comments) != 2 || comments[0].Text != "second" {
		t.Fatalf("comments = %+v", comments)
	}
	if comments[0].Name != "alex" {
		t.Errorf("name = %q", comments[0].Name)
	}

	if rec := do(t, h, "POST", "/projects/comment/"+p.ID, author.ID, map[string]string{"text": " "}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty comment status = %d", rec.Code)
	}
	if rec := do(t, h, "POST", "/projects/comment/"+p.ID, "ghost", map[string]string{"text": "hi"}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown author status = %d", rec.Code)
	}
}

func TestAddRoleAndLeanCanvas(t *testing.T) {
	h, store := setup(t)
	p := storagetest.CreateProject(t, store, "HealthHub", "owner")

	rec := do(t, h, "PUT", "/projects/"+p.ID+"/roles", "owner", map[string]any{
		"role":   "Designer",
		"skills": []string{"Figma", "UI/UX"},
	})
	var roles []models.OpenRole
	decodeData(t, rec, &roles)
	if len(roles) != 1 || roles[0].Status != models.RoleStatusOpen || len(roles[0].Skills) != 2 {
		t.Fatalf("roles = %+v", roles)
	}

	if rec := do(t, h, "PUT", "/projects/"+p.ID+"/roles", "other", map[string]string{"role": "x"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("non-owner role status = %d", rec.Code)
	}

	rec = do(t, h, "PUT", "/projects/"+p.ID+"/lean-canvas", "owner", models.LeanCanvas{Problem: "p", Solution: "s"})
	var canvas models.LeanCanvas
	decodeData(t, rec, &canvas)
	if canvas.Problem != "p" || canvas.Solution != "s" {
		t.Errorf("canvas = %+v", canvas)
	}

	rec = do(t, h, "GET", "/projects/"+p.ID+"/contributions", "", nil)
	var entries []models.Contribution
	decodeData(t, rec, &entries)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Action != models.ActionUpdatedCanvas || entries[1].Description != "Added open role: Designer" {
		t.Errorf("entries = %+v", entries)
	}

	rec = do(t, h, "GET", "/projects/"+p.ID+"/contributions?limit=1", "", nil)
	decodeData(t, rec, &entries)
	if len(entries) != 1 {
		t.Errorf("limited len = %d, want 1", len(entries))
	}
}

func TestMine(t *testing.T) {
	h, store := setup(t)
	storagetest.CreateProject(t, store, "A", "me")
	storagetest.CreateProject(t, store, "B", "someone")

	rec := do(t, h, "GET", "/projects/me", "me", nil)
	var projects []models.Project
	decodeData(t, rec, &projects)
	if len(projects) != 1 || projects[0].Title != "A" {
		t.Errorf("projects = %+v", projects)
	}
}
