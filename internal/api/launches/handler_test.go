package launches

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
	"github.com/good-yellow-bee/innohub/internal/storage/storagetest"
)

func setup(t *testing.T) (http.Handler, storage.Storage) {
	t.Helper()
	store := storagetest.NewSQLite(t)
	h := NewHandler(store)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get("X-Test-User"); id != "" {
				r = r.WithContext(middleware.WithUserID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/launch", h.List)
	r.Post("/launch", h.Create)
	r.Put("/launch/{id}/upvote", h.Upvote)
	r.Post("/launch/{id}/comment", h.Comment)
	return r, store
}

func do(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
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
		t.Fatalf("decode data: %v", err)
	}
}

func launchBody(projectID string) map[string]any {
	return map[string]any{
		"projectId":   projectID,
		"tagline":     "Deliveries without the emissions",
		"description": "Bike couriers for campus",
		"tags":        "Green, Logistics",
	}
}

func TestCreateAndList(t *testing.T) {
	h, store := setup(t)
	owner := storagetest.CreateUser(t, store, "sarah", models.RoleStudent)
	p := storagetest.CreateProject(t, store, "EcoDelivery", owner.ID)

	rec := do(t, h, "POST", "/launch", owner.ID, launchBody(p.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var launch models.Launch
	decodeData(t, rec, &launch)
	if launch.Title != "EcoDelivery" {
		t.Errorf("title = %q, want project title", launch.Title)
	}
	if len(launch.Tags) != 2 || launch.LauncherID != owner.ID {
		t.Errorf("launch = %+v", launch)
	}

	if rec := do(t, h, "POST", "/launch", owner.ID, launchBody(p.ID)); rec.Code != http.StatusBadRequest {
		t.Errorf("second launch status = %d, want 400", rec.Code)
	}

	var list []LaunchResponse
	decodeData(t, do(t, h, "GET", "/launch", "", nil), &list)
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
	if list[0].Launcher.Username != "sarah" {
		t.Errorf("launcher = %+v", list[0].Launcher)
	}
	if list[0].Project == nil || list[0].Project.Title != "EcoDelivery" {
		t.Errorf("project = %+v", list[0].Project)
	}
}

func TestCreateErrors(t *testing.T) {
	h, store := setup(t)
	owner := storagetest.CreateUser(t, store, "sarah", models.RoleStudent)
	p := storagetest.CreateProject(t, store, "EcoDelivery", owner.ID)

	long := launchBody(p.ID)
	long["tagline"] = strings.Repeat("x", models.MaxTaglineLength+1)

	noDescription := launchBody(p.ID)
	delete(noDescription, "description")

	tests := []struct {
		name   string
		user   string
		body   map[string]any
		status int
	}{
		{"missing project", owner.ID, launchBody("nope"), http.StatusNotFound},
		{"not owner", "someone-else", launchBody(p.ID), http.StatusUnauthorized},
		{"tagline too long", owner.ID, long, http.StatusBadRequest},
		{"no description", owner.ID, noDescription, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, "POST", "/launch", tt.user, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestUpvoteAndComment(t *testing.T) {
	h, store := setup(t)
	owner := storagetest.CreateUser(t, store, "sarah", models.RoleStudent)
	fan := storagetest.CreateUser(t, store, "mike", models.RoleStudent)
	p := storagetest.CreateProject(t, store, "EcoDelivery", owner.ID)

	var launch models.Launch
	decodeData(t, do(t, h, "POST", "/launch", owner.ID, launchBody(p.ID)), &launch)

	var upvotes []string
	decodeData(t, do(t, h, "PUT", "/launch/"+launch.ID+"/upvote", fan.ID, nil), &upvotes)
	if len(upvotes) != 1 || upvotes[0] != fan.ID {
		t.Errorf("upvotes = %v", upvotes)
	}
	decodeData(t, do(t, h, "PUT", "/launch/"+launch.ID+"/upvote", fan.ID, nil), &upvotes)
	if len(upvotes) != 0 {
		t.Errorf("upvotes after toggle = %v, want empty", upvotes)
	}

	do(t, h, "POST", "/launch/"+launch.ID+"/comment", fan.ID, map[string]string{"text": "first"})
	var comments []models.Comment
	decodeData(t, do(t, h, "POST", "/launch/"+launch.ID+"/comment", owner.ID, map[string]string{"text": "second"}), &comments)
	if len(comments) != 2 || comments[0].Text != "second" || comments[0].Name != "sarah" {
		t.Errorf("comments = %+v", comments)
	}

	if rec := do(t, h, "PUT", "/launch/missing/upvote", fan.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing launch status = %d", rec.Code)
	}
}
