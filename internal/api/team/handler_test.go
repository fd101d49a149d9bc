package team

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
	"github.com/good-yellow-bee/innohub/internal/teammatch"
)

func setup(t *testing.T) (http.Handler, storage.Storage) {
	t.Helper()
	store := storagetest.NewSQLite(t)
	h := NewHandler(store)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(middleware.WithUserID(r.Context(), r.Header.Get("X-Test-User")))
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/team/match", h.Match)
	r.Post("/team/connect", h.Connect)
	r.Get("/team/user/{id}", h.User)
	return r, store
}

func do(t *testing.T, h http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("X-Test-User", userID)
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

func TestMatchRanksRealUsers(t *testing.T) {
	h, store := setup(t)
	me := storagetest.CreateUser(t, store, "sarah", models.RoleStudent, "React", "Figma")
	storagetest.CreateUser(t, store, "twin", models.RoleStudent, "react", "figma")
	storagetest.CreateUser(t, store, "stranger", models.RoleMentor, "Go")

	var got []teammatch.Candidate
	decodeData(t, do(t, h, "GET", "/team/match", me.ID, ""), &got)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Username != "twin" || got[0].MatchScore != 100 {
		t.Errorf("top = %+v", got[0])
	}
	if got[1].MatchScore != 50 {
		t.Errorf("second score = %d, want 50", got[1].MatchScore)
	}

	decodeData(t, do(t, h, "GET", "/team/match?role=Mentor", me.ID, ""), &got)
	if len(got) != 1 || got[0].Username != "stranger" {
		t.Errorf("role filter = %+v", got)
	}

	decodeData(t, do(t, h, "GET", "/team/match?role=All", me.ID, ""), &got)
	if len(got) != 2 {
		t.Errorf("All len = %d, want 2", len(got))
	}
}

func TestMatchFallsBackToSuggestions(t *testing.T) {
	h, store := setup(t)
	me := storagetest.CreateUser(t, store, "alone", models.RoleStudent)

	var got []teammatch.Candidate
	decodeData(t, do(t, h, "GET", "/team/match?role=Designer", me.ID, ""), &got)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for _, c := range got {
		if c.Role != "Designer" || !strings.HasPrefix(c.ID, "mock-") {
			t.Errorf("candidate = %+v", c)
		}
	}
}

func TestConnectAndUser(t *testing.T) {
	h, store := setup(t)
	me := storagetest.CreateUser(t, store, "sarah", models.RoleStudent)
	other := storagetest.CreateUser(t, store, "mike", models.RoleStudent, "Go")

	var resp ConnectResponse
	decodeData(t, do(t, h, "POST", "/team/connect", me.ID, `{"userId":"`+other.ID+`"}`), &resp)
	if resp.TargetUser.Username != "mike" {
		t.Errorf("target = %+v", resp.TargetUser)
	}

	if rec := do(t, h, "POST", "/team/connect", me.ID, `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing id status = %d", rec.Code)
	}
	if rec := do(t, h, "POST", "/team/connect", me.ID, `{"userId":"ghost"}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rec.Code)
	}

	var member Member
	decodeData(t, do(t, h, "GET", "/team/user/"+other.ID, me.ID, ""), &member)
	if member.Username != "mike" || len(member.Skills) != 1 {
		t.Errorf("member = %+v", member)
	}
}
