package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage/storagetest"
)

func benchServer(b *testing.B) *Server {
	b.Helper()

	store := storagetest.NewSQLite(b)
	srv, err := New(&Config{
		Address:          ":0",
		JWTSecret:        []byte("test-jwt-secret-32-bytes-long!!"),
		AIRateLimitPerIP: 1_000_000, // High limit for benchmarks
	}, store, nil)
	if err != nil {
		b.Fatalf("create server: %v", err)
	}
	b.Cleanup(srv.aiLimiter.Stop)

	owner := storagetest.CreateUser(b, store, "bench", models.RoleStudent)
	for i := 0; i < 50; i++ {
		storagetest.CreateProject(b, store, fmt.Sprintf("Project %d", i), owner.ID)
	}
	return srv
}

func BenchmarkAPI_Health(b *testing.B) {
	srv := benchServer(b)
	h := srv.Handler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
		if rec.Code != http.StatusOK {
			b.Fatalf("status = %d", rec.Code)
		}
	}
}

func BenchmarkAPI_ProjectsList(b *testing.B) {
	srv := benchServer(b)
	h := srv.Handler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects", nil))
		if rec.Code != http.StatusOK {
			b.Fatalf("status = %d", rec.Code)
		}
	}
}

func BenchmarkAPI_Parallel(b *testing.B) {
	srv := benchServer(b)
	h := srv.Handler()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects?search=Project", nil))
			if rec.Code != http.StatusOK {
				b.Errorf("status = %d", rec.Code)
				return
			}
		}
	})
}
