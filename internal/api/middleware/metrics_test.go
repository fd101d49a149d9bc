package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/good-yellow-bee/innohub/internal/metrics"
)

func TestPrometheusMiddleware_RouteLabels(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMiddleware)
	r.Route("/api", func(r chi.Router) {
		r.Route("/grants", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {})
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})
		})
		r.Post("/ai/validate", func(w http.ResponseWriter, r *http.Request) {})
	})

	tests := []struct {
		method string
		path   string
		route  string
		status string
	}{
		{"GET", "/api/grants/", "/api/grants", "200"},
		{"DELETE", "/api/grants/6f1c", "/api/grants/{id}", "404"},
		{"POST", "/api/ai/validate", "/api/ai/validate", "200"},
		{"GET", "/api/nothing/here", unmatchedRoute, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			counter := metrics.HTTPRequestsTotal.WithLabelValues(tt.method, tt.route, tt.status)
			before := testutil.ToFloat64(counter)

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("requests_total{route=%q,status=%s} grew by %v, want 1", tt.route, tt.status, got)
			}
		})
	}

	if got := testutil.ToFloat64(metrics.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}
