// Package health serves the liveness and readiness endpoints. Readiness reports
// which storage backend and assist source the process is running with.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/innohub/internal/api/respond"
)

// checkTimeout bounds one readiness pass.
const checkTimeout = 5 * time.Second

// Checker is one dependency checked by the readiness endpoint.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Describer is implemented by checkers that add detail to the report.
type Describer interface {
	Describe(report *Report)
}

// Status is the body of /health and /health/live.
type Status struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// Report is the body of /health/ready. Checks maps checker names to "ok" or
// the failure message.
type Report struct {
	Status  string            `json:"status"`
	Storage string            `json:"storage,omitempty"`
	Assist  string            `json:"assist,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// ErrNotReady is sent with the report when any check fails.
var ErrNotReady = &respond.Error{
	Code:    respond.CodeUnavailable,
	Message: "service is not ready",
	Status:  http.StatusServiceUnavailable,
}

type Handler struct {
	version string
	started time.Time

	mu       sync.RWMutex
	checkers []Checker
}

// NewHandler creates a handler reporting version in /health.
func NewHandler(version string) *Handler {
	return &Handler{version: version, started: time.Now()}
}

// RegisterChecker adds a dependency checker.
func (h *Handler) RegisterChecker(c Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, c)
}

// Health reports that the process is up, with its version and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, Status{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	})
}

// Live answers the liveness check. It never touches dependencies.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, Status{Status: "live"})
}

// Ready runs every checker concurrently and answers 503 with the report
// when any of them fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	report := h.check(r.Context())
	if report.Status != "ready" {
		respond.FailWithData(w, ErrNotReady, report)
		return
	}
	respond.OK(w, report)
}

func (h *Handler) check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	h.mu.RLock()
	checkers := append([]Checker(nil), h.checkers...)
	h.mu.RUnlock()

	report := Report{Status: "ready", Checks: make(map[string]string, len(checkers))}
	var mu sync.Mutex
	var g errgroup.Group
	for _, c := range checkers {
		g.Go(func() error {
			result := "ok"
			if err := c.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			report.Checks[c.Name()] = result
			if result != "ok" {
				report.Status = "not_ready"
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	for _, c := range checkers {
		if d, ok := c.(Describer); ok {
			d.Describe(&report)
		}
	}
	return report
}
