package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/good-yellow-bee/innohub/internal/api/ai"
	"github.com/good-yellow-bee/innohub/internal/api/grants"
	"github.com/good-yellow-bee/innohub/internal/api/launches"
	"github.com/good-yellow-bee/innohub/internal/api/mentors"
	"github.com/good-yellow-bee/innohub/internal/api/messages"
	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/profile"
	"github.com/good-yellow-bee/innohub/internal/api/projects"
	"github.com/good-yellow-bee/innohub/internal/api/subscribers"
	"github.com/good-yellow-bee/innohub/internal/api/team"
	"github.com/good-yellow-bee/innohub/internal/api/users"
	"github.com/good-yellow-bee/innohub/internal/mentorship"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	requireToken := middleware.TokenAuth(s.tokens)
	optionalToken := middleware.OptionalAuth(s.tokens)
	mentorships := mentorship.NewService(s.storage.Mentors())

	// Global middleware
	r.Use(middleware.RequestLogger(log.Logger, s.config.Verbose))
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.TokenHeader},
		ExposedHeaders: []string{"X-Request-ID", ai.SourceHeader},
		MaxAge:         300,
	}))

	// Health checks (public, no rate limit)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			h := projects.NewHandler(s.storage)

			r.Get("/", h.List)
			r.With(optionalToken).Get("/{id}", h.Get)
			r.Get("/{id}/workspace", h.GetWorkspace)
			r.Get("/{id}/contributions", h.Contributions)

			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Post("/", h.Create)
				r.Get("/me", h.Mine)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
				r.Put("/like/{id}", h.ToggleLike)
				r.Post("/comment/{id}", h.Comment)
				r.Put("/{id}/roles", h.AddRole)
				r.Put("/{id}/lean-canvas", h.UpdateLeanCanvas)
				r.Put("/{id}/workspace/kanban", h.AddTask)
				r.Put("/{id}/workspace/kanban/move", h.MoveTask)
				r.Post("/{id}/workspace/notes", h.AddNote)
			})
		})

		r.Route("/mentors", func(r chi.Router) {
			h := mentors.NewHandler(s.storage, mentorships)

			r.Get("/", h.List)
			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Post("/", h.Create)
				r.Post("/{id}/request", h.Request)
				r.Put("/{id}/requests/{requestId}", h.RespondToRequest)
				r.Get("/{id}/chat", h.Chat)
				r.Delete("/{id}", h.Delete)
			})
		})

		r.Route("/launch", func(r chi.Router) {
			h := launches.NewHandler(s.storage)

			r.Get("/", h.List)
			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Post("/", h.Create)
				r.Put("/{id}/upvote", h.Upvote)
				r.Post("/{id}/comment", h.Comment)
			})
		})

		r.Route("/grants", func(r chi.Router) {
			h := grants.NewHandler(s.storage)

			r.Get("/", h.List)
			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Post("/", h.Create)
				r.With(middleware.RequireAdmin(s.storage.Users())).Delete("/{id}", h.Delete)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			h := profile.NewHandler(s.storage)

			r.Use(requireToken)
			r.Get("/me", h.Me)
			r.Get("/stats", h.Stats)
			r.Get("/contributions", h.Contributions)
			r.Post("/", h.Upsert)
		})

		r.Route("/subscribers", func(r chi.Router) {
			h := subscribers.NewHandler(s.storage)
			r.Post("/subscribe", h.Subscribe)
		})

		r.Route("/team", func(r chi.Router) {
			h := team.NewHandler(s.storage)

			r.Use(requireToken)
			r.Get("/match", h.Match)
			r.Post("/connect", h.Connect)
			r.Get("/user/{id}", h.User)
		})

		r.Route("/messages", func(r chi.Router) {
			h := messages.NewHandler(s.storage, s.messages, mentorships)

			r.Use(requireToken)
			r.Post("/", h.Send)
			r.Get("/", h.List)
			r.Post("/{id}/read", h.MarkRead)
		})

		r.Route("/users", func(r chi.Router) {
			h := users.NewHandler(s.storage)

			r.Use(requireToken)
			r.Get("/me", h.Me)
			r.Put("/me/password", h.ChangePassword)

			// Admin-only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(s.storage.Users()))
				r.Get("/", h.List)
				r.Put("/{id}/role", h.SetRole)
			})
		})

		// AI endpoints are public, so they are limited per client IP.
		r.Route("/ai", func(r chi.Router) {
			h := ai.NewHandler(s.gateway)

			r.Use(middleware.RateLimitByIP(s.aiLimiter))
			r.Post("/validate", h.Validate)
			r.Post("/roadmap", h.Roadmap)
			r.Post("/lean-canvas", h.LeanCanvas)
			r.Post("/pitch-deck", h.PitchDeck)
			r.Post("/chat", h.Chat)
		})
	})

	return r
}
