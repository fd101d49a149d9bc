// Package api provides the HTTP REST API server.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/good-yellow-bee/innohub/internal/api/auth"
	"github.com/good-yellow-bee/innohub/internal/api/health"
	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/assist"
	"github.com/good-yellow-bee/innohub/internal/messaging"
	"github.com/good-yellow-bee/innohub/internal/storage"
	"github.com/good-yellow-bee/innohub/pkg/config"
)

// Config contains HTTP API server configuration.
type Config struct {
	Address     string
	JWTSecret   []byte
	Issuer      string
	TokenTTL    time.Duration
	CORSOrigins []string
	// AIRateLimitPerIP bounds requests per minute to the assist endpoints.
	AIRateLimitPerIP int
	Verbose          bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":5000"
	}
	if c.Issuer == "" {
		c.Issuer = auth.DefaultIssuer
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 5 * 24 * time.Hour
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.AIRateLimitPerIP == 0 {
		c.AIRateLimitPerIP = 30
	}
}

// Server is the HTTP API server.
type Server struct {
	config        *Config
	storage       storage.Storage
	gateway       *assist.Gateway
	messages      *messaging.Store
	tokens        *auth.JWTService
	aiLimiter     *middleware.RateLimiter
	server        *http.Server
	healthHandler *health.Handler
}

// New creates a new API server. A nil gateway serves assist templates.
func New(cfg *Config, store storage.Storage, gateway *assist.Gateway) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if gateway == nil {
		gateway = assist.New(nil)
	}

	cfg.SetDefaults()

	s := &Server{
		config:        cfg,
		storage:       store,
		gateway:       gateway,
		messages:      messaging.NewStore(),
		tokens:        auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL, cfg.Issuer),
		aiLimiter:     middleware.NewRateLimiter(cfg.AIRateLimitPerIP),
		healthHandler: health.NewHandler(config.Version),
	}
	s.healthHandler.RegisterChecker(health.NewStorageChecker(store))
	s.healthHandler.RegisterChecker(health.NewAssistChecker(gateway.Provider))

	s.server = &http.Server{
		Addr:        cfg.Address,
		Handler:     s.setupRouter(),
		ReadTimeout: 15 * time.Second,
		// Remote assist calls are bounded by their own client timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Tokens returns the token service used to sign and verify auth tokens.
func (s *Server) Tokens() *auth.JWTService {
	return s.tokens
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		log.Info().Str("address", s.config.Address).Msg("HTTP API listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down HTTP API server")
		s.aiLimiter.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		s.aiLimiter.Stop()
		return err
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}

// RegisterHealthChecker adds a health checker to the server.
func (s *Server) RegisterHealthChecker(c health.Checker) {
	s.healthHandler.RegisterChecker(c)
}
