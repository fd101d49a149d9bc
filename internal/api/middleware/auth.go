package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/good-yellow-bee/innohub/internal/api/auth"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
)

// TokenHeader carries the bearer token.
const TokenHeader = "x-auth-token"

// Context keys for storing user information.
type contextKey string

const (
	userIDKey contextKey = "user_id"
	claimsKey contextKey = "claims"
)

// TokenValidator validates a raw token string.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// TokenAuth returns middleware that requires a valid x-auth-token.
func TokenAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(TokenHeader)
			if raw == "" {
				respond.Fail(w, respond.ErrNoToken)
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Str("remote", r.RemoteAddr).Msg("token rejected")
				respond.Fail(w, respond.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise continues anonymously.
func OptionalAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := r.Header.Get(TokenHeader); raw != "" {
				if claims, err := tokens.ValidateToken(raw); err == nil {
					r = r.WithContext(withClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, claims.User.ID)
	return context.WithValue(ctx, claimsKey, claims)
}

// WithUserID returns a context carrying userID, as TokenAuth would.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user ID from context.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(userIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetClaims returns the JWT claims from context.
func GetClaims(ctx context.Context) *auth.Claims {
	if v := ctx.Value(claimsKey); v != nil {
		if c, ok := v.(*auth.Claims); ok {
			return c
		}
	}
	return nil
}
