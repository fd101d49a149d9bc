package middleware

import (
	"context"
	"net/http"

	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/models"
)

// UserLookup loads the account behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// RequireRole returns middleware that requires one of the allowed roles.
// Tokens carry only the user id, so the role is read from the account.
// Admin always has access. Must run after TokenAuth.
func RequireRole(users UserLookup, allowedRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				respond.Fail(w, respond.ErrNoToken)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				respond.Internal(w, r, "load user role", err)
				return
			}
			if user == nil {
				respond.Fail(w, respond.ErrNotOwner)
				return
			}

			if user.Role == models.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range allowedRoles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			respond.Fail(w, respond.ErrNotOwner)
		})
	}
}

// RequireAdmin is shorthand for RequireRole(users, RoleAdmin).
func RequireAdmin(users UserLookup) func(http.Handler) http.Handler {
	return RequireRole(users, models.RoleAdmin)
}
