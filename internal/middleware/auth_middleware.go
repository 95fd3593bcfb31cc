package middleware

import (
	"context"
	"net/http"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/auth"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// WithUser returns a context carrying an authenticated identity.
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// UserID returns the authenticated user id stored by the auth middleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Role returns the authenticated role stored by the auth middleware.
func Role(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// RequireAuth admits any request carrying a valid token cookie.
func RequireAuth(m *auth.Manager) func(http.Handler) http.Handler {
	return requireRole(m, "")
}

// RequireFaculty admits faculty tokens only.
func RequireFaculty(m *auth.Manager) func(http.Handler) http.Handler {
	return requireRole(m, "faculty")
}

// RequireStudent admits student tokens only.
func RequireStudent(m *auth.Manager) func(http.Handler) http.Handler {
	return requireRole(m, "student")
}

func requireRole(m *auth.Manager, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("token")
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := m.ValidateJWT(cookie.Value)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if role != "" && claims.Role != role {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID, claims.Role)))
		})
	}
}
