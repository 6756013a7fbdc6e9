package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/product-catalog-go/apperror"
)

// ContextKey is a dedicated type for context keys to avoid collisions.
type ContextKey string

// UserIDKey is the context key under which the authenticated user id is
// stored by RequireAuth.
const UserIDKey ContextKey = "userID"

// RequireAuth returns middleware that rejects requests without a valid
// bearer token and attaches the token's subject user id to the request
// context for downstream handlers.
func RequireAuth(service *Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("authorization header is missing", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
				return
			}

			userID, err := service.VerifyToken(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewContextWithUserID returns a child context carrying the authenticated
// user id.
func NewContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user id set by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
