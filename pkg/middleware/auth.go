package middleware

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the acting user ID
	UserIDKey ContextKey = "user_id"
)

// defaultUserID is used when no header is present. Authentication and
// session management live in the account gateway in front of this API; this
// server only needs an identity to attribute actions to.
const defaultUserID = "local"

// UserMiddleware reads the acting user from the X-User-ID header set by the
// gateway, falling back to the local single-user identity.
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			userID = defaultUserID
		}
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the acting user ID from the request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
