package handlers

import (
	"context"
	"net/http"
)

type contextKey string

// UserIDContextKey is where the auth middleware stores the authenticated
// user's id.
const UserIDContextKey contextKey = "user_id"

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// userIDFromContext resolves the current user set by the auth middleware.
func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// ContextWithUserID is used by the middleware (and tests) to attach the
// resolved user.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// ContextSession adapts the request-context user to the mobile core's session
// interface, so favorites logic never reads ambient global state.
type ContextSession struct{}

func (ContextSession) CurrentUserID(ctx context.Context) (string, bool) {
	return userIDFromContext(ctx)
}
