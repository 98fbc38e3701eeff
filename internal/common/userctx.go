package common

import (
	"context"
	"strings"
)

// DefaultUserID scopes history and preferences when no user header is sent.
const DefaultUserID = "default"

// UserContext holds per-request user identity injected via the X-Folio-User-ID
// header. When absent (nil), the server operates in single-tenant mode.
type UserContext struct {
	UserID string
}

type contextKey int

const (
	userContextKey contextKey = iota
)

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or "default" when no user context is present.
// Used by services and storage operations that need a user scope.
func ResolveUserID(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil {
		if id := strings.TrimSpace(uc.UserID); id != "" {
			return id
		}
	}
	return DefaultUserID
}
