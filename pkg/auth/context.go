package auth

import (
	"context"
	"errors"
)

// UserContext carries the authenticated identity through a request
type UserContext struct {
	UserID string
	Email  string
}

type contextKey string

const userContextKey contextKey = "auth.user"

// ErrNoUserInContext is returned when a handler runs without an
// authenticated identity attached
var ErrNoUserInContext = errors.New("no authenticated user in context")

// SetUserInContext attaches the authenticated user to the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
