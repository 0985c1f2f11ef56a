package auth

import (
	"context"
	"errors"
)

// UserContext carries the resolved identity of the caller
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

type contextKey string

const userContextKey contextKey = "auth_user"

// ErrNoUserInContext is returned when no identity has been resolved
var ErrNoUserInContext = errors.New("no user in context")

// SetUserInContext attaches a resolved identity to the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the resolved identity from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
