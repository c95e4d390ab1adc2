package userctx

import (
	"context"

	"github.com/blogem/crm-web/models"
)

// Context key type
type contextKey string

const userKey contextKey = "user"
const requestIDKey contextKey = "request_id"

// SetUser adds the session user to request context
func SetUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the session user from request context, or nil
func GetUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetUsername retrieves the session username from request context
func GetUsername(ctx context.Context) string {
	user := GetUser(ctx)
	if user == nil || user.Username == "" {
		return "anonymous"
	}
	return user.Username
}

// SetRequestID adds the request ID to request context
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request ID from request context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
