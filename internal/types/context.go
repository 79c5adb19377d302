package types

import (
	"context"

	"github.com/samber/lo"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxUserEmail ContextKey = "ctx_user_email"
	CtxRoles     ContextKey = "ctx_roles"
)

// RoleAdmin is the role required for coupon lifecycle and credit
// management operations.
const RoleAdmin = "admin"

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(CtxUserEmail).(string); ok {
		return email
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetRoles returns the roles array from the context
func GetRoles(ctx context.Context) []string {
	if roles, ok := ctx.Value(CtxRoles).([]string); ok {
		return roles
	}
	return []string{}
}

// IsAdmin reports whether the caller carries the admin role
func IsAdmin(ctx context.Context) bool {
	return lo.Contains(GetRoles(ctx), RoleAdmin)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetUserEmail sets the user email in the context
func SetUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, CtxUserEmail, email)
}

// SetRoles sets the roles array in the context
func SetRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, CtxRoles, roles)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}
