package testutil

import (
	"context"

	"github.com/zurichjs/rewards/internal/types"
)

// SetupContext builds a request context authenticated as the given user
func SetupContext(userID string) context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, userID)
	ctx = types.SetRequestID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))
	return ctx
}

// SetupAdminContext builds a request context carrying the admin role
func SetupAdminContext(userID string) context.Context {
	return types.SetRoles(SetupContext(userID), []string{types.RoleAdmin})
}
