package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
)

// ContextKey keeps request-scoped values from colliding with other packages.
type ContextKey string

const (
	UserIDCtxKey   = ContextKey("user_id")
	UserRoleCtxKey = ContextKey("user_role")
)

// WithIdentity stores the authenticated caller in ctx.
func WithIdentity(ctx context.Context, userID string, role entity.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, UserRoleCtxKey, role)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

func RoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(UserRoleCtxKey).(entity.Role)
	return role, ok
}
