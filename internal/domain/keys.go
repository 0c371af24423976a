package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)

// UserIDFromContext returns the authenticated user id stored by the auth middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(KeyUserID).(int64)
	return id, ok && id > 0
}

// RoleFromContext returns the role of the authenticated user, if any.
func RoleFromContext(ctx context.Context) Role {
	role, _ := ctx.Value(KeyUserRole).(Role)
	return role
}
