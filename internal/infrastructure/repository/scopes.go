package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// UserIDKey is the context key for the session user id
const UserIDKey ctxKey = "user_id"

// UserScope returns a GORM scope that filters by the session user. Applied to
// every query against user-owned collections. Fail-safe: no user in context
// means no rows, never someone else's data.
func UserScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", userID)
	}
}

// WithUser adds the session user id to context
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID extracts the session user id from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
