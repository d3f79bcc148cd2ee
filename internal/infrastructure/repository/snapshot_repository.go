package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new daily snapshot repository
func NewSnapshotRepository(db *gorm.DB) repository.Collection[entity.DailySnapshot] {
	return &snapshotRepository{db: db}
}

// List returns all captured snapshots owned by the session user
func (r *snapshotRepository) List(ctx context.Context) ([]entity.DailySnapshot, error) {
	var out []entity.DailySnapshot
	err := r.db.WithContext(ctx).Scopes(UserScope(ctx)).Order("date ASC").Find(&out).Error
	return out, err
}

// Create persists the snapshot under a freshly assigned authoritative id
func (r *snapshotRepository) Create(ctx context.Context, item entity.DailySnapshot) (entity.DailySnapshot, error) {
	item.ID = entity.ConfirmedID(uuid.New())
	if userID, ok := GetUserID(ctx); ok {
		item.UserID = userID
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return entity.DailySnapshot{}, err
	}
	return item, nil
}

// Update is rejected: snapshots are append-only
func (r *snapshotRepository) Update(ctx context.Context, id entity.EntityID, fields map[string]interface{}) error {
	return apperror.NewBadRequestError("Daily snapshots are append-only")
}

// Delete is rejected: snapshots are append-only
func (r *snapshotRepository) Delete(ctx context.Context, id entity.EntityID) error {
	return apperror.NewBadRequestError("Daily snapshots are append-only")
}
