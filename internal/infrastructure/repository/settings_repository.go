package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRemote {
	return &settingsRepository{db: db}
}

// Fetch retrieves the session user's settings, nil when none are stored yet
func (r *settingsRepository) Fetch(ctx context.Context) (*entity.Settings, error) {
	var settings entity.Settings
	err := r.db.WithContext(ctx).Scopes(UserScope(ctx)).First(&settings).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates the session user's settings row
func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	userID, ok := GetUserID(ctx)
	if !ok {
		userID = settings.UserID
	}

	var existing entity.Settings
	err := r.db.WithContext(ctx).Scopes(UserScope(ctx)).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		settings.ID = uuid.New()
		settings.UserID = userID
		return r.db.WithContext(ctx).Create(settings).Error
	}

	settings.ID = existing.ID
	settings.UserID = existing.UserID
	return r.db.WithContext(ctx).Save(settings).Error
}
