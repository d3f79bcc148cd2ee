package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

// SettingsService handles the per-user costing configuration
type SettingsService struct {
	store  *state.Store
	remote repository.RemoteService
	rec    reconciler
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *state.Store, remote repository.RemoteService, rec reconciler, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		store:  store,
		remote: remote,
		rec:    rec,
		logger: logger,
	}
}

// GetSettings returns the current in-memory settings
func (s *SettingsService) GetSettings() entity.Settings {
	return s.store.Snapshot().Settings
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	IsVATRegistered   *bool
	IsPWDSeniorActive *bool
	OtherDiscountRate *float64
	DailySalesTarget  *float64
}

// UpdateSettings applies the edit to memory synchronously and persists it.
// A failed save triggers reconciliation like any other mutation.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (entity.Settings, error) {
	if input.OtherDiscountRate != nil && (*input.OtherDiscountRate < 0 || *input.OtherDiscountRate > 50) {
		return entity.Settings{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "other_discount_rate", Message: "Discount rate must be between 0 and 50"},
		})
	}

	var updated entity.Settings
	s.store.Update(func(ds *entity.Dataset) {
		if input.IsVATRegistered != nil {
			ds.Settings.IsVATRegistered = *input.IsVATRegistered
		}
		if input.IsPWDSeniorActive != nil {
			ds.Settings.IsPWDSeniorActive = *input.IsPWDSeniorActive
		}
		if input.OtherDiscountRate != nil {
			ds.Settings.OtherDiscountRate = *input.OtherDiscountRate
		}
		if input.DailySalesTarget != nil {
			ds.Settings.DailySalesTarget = *input.DailySalesTarget
		}
		ds.Settings.ClampDiscountRate()
		updated = ds.Settings
	})

	if err := s.remote.Settings().Save(ctx, &updated); err != nil {
		s.logger.Warn("settings save failed, reconciling", zap.Error(err))
		s.rec.Reconcile(ctx)
		return updated, apperror.NewMutationError("Settings", "update", err)
	}
	return updated, nil
}
