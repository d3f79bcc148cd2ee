package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) repository.Collection[entity.Expense] {
	return &expenseRepository{db: db}
}

// List returns all expenses owned by the session user
func (r *expenseRepository) List(ctx context.Context) ([]entity.Expense, error) {
	var out []entity.Expense
	err := r.db.WithContext(ctx).Scopes(UserScope(ctx)).Order("created_at ASC").Find(&out).Error
	return out, err
}

// Create persists the expense under a freshly assigned authoritative id
func (r *expenseRepository) Create(ctx context.Context, item entity.Expense) (entity.Expense, error) {
	item.ID = entity.ConfirmedID(uuid.New())
	if userID, ok := GetUserID(ctx); ok {
		item.UserID = userID
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return entity.Expense{}, err
	}
	return item, nil
}

// Update applies a partial field set
func (r *expenseRepository) Update(ctx context.Context, id entity.EntityID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&entity.Expense{}).Scopes(UserScope(ctx)).
		Where("id = ?", id.UUID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Expense")
	}
	return nil
}

// Delete removes the expense
func (r *expenseRepository) Delete(ctx context.Context, id entity.EntityID) error {
	res := r.db.WithContext(ctx).Scopes(UserScope(ctx)).
		Where("id = ?", id.UUID).Delete(&entity.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Expense")
	}
	return nil
}
