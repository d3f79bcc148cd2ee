package repository

import (
	"gorm.io/gorm"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
)

// remoteService bundles the gorm-backed collections into the aggregate the
// sync and mutation engines consume.
type remoteService struct {
	ingredients repository.Collection[entity.Ingredient]
	recipes     repository.Collection[entity.Recipe]
	expenses    repository.Collection[entity.Expense]
	snapshots   repository.Collection[entity.DailySnapshot]
	settings    repository.SettingsRemote
}

// NewRemoteService creates the authoritative remote data service backed by
// the relational store.
func NewRemoteService(db *gorm.DB) repository.RemoteService {
	return &remoteService{
		ingredients: NewIngredientRepository(db),
		recipes:     NewRecipeRepository(db),
		expenses:    NewExpenseRepository(db),
		snapshots:   NewSnapshotRepository(db),
		settings:    NewSettingsRepository(db),
	}
}

func (s *remoteService) Ingredients() repository.Collection[entity.Ingredient] {
	return s.ingredients
}

func (s *remoteService) Recipes() repository.Collection[entity.Recipe] {
	return s.recipes
}

func (s *remoteService) Expenses() repository.Collection[entity.Expense] {
	return s.expenses
}

func (s *remoteService) Snapshots() repository.Collection[entity.DailySnapshot] {
	return s.snapshots
}

func (s *remoteService) Settings() repository.SettingsRemote {
	return s.settings
}
