package repository

import (
	"context"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
)

// Collection is the uniform remote contract for one entity collection. The
// store is authoritative: Create returns the persisted entity carrying the
// authoritative id, Update applies a partial field set, and there are no
// cross-entity transactions.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id entity.EntityID, fields map[string]interface{}) error
	Delete(ctx context.Context, id entity.EntityID) error
}

// SettingsRemote is the singleton-per-user settings contract.
type SettingsRemote interface {
	// Fetch returns nil when the user has no stored settings yet.
	Fetch(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}

// RemoteService aggregates the per-collection remote contracts consumed by
// the synchronization and mutation engines.
type RemoteService interface {
	Ingredients() Collection[entity.Ingredient]
	Recipes() Collection[entity.Recipe]
	Expenses() Collection[entity.Expense]
	Snapshots() Collection[entity.DailySnapshot]
	Settings() SettingsRemote
}
