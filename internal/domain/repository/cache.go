package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
)

// DatasetSnapshot is the cache payload: the last-known dataset plus the time
// it was synced. Loaders must tolerate missing or partial fields; callers
// normalize the result before use.
type DatasetSnapshot struct {
	Ingredients         []entity.Ingredient    `json:"ingredients"`
	Recipes             []entity.Recipe        `json:"recipes"`
	Settings            entity.Settings        `json:"settings"`
	Expenses            []entity.Expense       `json:"expenses"`
	Snapshots           []entity.DailySnapshot `json:"daily_snapshots"`
	LastSyncEpochMillis int64                  `json:"last_sync_epoch_millis"`
}

// Dataset converts the cache payload into a normalized dataset.
func (s *DatasetSnapshot) Dataset() entity.Dataset {
	ds := entity.Dataset{
		Ingredients: s.Ingredients,
		Recipes:     s.Recipes,
		Settings:    s.Settings,
		Expenses:    s.Expenses,
		Snapshots:   s.Snapshots,
		LastSync:    s.LastSyncEpochMillis,
	}
	ds.Normalize()
	return ds
}

// SnapshotOf builds a cache payload from a dataset.
func SnapshotOf(ds entity.Dataset, syncedAtMillis int64) *DatasetSnapshot {
	return &DatasetSnapshot{
		Ingredients:         ds.Ingredients,
		Recipes:             ds.Recipes,
		Settings:            ds.Settings,
		Expenses:            ds.Expenses,
		Snapshots:           ds.Snapshots,
		LastSyncEpochMillis: syncedAtMillis,
	}
}

// CacheStore persists the last-known dataset snapshot per user so a session
// can show data before any network round trip completes.
type CacheStore interface {
	Save(ctx context.Context, userID uuid.UUID, snap *DatasetSnapshot) error
	// Load returns nil, nil when no snapshot exists for the user.
	Load(ctx context.Context, userID uuid.UUID) (*DatasetSnapshot, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}
