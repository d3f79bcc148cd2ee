package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/enum"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
)

func TestSyncService_Refresh_CacheFirstThenRemote(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cached := entity.Ingredient{ID: entity.ConfirmedID(newUUID(t)), Name: "Flour (cached)"}
	env.cache.Save(ctx, env.userID, &repository.DatasetSnapshot{
		Ingredients:         []entity.Ingredient{cached},
		LastSyncEpochMillis: 1000,
	})

	fresh := entity.Ingredient{ID: entity.ConfirmedID(newUUID(t)), Name: "Flour"}
	env.remote.ingredients.items = []entity.Ingredient{fresh}

	env.sync.Refresh(ctx, RefreshOptions{})

	ds := env.store.Snapshot()
	require.Len(t, ds.Ingredients, 1)
	assert.Equal(t, "Flour", ds.Ingredients[0].Name, "remote truth should replace the cached dataset")
	assert.Equal(t, enum.SessionFresh, env.sync.State())
	assert.NotZero(t, ds.LastSync)

	// The fresh dataset is written back to the cache.
	snap, err := env.cache.Load(ctx, env.userID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Len(t, snap.Ingredients, 1)
	assert.Equal(t, "Flour", snap.Ingredients[0].Name)
}

func TestSyncService_Refresh_OfflineKeepsCachedDataset(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.probe.setOnline(false)

	cached := entity.Ingredient{ID: entity.ConfirmedID(newUUID(t)), Name: "Sugar"}
	env.cache.Save(ctx, env.userID, &repository.DatasetSnapshot{
		Ingredients:         []entity.Ingredient{cached},
		LastSyncEpochMillis: 1000,
	})

	env.sync.Refresh(ctx, RefreshOptions{})

	ds := env.store.Snapshot()
	require.Len(t, ds.Ingredients, 1)
	assert.Equal(t, "Sugar", ds.Ingredients[0].Name)
	assert.Equal(t, enum.SessionCacheLoaded, env.sync.State())
	assert.Equal(t, int64(1000), ds.LastSync)
}

func TestSyncService_Refresh_RemoteFailureKeepsState(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cached := entity.Ingredient{ID: entity.ConfirmedID(newUUID(t)), Name: "Salt"}
	env.cache.Save(ctx, env.userID, &repository.DatasetSnapshot{
		Ingredients: []entity.Ingredient{cached},
	})
	env.remote.ingredients.failList = true

	env.sync.Refresh(ctx, RefreshOptions{})

	ds := env.store.Snapshot()
	require.Len(t, ds.Ingredients, 1, "a failed remote fetch must not wipe loaded state")
	assert.Equal(t, "Salt", ds.Ingredients[0].Name)
	assert.Equal(t, enum.SessionCacheLoaded, env.sync.State())
}

func TestSyncService_Refresh_PartialFetchFailureIsAllOrNothing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.remote.ingredients.items = []entity.Ingredient{{ID: entity.ConfirmedID(newUUID(t))}}
	env.remote.recipes.failList = true

	env.sync.Refresh(ctx, RefreshOptions{})

	ds := env.store.Snapshot()
	assert.Empty(t, ds.Ingredients, "one failed collection must abort the whole pass")
	assert.Equal(t, enum.SessionCacheLoaded, env.sync.State())
}

func TestSyncService_Refresh_LatchedOncePerSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.sync.Refresh(ctx, RefreshOptions{})
	require.Equal(t, enum.SessionFresh, env.sync.State())

	// A second implicit refresh is skipped even though remote data changed.
	env.remote.ingredients.items = []entity.Ingredient{{ID: entity.ConfirmedID(newUUID(t)), Name: "New"}}
	env.sync.Refresh(ctx, RefreshOptions{})
	assert.Empty(t, env.store.Snapshot().Ingredients)

	// Force bypasses the latch.
	env.sync.Refresh(ctx, RefreshOptions{Force: true})
	assert.Len(t, env.store.Snapshot().Ingredients, 1)
}

func TestSyncService_Refresh_Unauthenticated(t *testing.T) {
	env := newTestEnv()
	env.identity.signOut()

	env.sync.Refresh(context.Background(), RefreshOptions{})

	assert.Empty(t, env.store.Snapshot().Ingredients)
	assert.Equal(t, enum.SessionUnauthenticated, env.sync.State())
}

func TestSyncService_Run_SignOutClearsStoreAndCache(t *testing.T) {
	env := newTestEnv()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env.remote.ingredients.items = []entity.Ingredient{{ID: entity.ConfirmedID(newUUID(t)), Name: "Oil"}}

	go env.sync.Run(ctx)

	env.identity.events <- repository.SessionEvent{Type: repository.SessionSignedIn, UserID: env.userID, At: time.Now()}
	require.Eventually(t, func() bool {
		return env.sync.State() == enum.SessionFresh
	}, time.Second, 5*time.Millisecond)
	require.True(t, env.cache.has(env.userID))

	env.identity.signOut()
	env.identity.events <- repository.SessionEvent{Type: repository.SessionSignedOut, UserID: env.userID, At: time.Now()}
	require.Eventually(t, func() bool {
		return env.sync.State() == enum.SessionUnauthenticated
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, env.store.Snapshot().Ingredients)
	assert.False(t, env.cache.has(env.userID), "sign-out must drop the cached snapshot")

	// A new session refreshes again: the latch was reset.
	env.identity.signIn(env.userID)
	env.identity.events <- repository.SessionEvent{Type: repository.SessionSignedIn, UserID: env.userID, At: time.Now()}
	require.Eventually(t, func() bool {
		return env.sync.State() == enum.SessionFresh
	}, time.Second, 5*time.Millisecond)
}

func TestSyncService_Run_TokenRefreshOnlyTouchesLiveness(t *testing.T) {
	env := newTestEnv()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env.remote.ingredients.items = []entity.Ingredient{{ID: entity.ConfirmedID(newUUID(t))}}

	go env.sync.Run(ctx)

	env.identity.events <- repository.SessionEvent{Type: repository.SessionTokenRefreshed, UserID: env.userID, At: time.Now()}
	require.Eventually(t, func() bool {
		return !env.sync.LastActivity().IsZero()
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, env.store.Snapshot().Ingredients, "token refresh must never trigger a data refresh")
	assert.NotEqual(t, enum.SessionFresh, env.sync.State())
}
