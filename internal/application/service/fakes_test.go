package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
)

var errRemoteDown = errors.New("remote unavailable")

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

type fakeCollection[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) entity.EntityID
	setID func(*T, entity.EntityID)

	failList   bool
	failCreate bool
	failUpdate bool
	failDelete bool
}

func (f *fakeCollection[T]) List(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errRemoteDown
	}
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeCollection[T]) Create(ctx context.Context, item T) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		var zero T
		return zero, errRemoteDown
	}
	f.setID(&item, entity.ConfirmedID(uuid.New()))
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeCollection[T]) Update(ctx context.Context, id entity.EntityID, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errRemoteDown
	}
	return nil
}

func (f *fakeCollection[T]) Delete(ctx context.Context, id entity.EntityID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errRemoteDown
	}
	for i := range f.items {
		if f.id(f.items[i]).Equal(id) {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

type fakeSettingsRemote struct {
	mu       sync.Mutex
	stored   *entity.Settings
	failSave bool
}

func (f *fakeSettingsRemote) Fetch(ctx context.Context) (*entity.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		return nil, nil
	}
	s := *f.stored
	return &s, nil
}

func (f *fakeSettingsRemote) Save(ctx context.Context, settings *entity.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errRemoteDown
	}
	s := *settings
	f.stored = &s
	return nil
}

type fakeRemote struct {
	ingredients *fakeCollection[entity.Ingredient]
	recipes     *fakeCollection[entity.Recipe]
	expenses    *fakeCollection[entity.Expense]
	snapshots   *fakeCollection[entity.DailySnapshot]
	settings    *fakeSettingsRemote
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		ingredients: &fakeCollection[entity.Ingredient]{
			id:    func(i entity.Ingredient) entity.EntityID { return i.ID },
			setID: func(i *entity.Ingredient, id entity.EntityID) { i.ID = id },
		},
		recipes: &fakeCollection[entity.Recipe]{
			id:    func(r entity.Recipe) entity.EntityID { return r.ID },
			setID: func(r *entity.Recipe, id entity.EntityID) { r.ID = id },
		},
		expenses: &fakeCollection[entity.Expense]{
			id:    func(e entity.Expense) entity.EntityID { return e.ID },
			setID: func(e *entity.Expense, id entity.EntityID) { e.ID = id },
		},
		snapshots: &fakeCollection[entity.DailySnapshot]{
			id:    func(s entity.DailySnapshot) entity.EntityID { return s.ID },
			setID: func(s *entity.DailySnapshot, id entity.EntityID) { s.ID = id },
		},
		settings: &fakeSettingsRemote{},
	}
}

func (f *fakeRemote) Ingredients() repository.Collection[entity.Ingredient] { return f.ingredients }
func (f *fakeRemote) Recipes() repository.Collection[entity.Recipe]         { return f.recipes }
func (f *fakeRemote) Expenses() repository.Collection[entity.Expense]       { return f.expenses }
func (f *fakeRemote) Snapshots() repository.Collection[entity.DailySnapshot] {
	return f.snapshots
}
func (f *fakeRemote) Settings() repository.SettingsRemote { return f.settings }

type fakeCache struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID]*repository.DatasetSnapshot
	failLoad  bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{snapshots: make(map[uuid.UUID]*repository.DatasetSnapshot)}
}

func (f *fakeCache) Save(ctx context.Context, userID uuid.UUID, snap *repository.DatasetSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots[userID] = snap
	return nil
}

func (f *fakeCache) Load(ctx context.Context, userID uuid.UUID) (*repository.DatasetSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, errRemoteDown
	}
	return f.snapshots[userID], nil
}

func (f *fakeCache) Clear(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.snapshots, userID)
	return nil
}

func (f *fakeCache) has(userID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.snapshots[userID]
	return ok
}

type fakeIdentity struct {
	mu     sync.Mutex
	userID uuid.UUID
	authed bool
	events chan repository.SessionEvent
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{events: make(chan repository.SessionEvent, 8)}
}

func (f *fakeIdentity) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeIdentity) CurrentUserID() (uuid.UUID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID, f.authed
}

func (f *fakeIdentity) Events() <-chan repository.SessionEvent { return f.events }

func (f *fakeIdentity) signIn(userID uuid.UUID) {
	f.mu.Lock()
	f.userID = userID
	f.authed = true
	f.mu.Unlock()
}

func (f *fakeIdentity) signOut() {
	f.mu.Lock()
	f.userID = uuid.Nil
	f.authed = false
	f.mu.Unlock()
}

type fakeProbe struct {
	mu     sync.Mutex
	online bool
}

func (f *fakeProbe) IsOnline(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online
}

func (f *fakeProbe) setOnline(online bool) {
	f.mu.Lock()
	f.online = online
	f.mu.Unlock()
}

// testEnv wires a sync service against in-memory fakes with a signed-in user.
type testEnv struct {
	store    *state.Store
	remote   *fakeRemote
	cache    *fakeCache
	identity *fakeIdentity
	probe    *fakeProbe
	sync     *SyncService
	userID   uuid.UUID
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store:    state.NewStore(),
		remote:   newFakeRemote(),
		cache:    newFakeCache(),
		identity: newFakeIdentity(),
		probe:    &fakeProbe{online: true},
		userID:   uuid.New(),
	}
	env.identity.signIn(env.userID)
	env.sync = NewSyncService(env.store, env.remote, env.cache, env.identity, env.probe, zap.NewNop())
	return env
}
