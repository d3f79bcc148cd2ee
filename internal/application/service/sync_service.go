package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/enum"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	infraRepo "github.com/kusinapp/kusina-api/internal/infrastructure/repository"
)

// RefreshOptions controls a single refresh pass.
type RefreshOptions struct {
	// Force bypasses the once-per-session latch (manual refresh,
	// post-mutation reconciliation).
	Force bool
	// Silent lowers refresh logging to debug (background reconciliation).
	Silent bool
}

// SyncService orchestrates cache-first loading, background remote refresh and
// cache write-back, and owns the session state machine:
// unauthenticated -> cache-loaded -> fresh, any state -> unauthenticated on
// sign-out.
type SyncService struct {
	store    *state.Store
	remote   repository.RemoteService
	cache    repository.CacheStore
	identity repository.IdentityProvider
	probe    repository.ConnectivityProbe
	logger   *zap.Logger

	mu           sync.Mutex
	sessionState enum.SessionState
	refreshed    bool // one-shot latch, reset on sign-out
	lastActivity time.Time
	userID       uuid.UUID
}

// NewSyncService creates a new sync service
func NewSyncService(
	store *state.Store,
	remote repository.RemoteService,
	cache repository.CacheStore,
	identity repository.IdentityProvider,
	probe repository.ConnectivityProbe,
	logger *zap.Logger,
) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		store:    store,
		remote:   remote,
		cache:    cache,
		identity: identity,
		probe:    probe,
		logger:   logger,
	}
}

// Run consumes the identity event stream until ctx is cancelled. signed-in
// triggers a latched refresh, token-refreshed only touches the liveness
// timestamp, signed-out resets the latch and clears dataset and cache.
func (s *SyncService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.identity.Events():
			if !ok {
				return
			}
			switch ev.Type {
			case repository.SessionSignedIn:
				s.Touch()
				s.Refresh(ctx, RefreshOptions{})
			case repository.SessionTokenRefreshed:
				s.Touch()
			case repository.SessionSignedOut:
				s.signOut(ctx, ev.UserID)
			}
		}
	}
}

// Refresh runs one synchronization pass. It never returns an error and never
// wipes already-loaded state on a network failure:
//
//  1. no identity -> clear to empty defaults, unauthenticated
//  2. cache snapshot present -> replace dataset synchronously (cache-loaded)
//  3. online -> fetch all collections in parallel, replace wholesale, write
//     the fresh dataset and sync timestamp back to the cache (fresh)
//  4. offline -> the cache-derived dataset stays authoritative this session
func (s *SyncService) Refresh(ctx context.Context, opts RefreshOptions) {
	if !s.acquireLatch(opts.Force) {
		s.logger.Debug("refresh skipped, session already refreshed")
		return
	}

	userID, ok := s.identity.CurrentUserID()
	if !ok {
		// Logged out is not an error.
		s.store.Clear()
		s.setState(enum.SessionUnauthenticated, uuid.Nil)
		return
	}
	ctx = infraRepo.WithUser(ctx, userID)

	snap, err := s.cache.Load(ctx, userID)
	if err != nil {
		s.logger.Warn("cache load failed", zap.Error(err))
	}
	if snap != nil {
		s.store.Replace(snap.Dataset())
	} else {
		s.store.Clear()
	}
	s.setState(enum.SessionCacheLoaded, userID)

	if !s.probe.IsOnline(ctx) {
		s.log(opts.Silent, "offline, keeping cached dataset", zap.String("user_id", userID.String()))
		return
	}

	fetched, err := s.fetchAll(ctx)
	if err != nil {
		// Degrade to whatever step 2 loaded; log only.
		s.logger.Warn("remote refresh failed, keeping current dataset", zap.Error(err))
		return
	}

	now := time.Now().UnixMilli()
	fetched.LastSync = now
	s.store.Replace(*fetched)
	s.setState(enum.SessionFresh, userID)

	if err := s.cache.Save(ctx, userID, repository.SnapshotOf(s.store.Snapshot(), now)); err != nil {
		s.logger.Warn("cache write-back failed", zap.Error(err))
	}
	s.log(opts.Silent, "refresh complete",
		zap.String("user_id", userID.String()),
		zap.Int("ingredients", len(fetched.Ingredients)),
		zap.Int("recipes", len(fetched.Recipes)),
	)
}

// Reconcile discards unconfirmed optimistic state by re-fetching remote truth.
// Called by the mutation engine on any remote failure.
func (s *SyncService) Reconcile(ctx context.Context) {
	s.Refresh(ctx, RefreshOptions{Force: true, Silent: true})
}

// State reports the current session state.
func (s *SyncService) State() enum.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionState
}

// LastActivity reports the session liveness timestamp.
func (s *SyncService) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Touch records session activity (sign-in, token refresh).
func (s *SyncService) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

// LastSync reports when the dataset was last confirmed against the remote.
func (s *SyncService) LastSync() int64 {
	return s.store.Snapshot().LastSync
}

func (s *SyncService) acquireLatch(force bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refreshed && !force {
		return false
	}
	s.refreshed = true
	return true
}

func (s *SyncService) setState(st enum.SessionState, userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionState = st
	s.userID = userID
}

func (s *SyncService) signOut(ctx context.Context, userID uuid.UUID) {
	s.mu.Lock()
	s.refreshed = false
	s.sessionState = enum.SessionUnauthenticated
	if userID == uuid.Nil {
		userID = s.userID
	}
	s.userID = uuid.Nil
	s.mu.Unlock()

	s.store.Clear()
	if userID != uuid.Nil {
		if err := s.cache.Clear(ctx, userID); err != nil {
			s.logger.Warn("cache clear failed", zap.Error(err))
		}
	}
	s.logger.Info("session cleared")
}

// fetchAll loads the five collections in parallel. Any failure aborts the
// whole pass so a refresh is always all-or-nothing.
func (s *SyncService) fetchAll(ctx context.Context) (*entity.Dataset, error) {
	ds := entity.NewDataset()

	var wg sync.WaitGroup
	errs := make([]error, 5)

	wg.Add(5)
	go func() {
		defer wg.Done()
		ds.Ingredients, errs[0] = s.remote.Ingredients().List(ctx)
	}()
	go func() {
		defer wg.Done()
		ds.Recipes, errs[1] = s.remote.Recipes().List(ctx)
	}()
	go func() {
		defer wg.Done()
		ds.Expenses, errs[2] = s.remote.Expenses().List(ctx)
	}()
	go func() {
		defer wg.Done()
		ds.Snapshots, errs[3] = s.remote.Snapshots().List(ctx)
	}()
	go func() {
		defer wg.Done()
		var settings *entity.Settings
		settings, errs[4] = s.remote.Settings().Fetch(ctx)
		if settings != nil {
			ds.Settings = *settings
		}
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	ds.Normalize()
	return &ds, nil
}

func (s *SyncService) log(silent bool, msg string, fields ...zap.Field) {
	if silent {
		s.logger.Debug(msg, fields...)
		return
	}
	s.logger.Info(msg, fields...)
}
