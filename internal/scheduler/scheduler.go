package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/config"
	"github.com/kusinapp/kusina-api/internal/infrastructure/identity"
	infraRepo "github.com/kusinapp/kusina-api/internal/infrastructure/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

// Scheduler manages scheduled tasks: the end-of-day snapshot capture and the
// session inactivity sweep.
type Scheduler struct {
	cron          *cron.Cron
	projectionSvc *service.ProjectionService
	syncSvc       *service.SyncService
	provider      *identity.Provider
	cfg           *config.Config
	logger        *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(
	cfg *config.Config,
	projectionSvc *service.ProjectionService,
	syncSvc *service.SyncService,
	provider *identity.Provider,
	logger *zap.Logger,
) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:          cron.New(),
		projectionSvc: projectionSvc,
		syncSvc:       syncSvc,
		provider:      provider,
		cfg:           cfg,
		logger:        logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	spec := s.cfg.Scheduler.SnapshotCron
	if spec == "" {
		// Midnight, so the captured figures cover the day that just ended.
		spec = "0 0 * * *"
	}
	if _, err := s.cron.AddFunc(spec, s.captureDailySnapshot); err != nil {
		s.logger.Error("failed to schedule snapshot capture", zap.Error(err))
	}

	if s.cfg.Session.InactivityTimeout > 0 {
		if _, err := s.cron.AddFunc("* * * * *", s.sweepInactiveSession); err != nil {
			s.logger.Error("failed to schedule inactivity sweep", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) captureDailySnapshot() {
	userID, ok := s.provider.CurrentUserID()
	if !ok {
		s.logger.Debug("snapshot capture skipped, no active session")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = infraRepo.WithUser(ctx, userID)

	snap, err := s.projectionSvc.CaptureSnapshot(ctx)
	if err != nil {
		if appErr := apperror.GetAppError(err); appErr.Code == 409 {
			s.logger.Debug("snapshot already captured today")
			return
		}
		s.logger.Error("scheduled snapshot capture failed", zap.Error(err))
		return
	}
	s.logger.Info("daily snapshot captured",
		zap.String("date", snap.Date),
		zap.Float64("net_profit", snap.NetProfit),
	)
}

// sweepInactiveSession force-expires a session whose last activity is older
// than the configured timeout. The resulting signed-out event flows through
// the sync controller and clears dataset and cache.
func (s *Scheduler) sweepInactiveSession() {
	if !s.provider.IsAuthenticated() {
		return
	}
	last := s.syncSvc.LastActivity()
	if last.IsZero() {
		return
	}
	if time.Since(last) < s.cfg.Session.InactivityTimeout {
		return
	}
	s.logger.Info("session expired due to inactivity",
		zap.Time("last_activity", last),
		zap.Duration("timeout", s.cfg.Session.InactivityTimeout),
	)
	s.provider.Logout()
}
