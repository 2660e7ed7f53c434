package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/store"
)

// HousekeepingService periodically expires stale invitations and deletes
// dead sessions and password reset tokens.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a worker running every interval, one hour
// when interval is not positive.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress run has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// HousekeepingReport counts what one run changed.
type HousekeepingReport struct {
	ExpiredInvitations   int64
	DeletedSessions      int64
	DeletedPasswordResets int64
}

// RunOnce performs a single cleanup. Each step is independent; a failure is
// logged and the rest still run.
func (s *HousekeepingService) RunOnce(ctx context.Context) HousekeepingReport {
	now := clock(s.Now)
	var r HousekeepingReport
	var err error

	if r.ExpiredInvitations, err = s.Store.Invitations().ExpireStaleInvitations(ctx, now); err != nil {
		s.Logger.Error("failed to expire stale invitations", "error", err)
	}
	if r.DeletedSessions, err = s.Store.Sessions().DeleteStaleSessions(ctx, now); err != nil {
		s.Logger.Error("failed to delete stale sessions", "error", err)
	}
	if r.DeletedPasswordResets, err = s.Store.PasswordResets().DeleteStalePasswordResets(ctx, now); err != nil {
		s.Logger.Error("failed to delete stale password resets", "error", err)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"expired_invitations", r.ExpiredInvitations,
		"deleted_sessions", r.DeletedSessions,
		"deleted_password_resets", r.DeletedPasswordResets,
	)
	return r
}
