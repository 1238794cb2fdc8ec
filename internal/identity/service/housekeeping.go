package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/store"
)

// HousekeepingService periodically deletes spent password reset tokens and
// audit logs past their retention. Invitations are left alone: their
// expiry is applied lazily when they are looked up.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	AuditRetention time.Duration // zero keeps audit logs forever
	Now            func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, auditRetention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:          store,
		Logger:         logger,
		Interval:       interval,
		AuditRetention: auditRetention,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass. Each deletion is independent; a failure in one
// does not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := clock(s.Now)
	s.Logger.Debug("starting housekeeping cleanup")

	if n, err := s.Store.PasswordResets().DeleteStaleResetTokens(ctx, now); err != nil {
		s.Logger.Error("failed to delete stale reset tokens", "error", err)
	} else if n > 0 {
		s.Logger.Info("deleted stale reset tokens", "count", n)
	}

	if s.AuditRetention > 0 {
		if n, err := s.Store.AuditLogs().DeleteAuditLogsBefore(ctx, now.Add(-s.AuditRetention)); err != nil {
			s.Logger.Error("failed to delete old audit logs", "error", err)
		} else if n > 0 {
			s.Logger.Info("deleted old audit logs", "count", n)
		}
	}
}
