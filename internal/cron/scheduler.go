package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"agencydesk/internal/config"
	"agencydesk/internal/notify"
	"agencydesk/internal/repository"
)

// Scheduler manages background maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	orders   *repository.OrderRepository
	notifier *notify.Notifier
	logger   *zap.Logger
}

// New creates a new cron scheduler.
func New(cfg *config.Config, orders *repository.OrderRepository, notifier *notify.Notifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting cron scheduler...")

	schedule := s.cfg.Sweep.Schedule
	if schedule == "" {
		schedule = "@every 1h"
	}
	if _, err := s.cron.AddFunc(schedule, func() {
		s.logger.Debug("Running: stale payment sweep")
		s.stalePaymentSweep()
	}); err != nil {
		s.logger.Error("Failed to register stale payment sweep", zap.Error(err))
	}

	s.cron.Start()
	s.logger.Info("Cron scheduler started")
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// stalePaymentSweep flags orders that have sat in Verification Pending
// longer than the configured age. Read-only: the reconciler stays the sole
// writer of payment state, the sweep just surfaces stuck orders to staff.
func (s *Scheduler) stalePaymentSweep() {
	cutoff := time.Now().Add(-s.cfg.Sweep.PendingMaxAge)

	orders, err := s.orders.FindStalePending(cutoff)
	if err != nil {
		s.logger.Error("Stale payment sweep query failed", zap.Error(err))
		return
	}

	for _, order := range orders {
		s.logger.Warn("Order stuck in Verification Pending",
			zap.String("formatted_order_id", order.FormattedOrderID),
			zap.Time("last_updated", order.LastUpdated),
		)
		s.notifier.StalePayment(order.FormattedOrderID, order.LastUpdated)
	}

	if len(orders) > 0 {
		s.logger.Info("Stale payment sweep finished", zap.Int("flagged", len(orders)))
	}
}
