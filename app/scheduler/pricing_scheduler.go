// Package scheduler runs the periodic pricing and export jobs
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/app/services"
	businessflow "github.com/jasado/jasado-middleware/business_flow"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/sirupsen/logrus"
)

const tickLockKey = "lock:scheduler:tick"

// PricingRunner runs one sales price calculation
type PricingRunner interface {
	Execute(ctx context.Context) (*dto.PricingRunResult, error)
}

// ExportBuilder rebuilds the channel export tables
type ExportBuilder interface {
	Build(ctx context.Context) (*dto.ExportBuildResult, error)
}

// LogPurger removes stored log entries past their retention
type LogPurger interface {
	PurgeLogEntries(ctx context.Context, retentionDays int) (int64, error)
}

// PricingScheduler periodically runs the pricing engine and, once prices are
// fresh for the day, the export build. Both jobs are gated by their TaskStatus.
type PricingScheduler struct {
	pricing  PricingRunner
	exports  ExportBuilder
	purger   LogPurger
	taskRepo repository.TaskStatusRepository
	locker   services.RunLocker
	logger   logrus.FieldLogger

	interval         time.Duration
	lockTTL          time.Duration
	logRetentionDays int
	now              func() time.Time
}

func NewPricingScheduler(
	pricing PricingRunner,
	exports ExportBuilder,
	purger LogPurger,
	taskRepo repository.TaskStatusRepository,
	locker services.RunLocker,
	logger logrus.FieldLogger,
	interval, lockTTL time.Duration,
	logRetentionDays int,
) *PricingScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if lockTTL <= 0 {
		lockTTL = time.Hour
	}
	return &PricingScheduler{
		pricing:          pricing,
		exports:          exports,
		purger:           purger,
		taskRepo:         taskRepo,
		locker:           locker,
		logger:           logger.WithField("component", "scheduler"),
		interval:         interval,
		lockTTL:          lockTTL,
		logRetentionDays: logRetentionDays,
		now:              utils.UTCNow,
	}
}

// Start launches the scheduler loop in a background goroutine and returns a stop function
func (s *PricingScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	s.logger.WithField("interval", s.interval.String()).Info("Scheduler started")
	return func() {
		cancel()
		<-done
		s.logger.Info("Scheduler stopped")
	}
}

func (s *PricingScheduler) runOnce(ctx context.Context) {
	release, err := s.locker.Obtain(ctx, tickLockKey, s.lockTTL)
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			s.logger.Debug("Another instance holds the scheduler tick")
			return
		}
		s.logger.WithError(err).Warn("Failed to obtain scheduler lock")
		return
	}
	defer release()

	if s.runTask(ctx, models.TaskCalculateSalesPrices, func(ctx context.Context) error {
		_, err := s.pricing.Execute(ctx)
		return err
	}) {
		s.logger.Info("Sales price calculation finished")
	}

	if s.pricesFreshToday(ctx) {
		if s.runTask(ctx, models.TaskPrepareExports, func(ctx context.Context) error {
			_, err := s.exports.Build(ctx)
			return err
		}) {
			s.logger.Info("Product export build finished")
		}
	}

	if s.purger != nil && s.logRetentionDays > 0 {
		if _, err := s.purger.PurgeLogEntries(ctx, s.logRetentionDays); err != nil {
			s.logger.WithError(err).Warn("Failed to purge old log entries")
		}
	}
}

// runTask runs job when its gate is open and records the outcome. It reports
// whether the job ran and succeeded. A job skipped because a manual run holds
// its lock leaves the task status untouched.
func (s *PricingScheduler) runTask(ctx context.Context, name string, job func(context.Context) error) bool {
	logger := s.logger.WithField("task", name)

	status, err := s.taskRepo.ByName(ctx, name)
	if err != nil {
		logger.WithError(err).Warn("Failed to read task status")
		return false
	}
	if !status.ShouldRun(s.now()) {
		return false
	}

	jobErr := job(ctx)
	if businessflow.IsRunInProgress(jobErr) {
		logger.Info("Task already running elsewhere, skipping this tick")
		return false
	}

	ok := jobErr == nil
	at := s.now()
	if ok {
		err = s.taskRepo.SetSuccess(ctx, name, at)
	} else {
		err = s.taskRepo.SetFailure(ctx, name, at)
	}
	if err != nil {
		logger.WithError(err).Error("Failed to record task status")
	}
	if !ok {
		logger.WithError(jobErr).WithField(services.LogSourceField, models.LogSourceScheduler).Warn("Task failed, retrying after back-off")
	}
	return ok
}

func (s *PricingScheduler) pricesFreshToday(ctx context.Context) bool {
	status, err := s.taskRepo.ByName(ctx, models.TaskCalculateSalesPrices)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read pricing task status")
		return false
	}
	if status == nil || !status.Status {
		return false
	}
	return utils.DateOf(status.LastRun).Equal(utils.DateOf(s.now()))
}
