package allowance

import (
	"context"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/usecase"
)

// Scheduler runs the monthly reset once a day. The reset is idempotent per
// workspace and month, so every day after the first of the month is a no-op.
type Scheduler struct {
	allowance    usecase.AllowanceUseCase
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	hourUTC      int
	runOnStartup bool
}

// NewScheduler creates a new Scheduler firing daily at hourUTC
func NewScheduler(
	allowance usecase.AllowanceUseCase,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	hourUTC int,
	runOnStartup bool,
) *Scheduler {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 0
	}
	return &Scheduler{
		allowance:    allowance,
		timeProvider: timeProvider,
		logger:       logger,
		hourUTC:      hourUTC,
		runOnStartup: runOnStartup,
	}
}

// ScheduleMonthlyReset blocks until ctx is done
func (s *Scheduler) ScheduleMonthlyReset(ctx context.Context) {
	s.logger.Info("Monthly reset scheduler started", map[string]any{
		"hour_utc":       s.hourUTC,
		"run_on_startup": s.runOnStartup,
	})

	if s.runOnStartup {
		s.runOnce(ctx)
	}

	for {
		next := nextRunTime(s.timeProvider.Now(), s.hourUTC)
		wait := s.timeProvider.Until(next)
		s.logger.Debug("Next monthly reset check scheduled", map[string]any{
			"next_run":  next.Format(time.RFC3339),
			"sleep_for": wait.Std().String(),
		})

		select {
		case <-s.timeProvider.After(wait):
			s.runOnce(ctx)
		case <-ctx.Done():
			s.logger.Info("Monthly reset scheduler stopped", nil)
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := s.timeProvider.Now()

	results, err := s.allowance.ResetAllWorkspacesAllowances(ctx, entity.TriggerSchedule)
	if err != nil {
		s.logger.Error("Scheduled monthly reset failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	summary := entity.Summarize(results)
	s.logger.Info("Scheduled monthly reset finished", map[string]any{
		"reset":    summary.Reset,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
		"duration": s.timeProvider.Since(start).Std().String(),
	})
}

// nextRunTime returns the next occurrence of hour:00 UTC strictly after now
func nextRunTime(now time.Time, hour int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
