// Package jobs runs the background sweep over due recurring schedules.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ledgerflow/backend/internal/application/usecase/recurring"
)

// sweepTimeout bounds a single sweep run.
const sweepTimeout = 5 * time.Minute

// Scheduler drives the periodic recurring-transaction sweep.
type Scheduler struct {
	cron  *cron.Cron
	sweep *recurring.RunDueSchedulesUseCase
}

// NewScheduler creates a scheduler around the due-schedule sweep.
func NewScheduler(sweep *recurring.RunDueSchedulesUseCase) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		sweep: sweep,
	}
}

// Start registers the sweep on the given cron schedule and starts the cron
// loop. The expression uses the standard five-field cron format.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("unable to schedule recurring sweep: %w", err)
	}

	s.cron.Start()
	slog.Info("Recurring sweep scheduled", "schedule", schedule)
	return nil
}

// Stop stops the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Recurring sweep scheduler stopped")
}

// RunOnce performs a single sweep immediately, outside the cron schedule.
func (s *Scheduler) RunOnce(ctx context.Context) (*recurring.RunDueSchedulesOutput, error) {
	return s.sweep.Execute(ctx)
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.sweep.Execute(ctx); err != nil {
		slog.Error("recurring sweep failed", "error", err)
	}
}
