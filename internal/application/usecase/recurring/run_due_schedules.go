package recurring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerflow/backend/internal/application/adapter"
)

// RunDueSchedulesOutput reports what a sweep did.
type RunDueSchedulesOutput struct {
	Processed int
	Failed    int
}

// RunDueSchedulesUseCase is the periodic sweep over every due auto-process
// schedule. One failing schedule never blocks the rest of the sweep.
type RunDueSchedulesUseCase struct {
	scheduleRepo adapter.ScheduleRepository
	processor    *ProcessScheduleUseCase
	clock        adapter.Clock
}

// NewRunDueSchedulesUseCase creates a new RunDueSchedulesUseCase instance.
func NewRunDueSchedulesUseCase(
	scheduleRepo adapter.ScheduleRepository,
	processor *ProcessScheduleUseCase,
	clock adapter.Clock,
) *RunDueSchedulesUseCase {
	return &RunDueSchedulesUseCase{
		scheduleRepo: scheduleRepo,
		processor:    processor,
		clock:        clock,
	}
}

// Execute processes every due schedule. An overdue schedule that missed
// several sweeps catches up one occurrence per Execute call per schedule;
// repeated sweeps drain the backlog.
func (uc *RunDueSchedulesUseCase) Execute(ctx context.Context) (*RunDueSchedulesOutput, error) {
	now := uc.clock.Now()
	due, err := uc.scheduleRepo.FindDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load due schedules: %w", err)
	}

	output := &RunDueSchedulesOutput{}
	for _, schedule := range due {
		// The occurrence loop: a schedule can be due for more than one
		// occurrence when sweeps were missed.
		for schedule.IsDue(now) {
			result, err := uc.processor.Execute(ctx, ProcessScheduleInput{
				ScheduleID: schedule.ID,
				UserID:     schedule.UserID,
			})
			if err != nil {
				slog.Error("failed to process due schedule",
					"scheduleID", schedule.ID, "userID", schedule.UserID, "error", err)
				output.Failed++
				break
			}
			schedule = result.Schedule
			output.Processed++
		}
	}

	slog.Info("recurring schedule sweep finished",
		"due", len(due), "processed", output.Processed, "failed", output.Failed)
	return output, nil
}
