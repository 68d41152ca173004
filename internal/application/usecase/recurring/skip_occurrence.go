package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// SkipOccurrenceInput represents the input for skipping a schedule's pending
// occurrence.
type SkipOccurrenceInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
}

// SkipOccurrenceOutput represents the output of skipping an occurrence.
type SkipOccurrenceOutput struct {
	Schedule *entity.RecurringSchedule
}

// SkipOccurrenceUseCase advances a schedule past its pending occurrence
// without materializing a transaction.
type SkipOccurrenceUseCase struct {
	scheduleRepo adapter.ScheduleRepository
}

// NewSkipOccurrenceUseCase creates a new SkipOccurrenceUseCase instance.
func NewSkipOccurrenceUseCase(scheduleRepo adapter.ScheduleRepository) *SkipOccurrenceUseCase {
	return &SkipOccurrenceUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute skips the pending occurrence.
func (uc *SkipOccurrenceUseCase) Execute(ctx context.Context, input SkipOccurrenceInput) (*SkipOccurrenceOutput, error) {
	schedule, err := uc.scheduleRepo.FindByID(ctx, input.ScheduleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrScheduleNotFound) {
			return nil, scheduleNotFound()
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	if schedule.UserID != input.UserID {
		return nil, scheduleNotFound()
	}

	schedule.NextDate = NextOccurrence(schedule, schedule.NextDate)
	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to advance schedule: %w", err)
	}
	return &SkipOccurrenceOutput{Schedule: schedule}, nil
}
