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

// SetScheduleActiveInput represents the input for pausing or resuming a
// schedule.
type SetScheduleActiveInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
	Active     bool
}

// SetScheduleActiveOutput represents the output of pausing or resuming.
type SetScheduleActiveOutput struct {
	Schedule *entity.RecurringSchedule
}

// SetScheduleActiveUseCase pauses or resumes a schedule. Pausing keeps the
// next occurrence where it is, so a later resume picks up from the same date
// and the sweep drains any backlog that accumulated while paused.
type SetScheduleActiveUseCase struct {
	scheduleRepo adapter.ScheduleRepository
}

// NewSetScheduleActiveUseCase creates a new SetScheduleActiveUseCase instance.
func NewSetScheduleActiveUseCase(scheduleRepo adapter.ScheduleRepository) *SetScheduleActiveUseCase {
	return &SetScheduleActiveUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute toggles the schedule's active flag.
func (uc *SetScheduleActiveUseCase) Execute(ctx context.Context, input SetScheduleActiveInput) (*SetScheduleActiveOutput, error) {
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

	if input.Active {
		schedule.Resume()
	} else {
		schedule.Pause()
	}

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return &SetScheduleActiveOutput{Schedule: schedule}, nil
}
