package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// DeleteScheduleInput represents the input for schedule deletion.
type DeleteScheduleInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
}

// DeleteScheduleUseCase handles schedule deletion logic.
type DeleteScheduleUseCase struct {
	scheduleRepo adapter.ScheduleRepository
}

// NewDeleteScheduleUseCase creates a new DeleteScheduleUseCase instance.
func NewDeleteScheduleUseCase(scheduleRepo adapter.ScheduleRepository) *DeleteScheduleUseCase {
	return &DeleteScheduleUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute soft-deletes the schedule. Transactions it already materialized
// keep their back-reference.
func (uc *DeleteScheduleUseCase) Execute(ctx context.Context, input DeleteScheduleInput) error {
	schedule, err := uc.scheduleRepo.FindByID(ctx, input.ScheduleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrScheduleNotFound) {
			return scheduleNotFound()
		}
		return fmt.Errorf("failed to find schedule: %w", err)
	}
	if schedule.UserID != input.UserID {
		return scheduleNotFound()
	}

	if err := uc.scheduleRepo.Delete(ctx, input.ScheduleID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
