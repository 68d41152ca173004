package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// ListSchedulesInput represents the input for listing a user's schedules.
type ListSchedulesInput struct {
	UserID uuid.UUID
}

// ListSchedulesOutput represents the output of listing schedules.
type ListSchedulesOutput struct {
	Schedules []*entity.RecurringSchedule
}

// ListSchedulesUseCase handles listing the recurring schedules of a user.
type ListSchedulesUseCase struct {
	scheduleRepo adapter.ScheduleRepository
}

// NewListSchedulesUseCase creates a new ListSchedulesUseCase instance.
func NewListSchedulesUseCase(scheduleRepo adapter.ScheduleRepository) *ListSchedulesUseCase {
	return &ListSchedulesUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute lists the user's schedules.
func (uc *ListSchedulesUseCase) Execute(ctx context.Context, input ListSchedulesInput) (*ListSchedulesOutput, error) {
	schedules, err := uc.scheduleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return &ListSchedulesOutput{Schedules: schedules}, nil
}
