package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// UpdateScheduleInput represents the input for schedule updates. Nil fields
// are left unchanged.
type UpdateScheduleInput struct {
	ScheduleID  uuid.UUID
	UserID      uuid.UUID
	Description *string
	Amount      *decimal.Decimal
	CategoryID  *uuid.UUID
	Frequency   *entity.Frequency
	Interval    *int
	DayOfWeek   *time.Weekday
	DayOfMonth  *int
	MonthOfYear *time.Month
	EndDate     *time.Time
	AutoProcess *bool
}

// UpdateScheduleOutput represents the output of a schedule update.
type UpdateScheduleOutput struct {
	Schedule *entity.RecurringSchedule
}

// UpdateScheduleUseCase handles recurring schedule update logic.
type UpdateScheduleUseCase struct {
	scheduleRepo adapter.ScheduleRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateScheduleUseCase creates a new UpdateScheduleUseCase instance.
func NewUpdateScheduleUseCase(scheduleRepo adapter.ScheduleRepository, categoryRepo adapter.CategoryRepository) *UpdateScheduleUseCase {
	return &UpdateScheduleUseCase{
		scheduleRepo: scheduleRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the schedule update. Changing the cadence recomputes the
// next occurrence from the schedule's current next date, not from today, so
// an overdue schedule stays overdue.
func (uc *UpdateScheduleUseCase) Execute(ctx context.Context, input UpdateScheduleInput) (*UpdateScheduleOutput, error) {
	schedule, err := uc.scheduleRepo.FindByID(ctx, input.ScheduleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrScheduleNotFound) {
			return nil, scheduleNotFound()
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	if schedule.UserID != input.UserID {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeNotAuthorizedSchedule,
			"you are not authorized to modify this schedule",
			domainerror.ErrNotAuthorizedToModifySchedule,
		)
	}

	if input.Description != nil {
		if *input.Description == "" || len(*input.Description) > MaxScheduleDescriptionLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description is required and must not exceed %d characters", MaxScheduleDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		schedule.Description = *input.Description
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		schedule.Amount = *input.Amount
	}
	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotOwned,
				"category not found",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}
		schedule.CategoryID = input.CategoryID
	}

	cadenceChanged := false
	if input.Frequency != nil {
		if err := validateFrequency(*input.Frequency); err != nil {
			return nil, err
		}
		schedule.Frequency = *input.Frequency
		cadenceChanged = true
	}
	if input.Interval != nil {
		if err := validateInterval(*input.Interval); err != nil {
			return nil, err
		}
		schedule.Interval = *input.Interval
		cadenceChanged = true
	}
	if input.DayOfWeek != nil || input.DayOfMonth != nil || input.MonthOfYear != nil {
		if err := validateAnchors(input.DayOfWeek, input.DayOfMonth, input.MonthOfYear); err != nil {
			return nil, err
		}
		if input.DayOfWeek != nil {
			schedule.DayOfWeek = input.DayOfWeek
		}
		if input.DayOfMonth != nil {
			schedule.DayOfMonth = input.DayOfMonth
		}
		if input.MonthOfYear != nil {
			schedule.MonthOfYear = input.MonthOfYear
		}
		cadenceChanged = true
	}
	if input.EndDate != nil {
		endDate := entity.DateOnly(*input.EndDate)
		if endDate.Before(entity.DateOnly(schedule.StartDate)) {
			return nil, anchorError("end date must not be before the start date")
		}
		schedule.EndDate = &endDate
	}
	if input.AutoProcess != nil {
		schedule.AutoProcess = *input.AutoProcess
	}

	// A cadence change realigns future occurrences by re-projecting the
	// pending occurrence under the new cadence. Never-processed schedules
	// keep their start date as the first occurrence.
	if cadenceChanged && schedule.LastProcessedAt != nil {
		schedule.NextDate = NextOccurrence(schedule, entity.DateOnly(schedule.NextDate))
	}

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return &UpdateScheduleOutput{Schedule: schedule}, nil
}
