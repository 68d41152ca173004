package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// CreateScheduleInput represents the input for recurring schedule creation.
type CreateScheduleInput struct {
	UserID               uuid.UUID
	Description          string
	Amount               decimal.Decimal
	Type                 entity.TransactionType
	AccountID            uuid.UUID
	DestinationAccountID *uuid.UUID // Required for transfers
	CategoryID           *uuid.UUID
	Frequency            entity.Frequency
	Interval             int
	DayOfWeek            *time.Weekday
	DayOfMonth           *int
	MonthOfYear          *time.Month
	StartDate            time.Time
	EndDate              *time.Time
	AutoProcess          *bool // Optional, defaults to true
}

// CreateScheduleOutput represents the output of schedule creation.
type CreateScheduleOutput struct {
	Schedule *entity.RecurringSchedule
}

// CreateScheduleUseCase handles recurring schedule creation logic.
type CreateScheduleUseCase struct {
	scheduleRepo adapter.ScheduleRepository
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateScheduleUseCase creates a new CreateScheduleUseCase instance.
func NewCreateScheduleUseCase(
	scheduleRepo adapter.ScheduleRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateScheduleUseCase {
	return &CreateScheduleUseCase{
		scheduleRepo: scheduleRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the schedule creation. The first occurrence is the start
// date itself.
func (uc *CreateScheduleUseCase) Execute(ctx context.Context, input CreateScheduleInput) (*CreateScheduleOutput, error) {
	if input.Description == "" || len(input.Description) > MaxScheduleDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description is required and must not exceed %d characters", MaxScheduleDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !entity.IsValidTransactionType(input.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense', 'income' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.Type == entity.TransactionTypeTransfer && input.DestinationAccountID == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingDestinationAccount,
			"transfers require a destination account",
			domainerror.ErrMissingDestinationAccount,
		)
	}
	if err := validateFrequency(input.Frequency); err != nil {
		return nil, err
	}
	if err := validateInterval(input.Interval); err != nil {
		return nil, err
	}
	if err := validateAnchors(input.DayOfWeek, input.DayOfMonth, input.MonthOfYear); err != nil {
		return nil, err
	}
	if input.EndDate != nil && entity.DateOnly(*input.EndDate).Before(entity.DateOnly(input.StartDate)) {
		return nil, anchorError("end date must not be before the start date")
	}

	if err := uc.checkOwnership(ctx, input); err != nil {
		return nil, err
	}

	schedule := entity.NewRecurringSchedule(
		input.UserID,
		input.Description,
		input.Amount,
		input.Type,
		input.AccountID,
		input.Frequency,
		input.Interval,
		entity.DateOnly(input.StartDate),
	)
	schedule.DestinationAccountID = input.DestinationAccountID
	schedule.CategoryID = input.CategoryID
	schedule.DayOfWeek = input.DayOfWeek
	schedule.DayOfMonth = input.DayOfMonth
	schedule.MonthOfYear = input.MonthOfYear
	if input.EndDate != nil {
		endDate := entity.DateOnly(*input.EndDate)
		schedule.EndDate = &endDate
	}
	if input.AutoProcess != nil {
		schedule.AutoProcess = *input.AutoProcess
	}

	if err := uc.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create recurring schedule: %w", err)
	}
	return &CreateScheduleOutput{Schedule: schedule}, nil
}

// checkOwnership verifies the referenced account, destination account and
// category belong to the user.
func (uc *CreateScheduleUseCase) checkOwnership(ctx context.Context, input CreateScheduleInput) error {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil || account.UserID != input.UserID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnAccountNotOwned,
			"account not found",
			domainerror.ErrAccountNotOwnedByUser,
		)
	}
	if input.DestinationAccountID != nil {
		destination, err := uc.accountRepo.FindByID(ctx, *input.DestinationAccountID)
		if err != nil || destination.UserID != input.UserID {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnAccountNotOwned,
				"destination account not found",
				domainerror.ErrAccountNotOwnedByUser,
			)
		}
	}
	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.UserID != input.UserID {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotOwned,
				"category not found",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}
	}
	return nil
}
