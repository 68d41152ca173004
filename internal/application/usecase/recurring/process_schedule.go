package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// ProcessScheduleInput represents the input for processing a single schedule
// occurrence. Force materializes the occurrence even when the schedule is not
// yet due (the "process now" surface).
type ProcessScheduleInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
	Force      bool
}

// ProcessScheduleOutput represents the output of processing an occurrence.
type ProcessScheduleOutput struct {
	Transaction *entity.Transaction
	Schedule    *entity.RecurringSchedule
}

// ProcessScheduleUseCase materializes one occurrence of a recurring schedule:
// it creates the concrete transaction, applies the balance step, and advances
// the schedule to its next occurrence. Generated transactions keep a
// back-reference to the schedule and never go through the automation rule
// engine; the schedule's own category assignment is authoritative.
type ProcessScheduleUseCase struct {
	scheduleRepo    adapter.ScheduleRepository
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	clock           adapter.Clock
}

// NewProcessScheduleUseCase creates a new ProcessScheduleUseCase instance.
func NewProcessScheduleUseCase(
	scheduleRepo adapter.ScheduleRepository,
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
) *ProcessScheduleUseCase {
	return &ProcessScheduleUseCase{
		scheduleRepo:    scheduleRepo,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		clock:           clock,
	}
}

// Execute processes the schedule's pending occurrence.
func (uc *ProcessScheduleUseCase) Execute(ctx context.Context, input ProcessScheduleInput) (*ProcessScheduleOutput, error) {
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

	now := uc.clock.Now()
	if !input.Force && !schedule.IsDue(now) {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeScheduleNotDue,
			"schedule is not due yet",
			domainerror.ErrScheduleNotDue,
		)
	}

	tx, err := uc.materialize(ctx, schedule)
	if err != nil {
		return nil, err
	}

	uc.applyBalanceStep(ctx, tx)

	uc.advance(schedule, now)
	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to advance schedule: %w", err)
	}

	return &ProcessScheduleOutput{Transaction: tx, Schedule: schedule}, nil
}

// materialize creates the concrete transaction dated on the schedule's
// pending occurrence.
func (uc *ProcessScheduleUseCase) materialize(ctx context.Context, schedule *entity.RecurringSchedule) (*entity.Transaction, error) {
	tx := entity.NewTransaction(
		schedule.UserID,
		entity.DateOnly(schedule.NextDate),
		schedule.Description,
		schedule.Amount,
		schedule.Type,
		schedule.AccountID,
		schedule.CategoryID,
		"",
	)
	tx.DestinationAccountID = schedule.DestinationAccountID
	scheduleID := schedule.ID
	tx.RecurringScheduleID = &scheduleID

	if err := uc.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}
	return tx, nil
}

// applyBalanceStep mirrors the transaction workflow's balance handling:
// expenses subtract, income adds, transfers move the amount between the two
// accounts. A failed balance update is logged and left for reconciliation
// rather than rolling back the already-created transaction.
func (uc *ProcessScheduleUseCase) applyBalanceStep(ctx context.Context, tx *entity.Transaction) {
	var err error
	switch tx.Type {
	case entity.TransactionTypeExpense:
		err = uc.accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount.Neg())
	case entity.TransactionTypeIncome:
		err = uc.accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount)
	case entity.TransactionTypeTransfer:
		if err = uc.accountRepo.AdjustBalance(ctx, tx.AccountID, tx.Amount.Neg()); err == nil && tx.DestinationAccountID != nil {
			err = uc.accountRepo.AdjustBalance(ctx, *tx.DestinationAccountID, tx.Amount)
		}
	}
	if err != nil {
		slog.Error("failed to update account balance for recurring transaction",
			"transactionID", tx.ID, "accountID", tx.AccountID, "error", err)
	}
}

// advance records the processing time and moves the schedule to its next
// occurrence, computed from the occurrence just materialized.
func (uc *ProcessScheduleUseCase) advance(schedule *entity.RecurringSchedule, now time.Time) {
	processedAt := now
	schedule.LastProcessedAt = &processedAt
	schedule.NextDate = NextOccurrence(schedule, schedule.NextDate)
	schedule.UpdatedAt = now
}

func scheduleNotFound() error {
	return domainerror.NewScheduleError(
		domainerror.ErrCodeScheduleNotFound,
		"recurring schedule not found",
		domainerror.ErrScheduleNotFound,
	)
}
