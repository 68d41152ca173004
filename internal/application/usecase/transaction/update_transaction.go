package transaction

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

// UpdateTransactionInput represents the input for transaction updates. Nil
// fields are left unchanged. Manual edits never re-run automation rules.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool
	Notes         *string
	Tags          *[]string
}

// UpdateTransactionOutput represents the output of a transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic. Amount changes
// rebalance the touched accounts by reversing the old movement and applying
// the new one.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if tx.UserID != input.UserID {
		return nil, transactionNotFound()
	}

	amountChanged := input.Amount != nil && !input.Amount.Equal(tx.Amount)
	if amountChanged {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidAmount,
			)
		}
		reverseBalanceStep(ctx, uc.accountRepo, tx)
		tx.Amount = *input.Amount
	}

	if input.Date != nil {
		tx.Date = *input.Date
	}
	if input.Description != nil {
		if *input.Description == "" || len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description is required and must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		tx.Description = *input.Description
	}
	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeNotesTooLong,
				fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
				domainerror.ErrNotesTooLong,
			)
		}
		tx.Notes = *input.Notes
	}
	if input.Tags != nil {
		tx.Tags = *input.Tags
	}
	if input.ClearCategory {
		tx.CategoryID = nil
	} else if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotOwned,
				"category not found",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}
		tx.CategoryID = input.CategoryID
	}

	if err := uc.transactionRepo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if amountChanged {
		applyBalanceStep(ctx, uc.accountRepo, tx)
	}

	return &UpdateTransactionOutput{Transaction: tx}, nil
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}
