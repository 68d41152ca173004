package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/application/usecase/rule"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID               uuid.UUID
	Date                 time.Time
	Description          string
	Amount               decimal.Decimal
	Type                 entity.TransactionType
	AccountID            uuid.UUID
	DestinationAccountID *uuid.UUID // Required for transfers
	CategoryID           *uuid.UUID
	Notes                string
	Tags                 []string
	SkipRules            bool // Bulk edits and replays opt out of automation
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction  *entity.Transaction
	AppliedRules []rule.AppliedRule
}

// CreateTransactionUseCase records a transaction. The workflow is explicit:
// validate, persist, run the automation rules, persist their mutations, then
// move account balances. Rule application is a workflow step here, never a
// persistence side effect, so other write paths stay rule-free.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	ruleEngine      *rule.ApplyRulesUseCase
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	ruleEngine *rule.ApplyRulesUseCase,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		ruleEngine:      ruleEngine,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := uc.validate(ctx, input); err != nil {
		return nil, err
	}

	tx := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.AccountID,
		input.CategoryID,
		input.Notes,
	)
	tx.DestinationAccountID = input.DestinationAccountID
	for _, tag := range input.Tags {
		tx.AddTag(tag)
	}

	if err := uc.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	output := &CreateTransactionOutput{Transaction: tx}
	if !input.SkipRules {
		ruleOutput, err := uc.ruleEngine.Execute(ctx, tx)
		if err != nil {
			// The transaction is already recorded; automation is best effort
			// at this point.
			slog.Error("failed to apply rules to transaction", "transactionID", tx.ID, "error", err)
		} else if len(ruleOutput.AppliedRules) > 0 {
			output.AppliedRules = ruleOutput.AppliedRules
			if err := uc.transactionRepo.Update(ctx, tx); err != nil {
				return nil, fmt.Errorf("failed to persist rule mutations: %w", err)
			}
		}
	}

	applyBalanceStep(ctx, uc.accountRepo, tx)

	return output, nil
}

func (uc *CreateTransactionUseCase) validate(ctx context.Context, input CreateTransactionInput) error {
	if input.Description == "" || len(input.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description is required and must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if len(input.Notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if !entity.IsValidTransactionType(input.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense', 'income' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.Type == entity.TransactionTypeTransfer && input.DestinationAccountID == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingDestinationAccount,
			"transfers require a destination account",
			domainerror.ErrMissingDestinationAccount,
		)
	}

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
