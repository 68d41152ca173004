package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// ListAccountsUseCase handles listing the accounts of a user.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute lists the user's accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccountInput represents the input for account updates. Nil fields are
// left unchanged; balances move only through transactions.
type UpdateAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
	Name      *string
	Type      *entity.AccountType
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*entity.Account, error) {
	account, err := uc.findOwned(ctx, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > MaxAccountNameLength {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNameExists,
				fmt.Sprintf("account name is required and must not exceed %d characters", MaxAccountNameLength),
				domainerror.ErrAccountNameExists,
			)
		}
		account.Name = name
	}
	if input.Type != nil {
		if !isValidAccountType(*input.Type) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInvalidAccountType,
				"account type must be 'checking', 'savings', 'credit' or 'cash'",
				domainerror.ErrInvalidAccountType,
			)
		}
		account.Type = *input.Type
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (uc *UpdateAccountUseCase) findOwned(ctx context.Context, accountID, userID uuid.UUID) (*entity.Account, error) {
	account, err := uc.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, accountNotFound()
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != userID {
		return nil, accountNotFound()
	}
	return account, nil
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{accountRepo: accountRepo}
}

// Execute soft-deletes the account.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, accountID, userID uuid.UUID) error {
	account, err := uc.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return accountNotFound()
		}
		return fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != userID {
		return accountNotFound()
	}

	if err := uc.accountRepo.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func accountNotFound() error {
	return domainerror.NewAccountError(
		domainerror.ErrCodeAccountNotFound,
		"account not found",
		domainerror.ErrAccountNotFound,
	)
}
