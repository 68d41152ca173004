// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID         uuid.UUID
	Name           string
	Type           entity.AccountType
	OpeningBalance decimal.Decimal
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > MaxAccountNameLength {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameExists,
			fmt.Sprintf("account name is required and must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrAccountNameExists,
		)
	}
	if !isValidAccountType(input.Type) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be 'checking', 'savings', 'credit' or 'cash'",
			domainerror.ErrInvalidAccountType,
		)
	}

	existing, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check account names: %w", err)
	}
	for _, a := range existing {
		if strings.EqualFold(a.Name, name) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNameExists,
				"an account with this name already exists",
				domainerror.ErrAccountNameExists,
			)
		}
	}

	account := entity.NewAccount(input.UserID, name, input.Type, input.OpeningBalance)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &CreateAccountOutput{Account: account}, nil
}

// isValidAccountType validates the account type.
func isValidAccountType(accountType entity.AccountType) bool {
	switch accountType {
	case entity.AccountTypeChecking, entity.AccountTypeSavings, entity.AccountTypeCredit, entity.AccountTypeCash:
		return true
	}
	return false
}
