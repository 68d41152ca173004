package transaction

import (
	"context"
	"fmt"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

const (
	// DefaultPageSize is the page size used when none is requested.
	DefaultPageSize = 50
	// MaxPageSize caps the requested page size.
	MaxPageSize = 200
)

// ListTransactionsOutput represents one page of transactions, newest first.
type ListTransactionsOutput struct {
	Result *entity.TransactionListResult
}

// ListTransactionsUseCase handles listing and filtering transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists the transactions matching the filter.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, filter adapter.TransactionFilter) (*ListTransactionsOutput, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	result, err := uc.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &ListTransactionsOutput{Result: result}, nil
}
