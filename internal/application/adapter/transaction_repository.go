// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// TransactionFilter holds optional filters for listing transactions.
type TransactionFilter struct {
	UserID     uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
	Page       int
	Limit      int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create persists a new transaction. Creation is a plain write: rule
	// application and balance updates are explicit workflow steps, not
	// persistence side effects.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// List retrieves transactions matching the filter, newest first.
	List(ctx context.Context, filter TransactionFilter) (*entity.TransactionListResult, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindRecent returns the user's most recent transactions, newest first
	// and capped at limit, for rule previews.
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)
}
