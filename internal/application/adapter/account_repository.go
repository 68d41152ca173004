// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts for a user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// Delete soft-deletes an account.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustBalance applies a signed delta to an account's balance as a single
	// atomic update.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}
