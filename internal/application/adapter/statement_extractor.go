// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// ExtractedTransaction is a transaction candidate pulled out of a raw
// statement by the extraction service.
type ExtractedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
}

// StatementExtractor defines the interface for the AI-backed statement
// extraction service. It turns unstructured statement text into transaction
// candidates; persisting them is the caller's responsibility.
type StatementExtractor interface {
	// IsAvailable reports whether the extraction service is configured.
	IsAvailable() bool

	// Extract parses statement text into transaction candidates.
	Extract(ctx context.Context, statementText string) ([]*ExtractedTransaction, error)
}
