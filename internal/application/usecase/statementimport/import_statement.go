// Package statementimport contains the AI-backed statement import use case.
package statementimport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/application/usecase/transaction"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// MaxStatementLength caps the raw statement text sent to the extractor.
const MaxStatementLength = 100_000

// ImportStatementInput represents the input for a statement import.
type ImportStatementInput struct {
	UserID        uuid.UUID
	AccountID     uuid.UUID
	StatementText string
}

// SkippedRow reports an extracted candidate that could not be recorded.
type SkippedRow struct {
	Description string
	Reason      string
}

// ImportStatementOutput represents the output of a statement import.
type ImportStatementOutput struct {
	Imported []*entity.Transaction
	Skipped  []SkippedRow
}

// ImportStatementUseCase turns raw statement text into recorded transactions.
// Each extracted candidate goes through the regular transaction creation
// workflow, so automation rules categorize imported rows the same way they
// categorize manual ones.
type ImportStatementUseCase struct {
	extractor adapter.StatementExtractor
	creator   *transaction.CreateTransactionUseCase
}

// NewImportStatementUseCase creates a new ImportStatementUseCase instance.
func NewImportStatementUseCase(
	extractor adapter.StatementExtractor,
	creator *transaction.CreateTransactionUseCase,
) *ImportStatementUseCase {
	return &ImportStatementUseCase{
		extractor: extractor,
		creator:   creator,
	}
}

// Execute performs the statement import. Individual bad rows are skipped and
// reported; they never abort the rest of the import.
func (uc *ImportStatementUseCase) Execute(ctx context.Context, input ImportStatementInput) (*ImportStatementOutput, error) {
	if !uc.extractor.IsAvailable() {
		return nil, fmt.Errorf("statement extraction service is not configured")
	}
	if input.StatementText == "" {
		return nil, fmt.Errorf("statement text is required")
	}
	text := input.StatementText
	if len(text) > MaxStatementLength {
		text = text[:MaxStatementLength]
	}

	candidates, err := uc.extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract transactions from statement: %w", err)
	}

	output := &ImportStatementOutput{}
	for _, candidate := range candidates {
		created, err := uc.creator.Execute(ctx, transaction.CreateTransactionInput{
			UserID:      input.UserID,
			Date:        candidate.Date,
			Description: candidate.Description,
			Amount:      candidate.Amount,
			Type:        candidate.Type,
			AccountID:   input.AccountID,
		})
		if err != nil {
			slog.Debug("skipping extracted statement row",
				"description", candidate.Description, "error", err)
			output.Skipped = append(output.Skipped, SkippedRow{
				Description: candidate.Description,
				Reason:      err.Error(),
			})
			continue
		}
		output.Imported = append(output.Imported, created.Transaction)
	}

	return output, nil
}
