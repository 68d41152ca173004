// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ledgerflow/backend/internal/application/usecase/statementimport"
)

// ImportStatementRequest represents the request body for a statement import.
type ImportStatementRequest struct {
	AccountID     string `json:"account_id" binding:"required,uuid"`
	StatementText string `json:"statement_text" binding:"required"`
}

// SkippedRowResponse reports one statement row that could not be recorded.
type SkippedRowResponse struct {
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// ImportStatementResponse represents the result of a statement import.
type ImportStatementResponse struct {
	Imported []TransactionResponse `json:"imported"`
	Skipped  []SkippedRowResponse  `json:"skipped"`
}

// ToImportStatementResponse converts an import result to its DTO.
func ToImportStatementResponse(output *statementimport.ImportStatementOutput) ImportStatementResponse {
	imported := make([]TransactionResponse, len(output.Imported))
	for i, tx := range output.Imported {
		imported[i] = ToTransactionResponse(tx)
	}

	skipped := make([]SkippedRowResponse, len(output.Skipped))
	for i, row := range output.Skipped {
		skipped[i] = SkippedRowResponse{
			Description: row.Description,
			Reason:      row.Reason,
		}
	}

	return ImportStatementResponse{
		Imported: imported,
		Skipped:  skipped,
	}
}
