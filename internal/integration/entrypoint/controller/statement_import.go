// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/usecase/statementimport"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/middleware"
)

// StatementImportController handles statement import endpoints.
type StatementImportController struct {
	importUseCase *statementimport.ImportStatementUseCase
}

// NewStatementImportController creates a new statement import controller instance.
func NewStatementImportController(importUseCase *statementimport.ImportStatementUseCase) *StatementImportController {
	return &StatementImportController{
		importUseCase: importUseCase,
	}
}

// Import handles POST /transactions/import requests.
func (c *StatementImportController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.ImportStatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), statementimport.ImportStatementInput{
		UserID:        userID,
		AccountID:     accountID,
		StatementText: req.StatementText,
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportStatementResponse(output))
}

// handleImportError maps statement import errors to HTTP responses.
func (c *StatementImportController) handleImportError(ctx *gin.Context, err error) {
	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		status := http.StatusBadRequest
		if txErr.Code == domainerror.ErrCodeTxnAccountNotOwned {
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: txErr.Message,
			Code:  string(txErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to import statement",
	})
}
