// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/ledgerflow/backend/internal/domain/error"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/dto"
)

// respondUnauthenticated writes the standard response for requests that reach
// a protected handler without a user in context.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
