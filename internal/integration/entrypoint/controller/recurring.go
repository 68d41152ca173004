// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/application/usecase/recurring"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring schedule endpoints.
type RecurringController struct {
	createUseCase    *recurring.CreateScheduleUseCase
	listUseCase      *recurring.ListSchedulesUseCase
	updateUseCase    *recurring.UpdateScheduleUseCase
	deleteUseCase    *recurring.DeleteScheduleUseCase
	processUseCase   *recurring.ProcessScheduleUseCase
	skipUseCase      *recurring.SkipOccurrenceUseCase
	setActiveUseCase *recurring.SetScheduleActiveUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateScheduleUseCase,
	listUseCase *recurring.ListSchedulesUseCase,
	updateUseCase *recurring.UpdateScheduleUseCase,
	deleteUseCase *recurring.DeleteScheduleUseCase,
	processUseCase *recurring.ProcessScheduleUseCase,
	skipUseCase *recurring.SkipOccurrenceUseCase,
	setActiveUseCase *recurring.SetScheduleActiveUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		processUseCase:   processUseCase,
		skipUseCase:      skipUseCase,
		setActiveUseCase: setActiveUseCase,
	}
}

// Create handles POST /recurring requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
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

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date format, expected YYYY-MM-DD",
		})
		return
	}

	interval := req.Interval
	if interval == 0 {
		interval = 1
	}

	input := recurring.CreateScheduleInput{
		UserID:      userID,
		Description: req.Description,
		Amount:      amount,
		Type:        entity.TransactionType(req.Type),
		AccountID:   accountID,
		Frequency:   entity.Frequency(req.Frequency),
		Interval:    interval,
		DayOfMonth:  req.DayOfMonth,
		StartDate:   startDate,
		AutoProcess: req.AutoProcess,
	}

	if req.DestinationAccountID != nil {
		destID, err := uuid.Parse(*req.DestinationAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid destination account ID format",
			})
			return
		}
		input.DestinationAccountID = &destID
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.DayOfWeek != nil {
		dayOfWeek := time.Weekday(*req.DayOfWeek)
		input.DayOfWeek = &dayOfWeek
	}
	if req.MonthOfYear != nil {
		monthOfYear := time.Month(*req.MonthOfYear)
		input.MonthOfYear = &monthOfYear
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format, expected YYYY-MM-DD",
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToScheduleResponse(output.Schedule))
}

// List handles GET /recurring requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListSchedulesInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve schedules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleListResponse(output.Schedules))
}

// Update handles PATCH /recurring/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid schedule ID format",
		})
		return
	}

	var req dto.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := recurring.UpdateScheduleInput{
		ScheduleID:  scheduleID,
		UserID:      userID,
		Description: req.Description,
		Interval:    req.Interval,
		DayOfMonth:  req.DayOfMonth,
		AutoProcess: req.AutoProcess,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
			})
			return
		}
		input.Amount = &amount
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Frequency != nil {
		frequency := entity.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}
	if req.DayOfWeek != nil {
		dayOfWeek := time.Weekday(*req.DayOfWeek)
		input.DayOfWeek = &dayOfWeek
	}
	if req.MonthOfYear != nil {
		monthOfYear := time.Month(*req.MonthOfYear)
		input.MonthOfYear = &monthOfYear
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format, expected YYYY-MM-DD",
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleResponse(output.Schedule))
}

// Delete handles DELETE /recurring/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid schedule ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteScheduleInput{
		ScheduleID: scheduleID,
		UserID:     userID,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Process handles POST /recurring/:id/process requests. It materializes the
// pending occurrence immediately instead of waiting for the sweep.
func (c *RecurringController) Process(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid schedule ID format",
		})
		return
	}

	// The body is optional; an empty body means a plain non-forced run.
	var req dto.ProcessScheduleRequest
	_ = ctx.ShouldBindJSON(&req)

	output, err := c.processUseCase.Execute(ctx.Request.Context(), recurring.ProcessScheduleInput{
		ScheduleID: scheduleID,
		UserID:     userID,
		Force:      req.Force,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ProcessScheduleResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Schedule:    dto.ToScheduleResponse(output.Schedule),
	})
}

// Skip handles POST /recurring/:id/skip requests.
func (c *RecurringController) Skip(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid schedule ID format",
		})
		return
	}

	output, err := c.skipUseCase.Execute(ctx.Request.Context(), recurring.SkipOccurrenceInput{
		ScheduleID: scheduleID,
		UserID:     userID,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleResponse(output.Schedule))
}

// Pause handles POST /recurring/:id/pause requests.
func (c *RecurringController) Pause(ctx *gin.Context) {
	c.setActive(ctx, false)
}

// Resume handles POST /recurring/:id/resume requests.
func (c *RecurringController) Resume(ctx *gin.Context) {
	c.setActive(ctx, true)
}

func (c *RecurringController) setActive(ctx *gin.Context, active bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid schedule ID format",
		})
		return
	}

	output, err := c.setActiveUseCase.Execute(ctx.Request.Context(), recurring.SetScheduleActiveInput{
		ScheduleID: scheduleID,
		UserID:     userID,
		Active:     active,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleResponse(output.Schedule))
}

// handleScheduleError maps schedule errors to HTTP responses.
func (c *RecurringController) handleScheduleError(ctx *gin.Context, err error) {
	var schErr *domainerror.ScheduleError
	if errors.As(err, &schErr) {
		ctx.JSON(c.getStatusCodeForScheduleError(schErr.Code), dto.ErrorResponse{
			Error: schErr.Message,
			Code:  string(schErr.Code),
		})
		return
	}

	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: txErr.Message,
			Code:  string(txErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForScheduleError maps schedule error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForScheduleError(code domainerror.ScheduleErrorCode) int {
	switch code {
	case domainerror.ErrCodeScheduleNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedSchedule:
		return http.StatusForbidden
	case domainerror.ErrCodeScheduleNotDue:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidInterval,
		domainerror.ErrCodeInvalidAnchor:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
