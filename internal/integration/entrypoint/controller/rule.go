// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/usecase/rule"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerflow/backend/internal/integration/entrypoint/middleware"
)

// RuleController handles automation rule endpoints.
type RuleController struct {
	createUseCase      *rule.CreateRuleUseCase
	listUseCase        *rule.ListRulesUseCase
	getUseCase         *rule.GetRuleUseCase
	updateUseCase      *rule.UpdateRuleUseCase
	deleteUseCase      *rule.DeleteRuleUseCase
	reorderUseCase     *rule.ReorderRulesUseCase
	previewUseCase     *rule.PreviewRuleUseCase
	instantiateUseCase *rule.InstantiateTemplateUseCase
}

// NewRuleController creates a new rule controller instance.
func NewRuleController(
	createUseCase *rule.CreateRuleUseCase,
	listUseCase *rule.ListRulesUseCase,
	getUseCase *rule.GetRuleUseCase,
	updateUseCase *rule.UpdateRuleUseCase,
	deleteUseCase *rule.DeleteRuleUseCase,
	reorderUseCase *rule.ReorderRulesUseCase,
	previewUseCase *rule.PreviewRuleUseCase,
	instantiateUseCase *rule.InstantiateTemplateUseCase,
) *RuleController {
	return &RuleController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		getUseCase:         getUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		reorderUseCase:     reorderUseCase,
		previewUseCase:     previewUseCase,
		instantiateUseCase: instantiateUseCase,
	}
}

// Create handles POST /rules requests.
func (c *RuleController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	actions, ok := dto.ToActions(req.Actions)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid action payload",
			Code:  string(domainerror.ErrCodeInvalidAction),
		})
		return
	}

	input := rule.CreateRuleInput{
		UserID:      userID,
		Name:        req.Name,
		Conditions:  dto.ToConditions(req.Conditions),
		Actions:     actions,
		Priority:    req.Priority,
		Scope:       entity.RuleScope(req.Scope),
		StopOnMatch: req.StopOnMatch,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRuleResponse(output.Rule))
}

// List handles GET /rules requests.
func (c *RuleController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := rule.ListRulesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active") == "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve rules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleListResponse(output.Rules))
}

// Get handles GET /rules/:id requests.
func (c *RuleController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), rule.GetRuleInput{
		RuleID: ruleID,
		UserID: userID,
	})
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleResponse(output.Rule))
}

// Update handles PATCH /rules/:id requests.
func (c *RuleController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	var req dto.UpdateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := rule.UpdateRuleInput{
		RuleID:      ruleID,
		UserID:      userID,
		Name:        req.Name,
		Priority:    req.Priority,
		IsActive:    req.IsActive,
		StopOnMatch: req.StopOnMatch,
	}

	if req.Conditions != nil {
		conditions := dto.ToConditions(*req.Conditions)
		input.Conditions = &conditions
	}
	if req.Actions != nil {
		actions, ok := dto.ToActions(*req.Actions)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid action payload",
				Code:  string(domainerror.ErrCodeInvalidAction),
			})
			return
		}
		input.Actions = &actions
	}
	if req.Scope != nil {
		scope := entity.RuleScope(*req.Scope)
		input.Scope = &scope
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleResponse(output.Rule))
}

// Delete handles DELETE /rules/:id requests.
func (c *RuleController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), rule.DeleteRuleInput{
		RuleID: ruleID,
		UserID: userID,
	})
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Reorder handles PUT /rules/reorder requests.
func (c *RuleController) Reorder(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.ReorderRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	updates := make([]entity.RulePriorityUpdate, len(req.Rules))
	for i, item := range req.Rules {
		ruleID, err := uuid.Parse(item.RuleID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid rule ID format",
			})
			return
		}
		updates[i] = entity.RulePriorityUpdate{
			ID:       ruleID,
			Priority: item.Priority,
		}
	}

	err := c.reorderUseCase.Execute(ctx.Request.Context(), rule.ReorderRulesInput{
		UserID:  userID,
		Updates: updates,
	})
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Preview handles POST /rules/preview requests.
func (c *RuleController) Preview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.PreviewRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), rule.PreviewRuleInput{
		UserID:      userID,
		Conditions:  dto.ToConditions(req.Conditions),
		Scope:       entity.RuleScope(req.Scope),
		WindowLimit: req.WindowLimit,
	})
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewRuleResponse(output.Result))
}

// ListTemplates handles GET /rules/templates requests.
func (c *RuleController) ListTemplates(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		respondUnauthenticated(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleTemplateListResponse(rule.ListTemplates()))
}

// InstantiateTemplate handles POST /rules/templates/:id requests.
func (c *RuleController) InstantiateTemplate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.InstantiateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.instantiateUseCase.Execute(ctx.Request.Context(), rule.InstantiateTemplateInput{
		UserID:     userID,
		TemplateID: ctx.Param("id"),
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleRuleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRuleResponse(output.Rule))
}

// handleRuleError maps rule errors to HTTP responses.
func (c *RuleController) handleRuleError(ctx *gin.Context, err error) {
	var ruleErr *domainerror.RuleError
	if errors.As(err, &ruleErr) {
		ctx.JSON(c.getStatusCodeForRuleError(ruleErr.Code), dto.ErrorResponse{
			Error: ruleErr.Message,
			Code:  string(ruleErr.Code),
		})
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		status := http.StatusBadRequest
		if catErr.Code == domainerror.ErrCodeCategoryNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRuleError maps rule error codes to HTTP status codes.
func (c *RuleController) getStatusCodeForRuleError(code domainerror.RuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeRuleNotFound, domainerror.ErrCodeRuleTemplateNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRuleNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedRule:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidRuleScope,
		domainerror.ErrCodeInvalidCondition,
		domainerror.ErrCodeInvalidAction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
