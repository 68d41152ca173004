// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerflow/backend/internal/application/usecase/rule"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// ConditionRequest represents a single rule condition in request bodies.
type ConditionRequest struct {
	Field    string `json:"field" binding:"required"`
	Operator string `json:"operator" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

// ActionRequest represents a single rule action in request bodies.
type ActionRequest struct {
	Type       string  `json:"type" binding:"required,oneof=set_category set_account set_notes add_tag"`
	CategoryID *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	AccountID  *string `json:"account_id,omitempty" binding:"omitempty,uuid"`
	Notes      string  `json:"notes,omitempty"`
	Tag        string  `json:"tag,omitempty"`
}

// CreateRuleRequest represents the request body for rule creation.
type CreateRuleRequest struct {
	Name        string             `json:"name" binding:"required,min=1,max=100"`
	Conditions  []ConditionRequest `json:"conditions"`
	Actions     []ActionRequest    `json:"actions" binding:"required,min=1"`
	Priority    *int               `json:"priority,omitempty"`
	Scope       string             `json:"scope,omitempty" binding:"omitempty,oneof=all expense income transfer"`
	StopOnMatch bool               `json:"stop_on_match,omitempty"`
}

// UpdateRuleRequest represents the request body for rule update.
type UpdateRuleRequest struct {
	Name        *string             `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Conditions  *[]ConditionRequest `json:"conditions,omitempty"`
	Actions     *[]ActionRequest    `json:"actions,omitempty" binding:"omitempty,min=1"`
	Priority    *int                `json:"priority,omitempty"`
	IsActive    *bool               `json:"is_active,omitempty"`
	StopOnMatch *bool               `json:"stop_on_match,omitempty"`
	Scope       *string             `json:"scope,omitempty" binding:"omitempty,oneof=all expense income transfer"`
}

// ReorderRuleItem is one rule's new priority in a bulk reorder.
type ReorderRuleItem struct {
	RuleID   string `json:"rule_id" binding:"required,uuid"`
	Priority int    `json:"priority"`
}

// ReorderRulesRequest represents the request body for bulk priority updates.
type ReorderRulesRequest struct {
	Rules []ReorderRuleItem `json:"rules" binding:"required,min=1"`
}

// PreviewRuleRequest represents the request body for a rule dry run.
type PreviewRuleRequest struct {
	Conditions  []ConditionRequest `json:"conditions"`
	Scope       string             `json:"scope,omitempty" binding:"omitempty,oneof=all expense income transfer"`
	WindowLimit int                `json:"window_limit,omitempty"`
}

// InstantiateTemplateRequest represents the request body for creating a rule
// from a built-in template.
type InstantiateTemplateRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// ConditionResponse represents a condition in API responses.
type ConditionResponse struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// ActionResponse represents an action in API responses.
type ActionResponse struct {
	Type       string  `json:"type"`
	CategoryID *string `json:"category_id,omitempty"`
	AccountID  *string `json:"account_id,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	Tag        string  `json:"tag,omitempty"`
}

// RuleResponse represents a single rule in API responses.
type RuleResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Conditions    []ConditionResponse `json:"conditions"`
	Actions       []ActionResponse    `json:"actions"`
	Priority      int                 `json:"priority"`
	IsActive      bool                `json:"is_active"`
	StopOnMatch   bool                `json:"stop_on_match"`
	Scope         string              `json:"scope"`
	TimesApplied  int                 `json:"times_applied"`
	LastAppliedAt *time.Time          `json:"last_applied_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// RuleListResponse represents the response for listing rules.
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// MatchingTransactionResponse is one historical transaction hit by a preview.
type MatchingTransactionResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

// PreviewRuleResponse represents the result of a rule dry run.
type PreviewRuleResponse struct {
	MatchingTransactions []MatchingTransactionResponse `json:"matching_transactions"`
	MatchCount           int                           `json:"match_count"`
}

// RuleTemplateResponse represents one built-in template in API responses.
type RuleTemplateResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Scope       string              `json:"scope"`
	Conditions  []ConditionResponse `json:"conditions"`
	StopOnMatch bool                `json:"stop_on_match"`
}

// RuleTemplateListResponse represents the template catalog.
type RuleTemplateListResponse struct {
	Templates []RuleTemplateResponse `json:"templates"`
}

// ToConditions converts condition requests to domain conditions.
func ToConditions(requests []ConditionRequest) []entity.Condition {
	conditions := make([]entity.Condition, len(requests))
	for i, req := range requests {
		conditions[i] = entity.Condition{
			Field:    entity.ConditionField(req.Field),
			Operator: entity.ConditionOperator(req.Operator),
			Value:    req.Value,
		}
	}
	return conditions
}

// ToActions converts action requests to domain actions. Malformed UUID
// payloads report ok=false.
func ToActions(requests []ActionRequest) ([]entity.Action, bool) {
	actions := make([]entity.Action, len(requests))
	for i, req := range requests {
		categoryID, ok := parseUUIDPtr(req.CategoryID)
		if !ok {
			return nil, false
		}
		accountID, ok := parseUUIDPtr(req.AccountID)
		if !ok {
			return nil, false
		}
		actions[i] = entity.Action{
			Type:       entity.ActionType(req.Type),
			CategoryID: categoryID,
			AccountID:  accountID,
			Notes:      req.Notes,
			Tag:        req.Tag,
		}
	}
	return actions, true
}

// ToRuleResponse converts a domain Rule entity to a RuleResponse DTO.
func ToRuleResponse(r *entity.Rule) RuleResponse {
	conditions := make([]ConditionResponse, len(r.Conditions))
	for i, cond := range r.Conditions {
		conditions[i] = ConditionResponse{
			Field:    string(cond.Field),
			Operator: string(cond.Operator),
			Value:    cond.Value,
		}
	}

	actions := make([]ActionResponse, len(r.Actions))
	for i, action := range r.Actions {
		actions[i] = ActionResponse{
			Type:       string(action.Type),
			CategoryID: uuidToStringPtr(action.CategoryID),
			AccountID:  uuidToStringPtr(action.AccountID),
			Notes:      action.Notes,
			Tag:        action.Tag,
		}
	}

	return RuleResponse{
		ID:            r.ID.String(),
		Name:          r.Name,
		Conditions:    conditions,
		Actions:       actions,
		Priority:      r.Priority,
		IsActive:      r.IsActive,
		StopOnMatch:   r.StopOnMatch,
		Scope:         string(r.Scope),
		TimesApplied:  r.TimesApplied,
		LastAppliedAt: r.LastAppliedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToRuleListResponse converts a list of rules to RuleListResponse.
func ToRuleListResponse(rules []*entity.Rule) RuleListResponse {
	responses := make([]RuleResponse, len(rules))
	for i, r := range rules {
		responses[i] = ToRuleResponse(r)
	}
	return RuleListResponse{Rules: responses}
}

// ToPreviewRuleResponse converts a preview result to its DTO.
func ToPreviewRuleResponse(result *entity.RulePreviewResult) PreviewRuleResponse {
	matches := make([]MatchingTransactionResponse, len(result.MatchingTransactions))
	for i, match := range result.MatchingTransactions {
		matches[i] = MatchingTransactionResponse{
			ID:          match.ID.String(),
			Description: match.Description,
			Amount:      match.Amount,
			Date:        match.Date.Format("2006-01-02"),
		}
	}
	return PreviewRuleResponse{
		MatchingTransactions: matches,
		MatchCount:           result.MatchCount,
	}
}

// ToRuleTemplateListResponse converts the template catalog to its DTO.
func ToRuleTemplateListResponse(templates []rule.RuleTemplate) RuleTemplateListResponse {
	responses := make([]RuleTemplateResponse, len(templates))
	for i, tpl := range templates {
		conditions := make([]ConditionResponse, len(tpl.Conditions))
		for j, cond := range tpl.Conditions {
			conditions[j] = ConditionResponse{
				Field:    string(cond.Field),
				Operator: string(cond.Operator),
				Value:    cond.Value,
			}
		}
		responses[i] = RuleTemplateResponse{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			Scope:       string(tpl.Scope),
			Conditions:  conditions,
			StopOnMatch: tpl.StopOnMatch,
		}
	}
	return RuleTemplateListResponse{Templates: responses}
}
