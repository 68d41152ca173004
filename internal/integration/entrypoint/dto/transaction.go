// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerflow/backend/internal/application/usecase/rule"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for recording a transaction.
type CreateTransactionRequest struct {
	Date                 string   `json:"date" binding:"required"`
	Description          string   `json:"description" binding:"required,min=1,max=255"`
	Amount               string   `json:"amount" binding:"required"`
	Type                 string   `json:"type" binding:"required,oneof=expense income transfer"`
	AccountID            string   `json:"account_id" binding:"required,uuid"`
	DestinationAccountID *string  `json:"destination_account_id,omitempty" binding:"omitempty,uuid"`
	CategoryID           *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Notes                string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Tags                 []string `json:"tags,omitempty"`
	SkipRules            bool     `json:"skip_rules,omitempty"`
}

// UpdateTransactionRequest represents the request body for a transaction update.
// A null category_id together with clear_category removes the category.
type UpdateTransactionRequest struct {
	Date          *string   `json:"date,omitempty"`
	Description   *string   `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *string   `json:"amount,omitempty"`
	CategoryID    *string   `json:"category_id,omitempty" binding:"omitempty,uuid"`
	ClearCategory bool      `json:"clear_category,omitempty"`
	Notes         *string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Tags          *[]string `json:"tags,omitempty"`
}

// AppliedRuleResponse identifies an automation rule that fired for a transaction.
type AppliedRuleResponse struct {
	RuleID string `json:"rule_id"`
	Name   string `json:"name"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                   string            `json:"id"`
	Date                 string            `json:"date"`
	Description          string            `json:"description"`
	Amount               string            `json:"amount"`
	Type                 string            `json:"type"`
	AccountID            string            `json:"account_id"`
	DestinationAccountID *string           `json:"destination_account_id,omitempty"`
	CategoryID           *string           `json:"category_id,omitempty"`
	Category             *CategoryResponse `json:"category,omitempty"`
	AppliedRuleID        *string           `json:"applied_rule_id,omitempty"`
	RecurringScheduleID  *string           `json:"recurring_schedule_id,omitempty"`
	Tags                 []string          `json:"tags"`
	Notes                string            `json:"notes,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// CreateTransactionResponse represents the response for recording a transaction,
// including the automation rules that fired.
type CreateTransactionResponse struct {
	Transaction  TransactionResponse   `json:"transaction"`
	AppliedRules []AppliedRuleResponse `json:"applied_rules"`
}

// TransactionListResponse represents the paginated transaction listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	tags := tx.Tags
	if tags == nil {
		tags = []string{}
	}

	return TransactionResponse{
		ID:                   tx.ID.String(),
		Date:                 tx.Date.Format("2006-01-02"),
		Description:          tx.Description,
		Amount:               tx.Amount.StringFixed(2),
		Type:                 string(tx.Type),
		AccountID:            tx.AccountID.String(),
		DestinationAccountID: uuidToStringPtr(tx.DestinationAccountID),
		CategoryID:           uuidToStringPtr(tx.CategoryID),
		AppliedRuleID:        uuidToStringPtr(tx.AppliedRuleID),
		RecurringScheduleID:  uuidToStringPtr(tx.RecurringScheduleID),
		Tags:                 tags,
		Notes:                tx.Notes,
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
	}
}

// ToCreateTransactionResponse builds the creation response with applied rules.
func ToCreateTransactionResponse(tx *entity.Transaction, appliedRules []rule.AppliedRule) CreateTransactionResponse {
	rules := make([]AppliedRuleResponse, len(appliedRules))
	for i, applied := range appliedRules {
		rules[i] = AppliedRuleResponse{
			RuleID: applied.RuleID.String(),
			Name:   applied.Name,
		}
	}

	return CreateTransactionResponse{
		Transaction:  ToTransactionResponse(tx),
		AppliedRules: rules,
	}
}

// ToTransactionListResponse converts a listing result to its DTO.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	transactions := make([]TransactionResponse, len(result.Transactions))
	for i, item := range result.Transactions {
		response := ToTransactionResponse(item.Transaction)
		if item.Category != nil {
			category := ToCategoryResponse(item.Category)
			response.Category = &category
		}
		transactions[i] = response
	}

	return TransactionListResponse{
		Transactions: transactions,
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		TotalPages:   result.TotalPages,
	}
}
