// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RuleScope restricts a rule to a transaction type, or "all" for no restriction.
type RuleScope string

const (
	RuleScopeAll      RuleScope = "all"
	RuleScopeIncome   RuleScope = "income"
	RuleScopeExpense  RuleScope = "expense"
	RuleScopeTransfer RuleScope = "transfer"
)

// IsValidRuleScope reports whether s is a known rule scope.
func IsValidRuleScope(s RuleScope) bool {
	switch s {
	case RuleScopeAll, RuleScopeIncome, RuleScopeExpense, RuleScopeTransfer:
		return true
	}
	return false
}

// ConditionField identifies the transaction field a condition inspects.
type ConditionField string

const (
	ConditionFieldDescription ConditionField = "description"
	ConditionFieldAmount      ConditionField = "amount"
	ConditionFieldAccount     ConditionField = "account"
	ConditionFieldCategory    ConditionField = "category"
	ConditionFieldDate        ConditionField = "date"
)

// ConditionOperator is the comparison applied between a transaction field and
// a condition value.
type ConditionOperator string

const (
	OperatorEquals             ConditionOperator = "equals"
	OperatorNotEquals          ConditionOperator = "not_equals"
	OperatorContains           ConditionOperator = "contains"
	OperatorNotContains        ConditionOperator = "not_contains"
	OperatorStartsWith         ConditionOperator = "starts_with"
	OperatorEndsWith           ConditionOperator = "ends_with"
	OperatorGreaterThan        ConditionOperator = "greater_than"
	OperatorLessThan           ConditionOperator = "less_than"
	OperatorGreaterThanOrEqual ConditionOperator = "greater_than_or_equal"
	OperatorLessThanOrEqual    ConditionOperator = "less_than_or_equal"
	OperatorRegex              ConditionOperator = "regex"
)

// Condition is a single predicate evaluated against a transaction. All
// conditions within a rule are ANDed; there is no OR grouping or nesting.
type Condition struct {
	Field    ConditionField    `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    string            `json:"value"`
}

// ActionType identifies the mutation an action performs. The set is closed;
// action execution dispatches over it exhaustively.
type ActionType string

const (
	ActionSetCategory ActionType = "set_category"
	ActionSetAccount  ActionType = "set_account"
	ActionSetNotes    ActionType = "set_notes"
	ActionAddTag      ActionType = "add_tag"
)

// Action is a single mutation applied to a matching transaction. Exactly one
// payload field is meaningful for a given Type.
type Action struct {
	Type       ActionType `json:"type"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	AccountID  *uuid.UUID `json:"account_id,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Tag        string     `json:"tag,omitempty"`
}

// Rule represents a transaction automation rule: an ordered condition list
// matched against new transactions, and an ordered action list applied when
// every condition passes. A rule with no conditions matches every transaction
// within its scope.
type Rule struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Conditions    []Condition
	Actions       []Action
	Priority      int // Higher priority rules are evaluated first
	IsActive      bool
	StopOnMatch   bool // Halt further rule evaluation once this rule applies
	Scope         RuleScope
	TimesApplied  int
	LastAppliedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewRule creates a new Rule entity.
func NewRule(
	userID uuid.UUID,
	name string,
	conditions []Condition,
	actions []Action,
	priority int,
	scope RuleScope,
	stopOnMatch bool,
) *Rule {
	now := time.Now().UTC()

	return &Rule{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Conditions:  conditions,
		Actions:     actions,
		Priority:    priority,
		IsActive:    true, // New rules are active by default
		StopOnMatch: stopOnMatch,
		Scope:       scope,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RulePriorityUpdate represents a priority update for a single rule.
type RulePriorityUpdate struct {
	ID       uuid.UUID
	Priority int
}

// MatchingTransaction represents a transaction that matched a rule during a
// preview run.
type MatchingTransaction struct {
	ID          uuid.UUID
	Description string
	Amount      string
	Date        time.Time
}

// RulePreviewResult represents the result of previewing a rule against
// historical transactions.
type RulePreviewResult struct {
	MatchingTransactions []*MatchingTransaction
	MatchCount           int
}
