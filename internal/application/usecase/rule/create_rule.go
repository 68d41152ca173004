package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// CreateRuleInput represents the input for rule creation.
type CreateRuleInput struct {
	UserID      uuid.UUID
	Name        string
	Conditions  []entity.Condition
	Actions     []entity.Action
	Priority    *int // Optional, defaults to one above the user's current maximum
	Scope       entity.RuleScope
	StopOnMatch bool
}

// CreateRuleOutput represents the output of rule creation.
type CreateRuleOutput struct {
	Rule *entity.Rule
}

// CreateRuleUseCase handles rule creation logic.
type CreateRuleUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewCreateRuleUseCase creates a new CreateRuleUseCase instance.
func NewCreateRuleUseCase(ruleRepo adapter.RuleRepository) *CreateRuleUseCase {
	return &CreateRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the rule creation. A rule with no conditions is valid and
// matches every transaction within its scope; when no priority is given the
// new rule is placed above the user's existing rules.
func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*CreateRuleOutput, error) {
	if err := validateRuleName(input.Name); err != nil {
		return nil, err
	}

	scope := input.Scope
	if scope == "" {
		scope = entity.RuleScopeAll
	}
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	if err := validateConditions(input.Conditions); err != nil {
		return nil, err
	}
	if err := validateActions(input.Actions); err != nil {
		return nil, err
	}

	priority := 0
	if input.Priority != nil {
		priority = *input.Priority
	} else {
		maxPriority, err := uc.ruleRepo.GetMaxPriorityByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to determine rule priority: %w", err)
		}
		priority = maxPriority + 1
	}

	r := entity.NewRule(input.UserID, input.Name, input.Conditions, input.Actions, priority, scope, input.StopOnMatch)

	if err := uc.ruleRepo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	return &CreateRuleOutput{Rule: r}, nil
}
