package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// UpdateRuleInput represents the input for rule updates. Nil fields are left
// unchanged.
type UpdateRuleInput struct {
	RuleID      uuid.UUID
	UserID      uuid.UUID
	Name        *string
	Conditions  *[]entity.Condition
	Actions     *[]entity.Action
	Priority    *int
	IsActive    *bool
	StopOnMatch *bool
	Scope       *entity.RuleScope
}

// UpdateRuleOutput represents the output of a rule update.
type UpdateRuleOutput struct {
	Rule *entity.Rule
}

// UpdateRuleUseCase handles rule update logic.
type UpdateRuleUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewUpdateRuleUseCase creates a new UpdateRuleUseCase instance.
func NewUpdateRuleUseCase(ruleRepo adapter.RuleRepository) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the rule update.
func (uc *UpdateRuleUseCase) Execute(ctx context.Context, input UpdateRuleInput) (*UpdateRuleOutput, error) {
	r, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRuleNotFound) {
			return nil, domainerror.NewRuleError(
				domainerror.ErrCodeRuleNotFound,
				"rule not found",
				domainerror.ErrRuleNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}
	if r.UserID != input.UserID {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeNotAuthorizedRule,
			"you are not authorized to modify this rule",
			domainerror.ErrNotAuthorizedToModifyRule,
		)
	}

	if input.Name != nil {
		if err := validateRuleName(*input.Name); err != nil {
			return nil, err
		}
		r.Name = *input.Name
	}
	if input.Scope != nil {
		if err := validateScope(*input.Scope); err != nil {
			return nil, err
		}
		r.Scope = *input.Scope
	}
	if input.Conditions != nil {
		if err := validateConditions(*input.Conditions); err != nil {
			return nil, err
		}
		r.Conditions = *input.Conditions
	}
	if input.Actions != nil {
		if err := validateActions(*input.Actions); err != nil {
			return nil, err
		}
		r.Actions = *input.Actions
	}
	if input.Priority != nil {
		r.Priority = *input.Priority
	}
	if input.IsActive != nil {
		r.IsActive = *input.IsActive
	}
	if input.StopOnMatch != nil {
		r.StopOnMatch = *input.StopOnMatch
	}

	if err := uc.ruleRepo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	return &UpdateRuleOutput{Rule: r}, nil
}
