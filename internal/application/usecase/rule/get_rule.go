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

// GetRuleInput represents the input for fetching a single rule.
type GetRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// GetRuleOutput represents the output of fetching a single rule.
type GetRuleOutput struct {
	Rule *entity.Rule
}

// GetRuleUseCase handles fetching a single rule.
type GetRuleUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewGetRuleUseCase creates a new GetRuleUseCase instance.
func NewGetRuleUseCase(ruleRepo adapter.RuleRepository) *GetRuleUseCase {
	return &GetRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute fetches the rule. A rule belonging to another user is reported as
// not found rather than leaking its existence.
func (uc *GetRuleUseCase) Execute(ctx context.Context, input GetRuleInput) (*GetRuleOutput, error) {
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
			domainerror.ErrCodeRuleNotFound,
			"rule not found",
			domainerror.ErrRuleNotFound,
		)
	}
	return &GetRuleOutput{Rule: r}, nil
}
