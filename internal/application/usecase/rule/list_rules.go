package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// ListRulesInput represents the input for listing a user's rules.
type ListRulesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListRulesOutput represents the output of listing rules, ordered by
// evaluation precedence (priority descending, older rules first on ties).
type ListRulesOutput struct {
	Rules []*entity.Rule
}

// ListRulesUseCase handles listing the rules of a user.
type ListRulesUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(ruleRepo adapter.RuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute lists the user's rules.
func (uc *ListRulesUseCase) Execute(ctx context.Context, input ListRulesInput) (*ListRulesOutput, error) {
	var (
		rules []*entity.Rule
		err   error
	)
	if input.ActiveOnly {
		rules, err = uc.ruleRepo.FindActiveByUser(ctx, input.UserID)
	} else {
		rules, err = uc.ruleRepo.FindByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return &ListRulesOutput{Rules: rules}, nil
}
