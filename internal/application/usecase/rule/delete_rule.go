package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// DeleteRuleInput represents the input for rule deletion.
type DeleteRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// DeleteRuleUseCase handles rule deletion logic.
type DeleteRuleUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewDeleteRuleUseCase creates a new DeleteRuleUseCase instance.
func NewDeleteRuleUseCase(ruleRepo adapter.RuleRepository) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute soft-deletes the rule. Transactions the rule already touched keep
// their applied-rule reference.
func (uc *DeleteRuleUseCase) Execute(ctx context.Context, input DeleteRuleInput) error {
	r, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRuleNotFound) {
			return domainerror.NewRuleError(
				domainerror.ErrCodeRuleNotFound,
				"rule not found",
				domainerror.ErrRuleNotFound,
			)
		}
		return fmt.Errorf("failed to find rule: %w", err)
	}
	if r.UserID != input.UserID {
		return domainerror.NewRuleError(
			domainerror.ErrCodeNotAuthorizedRule,
			"you are not authorized to delete this rule",
			domainerror.ErrNotAuthorizedToModifyRule,
		)
	}

	if err := uc.ruleRepo.Delete(ctx, input.RuleID); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return nil
}
