package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// ReorderRulesInput represents the input for bulk priority updates.
type ReorderRulesInput struct {
	UserID  uuid.UUID
	Updates []entity.RulePriorityUpdate
}

// ReorderRulesUseCase handles bulk rule priority updates, used by the
// drag-to-reorder surface.
type ReorderRulesUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewReorderRulesUseCase creates a new ReorderRulesUseCase instance.
func NewReorderRulesUseCase(ruleRepo adapter.RuleRepository) *ReorderRulesUseCase {
	return &ReorderRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute applies the priority updates. Every referenced rule must exist and
// belong to the user, otherwise nothing is changed.
func (uc *ReorderRulesUseCase) Execute(ctx context.Context, input ReorderRulesInput) error {
	if len(input.Updates) == 0 {
		return nil
	}

	owned, err := uc.ruleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	ownedIDs := make(map[uuid.UUID]struct{}, len(owned))
	for _, r := range owned {
		ownedIDs[r.ID] = struct{}{}
	}
	for _, update := range input.Updates {
		if _, ok := ownedIDs[update.ID]; !ok {
			return domainerror.NewRuleError(
				domainerror.ErrCodeRuleNotFound,
				fmt.Sprintf("rule %s not found", update.ID),
				domainerror.ErrRuleNotFound,
			)
		}
	}

	if err := uc.ruleRepo.UpdatePriorities(ctx, input.Updates); err != nil {
		return fmt.Errorf("failed to update rule priorities: %w", err)
	}
	return nil
}
