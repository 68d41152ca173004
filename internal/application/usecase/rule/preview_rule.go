package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// DefaultPreviewWindow is how many recent transactions a preview run inspects.
const DefaultPreviewWindow = 200

// PreviewRuleInput represents the input for a rule preview. The candidate
// rule does not have to be persisted; previewing an edit in progress is the
// point.
type PreviewRuleInput struct {
	UserID      uuid.UUID
	Conditions  []entity.Condition
	Scope       entity.RuleScope
	WindowLimit int // Optional, defaults to DefaultPreviewWindow
}

// PreviewRuleOutput represents the output of a rule preview.
type PreviewRuleOutput struct {
	Result *entity.RulePreviewResult
}

// PreviewRuleUseCase dry-runs a candidate rule against the user's recent
// transactions without mutating anything.
type PreviewRuleUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewPreviewRuleUseCase creates a new PreviewRuleUseCase instance.
func NewPreviewRuleUseCase(transactionRepo adapter.TransactionRepository) *PreviewRuleUseCase {
	return &PreviewRuleUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute reports which recent transactions the candidate rule would match.
func (uc *PreviewRuleUseCase) Execute(ctx context.Context, input PreviewRuleInput) (*PreviewRuleOutput, error) {
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

	limit := input.WindowLimit
	if limit <= 0 {
		limit = DefaultPreviewWindow
	}

	transactions, err := uc.transactionRepo.FindRecent(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	// A throwaway active rule carries the candidate conditions through the
	// same matcher the engine uses.
	candidate := &entity.Rule{
		UserID:     input.UserID,
		Conditions: input.Conditions,
		Scope:      scope,
		IsActive:   true,
	}

	result := &entity.RulePreviewResult{}
	for _, tx := range transactions {
		if !Matches(candidate, tx) {
			continue
		}
		result.MatchingTransactions = append(result.MatchingTransactions, &entity.MatchingTransaction{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount.String(),
			Date:        tx.Date,
		})
	}
	result.MatchCount = len(result.MatchingTransactions)

	return &PreviewRuleOutput{Result: result}, nil
}
