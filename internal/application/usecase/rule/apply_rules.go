package rule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// AppliedRule identifies a rule that was applied during a batch run.
type AppliedRule struct {
	RuleID uuid.UUID
	Name   string
}

// ApplyRulesOutput reports what a batch run did to the transaction.
type ApplyRulesOutput struct {
	AppliedRules       []AppliedRule
	FirstAppliedRuleID *uuid.UUID
}

// ApplyRulesUseCase runs the user's active rules against a transaction,
// mutating it in memory. The caller is responsible for persisting the
// transaction afterwards; rule application statistics are persisted here,
// independently of the transaction write.
type ApplyRulesUseCase struct {
	ruleRepository     adapter.RuleRepository
	categoryRepository adapter.CategoryRepository
	accountRepository  adapter.AccountRepository
	applicationGuard   adapter.RuleApplicationGuard
	clock              adapter.Clock
}

// NewApplyRulesUseCase creates a new ApplyRulesUseCase.
func NewApplyRulesUseCase(
	ruleRepository adapter.RuleRepository,
	categoryRepository adapter.CategoryRepository,
	accountRepository adapter.AccountRepository,
	applicationGuard adapter.RuleApplicationGuard,
	clock adapter.Clock,
) *ApplyRulesUseCase {
	return &ApplyRulesUseCase{
		ruleRepository:     ruleRepository,
		categoryRepository: categoryRepository,
		accountRepository:  accountRepository,
		applicationGuard:   applicationGuard,
		clock:              clock,
	}
}

// Execute evaluates the user's active rules against the transaction in
// priority order (highest first, creation order breaking ties) and applies
// the actions of every matching rule until a matching rule with stop-on-match
// ends the run. The transaction's applied-rule reference records the first
// rule that applied.
//
// Only the initial rule load can fail; individual action or bookkeeping
// problems degrade to a debug log and never surface to the caller.
func (uc *ApplyRulesUseCase) Execute(ctx context.Context, tx *entity.Transaction) (*ApplyRulesOutput, error) {
	rules, err := uc.ruleRepository.FindActiveByUser(ctx, tx.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active rules: %w", err)
	}

	output := &ApplyRulesOutput{}
	for _, r := range rules {
		if !uc.ApplyRule(ctx, r, tx) {
			continue
		}

		output.AppliedRules = append(output.AppliedRules, AppliedRule{RuleID: r.ID, Name: r.Name})
		if output.FirstAppliedRuleID == nil {
			ruleID := r.ID
			output.FirstAppliedRuleID = &ruleID
		}
		if r.StopOnMatch {
			break
		}
	}

	if output.FirstAppliedRuleID != nil && tx.AppliedRuleID == nil {
		tx.AppliedRuleID = output.FirstAppliedRuleID
	}
	return output, nil
}

// ApplyRule applies a single rule to the transaction if it matches, mutating
// the transaction and recording the application. It reports whether the rule
// was applied.
func (uc *ApplyRulesUseCase) ApplyRule(ctx context.Context, r *entity.Rule, tx *entity.Transaction) bool {
	if !Matches(r, tx) {
		return false
	}
	for _, action := range r.Actions {
		uc.applyAction(ctx, action, tx)
	}
	uc.recordApplication(ctx, r, tx)
	return true
}

// applyAction mutates the transaction according to a single action. Actions
// referencing a category or account the transaction's owner does not own are
// skipped, as are actions of unknown type; a rule is never partially rolled
// back because one of its actions was skipped.
func (uc *ApplyRulesUseCase) applyAction(ctx context.Context, action entity.Action, tx *entity.Transaction) {
	switch action.Type {
	case entity.ActionSetCategory:
		if action.CategoryID == nil {
			return
		}
		category, err := uc.categoryRepository.FindByID(ctx, *action.CategoryID)
		if err != nil || category.UserID != tx.UserID {
			slog.Debug("skipping set_category action",
				"categoryID", action.CategoryID, "transactionID", tx.ID, "error", err)
			return
		}
		categoryID := *action.CategoryID
		tx.CategoryID = &categoryID

	case entity.ActionSetAccount:
		if action.AccountID == nil {
			return
		}
		account, err := uc.accountRepository.FindByID(ctx, *action.AccountID)
		if err != nil || account.UserID != tx.UserID {
			slog.Debug("skipping set_account action",
				"accountID", action.AccountID, "transactionID", tx.ID, "error", err)
			return
		}
		tx.AccountID = *action.AccountID

	case entity.ActionSetNotes:
		tx.Notes = action.Notes

	case entity.ActionAddTag:
		tag := strings.TrimSpace(action.Tag)
		if tag == "" {
			return
		}
		tx.AddTag(tag)

	default:
		slog.Debug("skipping action of unknown type", "type", action.Type, "transactionID", tx.ID)
	}
}

// recordApplication bumps the rule's application statistics. The guard keeps
// retried deliveries of the same transaction from counting a rule twice; when
// it is unavailable the count is recorded anyway, preferring an occasional
// double count over losing stats.
func (uc *ApplyRulesUseCase) recordApplication(ctx context.Context, r *entity.Rule, tx *entity.Transaction) {
	if uc.applicationGuard != nil {
		first, err := uc.applicationGuard.FirstApplication(ctx, r.ID, tx.ID)
		if err != nil {
			slog.Debug("rule application guard unavailable", "ruleID", r.ID, "error", err)
		} else if !first {
			return
		}
	}

	now := uc.clock.Now()
	if err := uc.ruleRepository.RecordApplication(ctx, r.ID, now); err != nil {
		slog.Debug("failed to record rule application", "ruleID", r.ID, "error", err)
		return
	}
	r.TimesApplied++
	r.LastAppliedAt = &now
}
