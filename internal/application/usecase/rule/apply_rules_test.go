package rule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

func newEngine(ruleRepo *fakeRuleRepository, categoryRepo *fakeCategoryRepository, accountRepo *fakeAccountRepository, guard *fakeGuard) *ApplyRulesUseCase {
	clock := fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewApplyRulesUseCase(ruleRepo, categoryRepo, accountRepo, guard, clock)
}

func setCategoryAction(categoryID uuid.UUID) entity.Action {
	return entity.Action{Type: entity.ActionSetCategory, CategoryID: &categoryID}
}

func TestApplyRules_PriorityOrderAndFirstApplied(t *testing.T) {
	userID := uuid.New()
	categoryRepo := &fakeCategoryRepository{}
	groceries := entity.NewCategory(userID, "Groceries", "", "", entity.CategoryTypeExpense)
	food := entity.NewCategory(userID, "Food", "", "", entity.CategoryTypeExpense)
	_ = categoryRepo.Create(context.Background(), groceries)
	_ = categoryRepo.Create(context.Background(), food)

	low := entity.NewRule(userID, "food fallback",
		[]entity.Condition{{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "market"}},
		[]entity.Action{setCategoryAction(food.ID)}, 1, entity.RuleScopeAll, false)
	high := entity.NewRule(userID, "groceries",
		[]entity.Condition{{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "market"}},
		[]entity.Action{setCategoryAction(groceries.ID)}, 10, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{low, high}}
	engine := newEngine(ruleRepo, categoryRepo, &fakeAccountRepository{}, &fakeGuard{})

	tx := newTestTransaction("Central Market", "82.50", entity.TransactionTypeExpense)
	tx.UserID = userID

	output, err := engine.Execute(context.Background(), tx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	t.Run("both rules apply, highest priority first", func(t *testing.T) {
		if len(output.AppliedRules) != 2 {
			t.Fatalf("expected 2 applied rules, got %d", len(output.AppliedRules))
		}
		if output.AppliedRules[0].RuleID != high.ID {
			t.Errorf("expected high-priority rule first, got %s", output.AppliedRules[0].Name)
		}
	})

	t.Run("later rule overwrites the category, reference keeps the first", func(t *testing.T) {
		if tx.CategoryID == nil || *tx.CategoryID != food.ID {
			t.Errorf("expected category from the last applied rule")
		}
		if tx.AppliedRuleID == nil || *tx.AppliedRuleID != high.ID {
			t.Errorf("expected applied-rule reference to record the first applied rule")
		}
	})

	t.Run("both rules recorded stats once", func(t *testing.T) {
		if got := ruleRepo.countApplications(high.ID); got != 1 {
			t.Errorf("expected 1 application for high-priority rule, got %d", got)
		}
		if got := ruleRepo.countApplications(low.ID); got != 1 {
			t.Errorf("expected 1 application for low-priority rule, got %d", got)
		}
	})
}

func TestApplyRules_EqualPriorityCreationOrderTieBreak(t *testing.T) {
	userID := uuid.New()

	first := entity.NewRule(userID, "created first",
		[]entity.Condition{{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "market"}},
		[]entity.Action{{Type: entity.ActionAddTag, Tag: "first"}}, 5, entity.RuleScopeAll, false)
	second := entity.NewRule(userID, "created second",
		[]entity.Condition{{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "market"}},
		[]entity.Action{{Type: entity.ActionAddTag, Tag: "second"}}, 5, entity.RuleScopeAll, true)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{first, second}}
	engine := newEngine(ruleRepo, &fakeCategoryRepository{}, &fakeAccountRepository{}, &fakeGuard{})

	tx := newTestTransaction("Central Market", "12.00", entity.TransactionTypeExpense)
	tx.UserID = userID

	output, err := engine.Execute(context.Background(), tx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	t.Run("ties run in creation order", func(t *testing.T) {
		if len(output.AppliedRules) != 2 {
			t.Fatalf("expected both equal-priority rules to apply, got %d", len(output.AppliedRules))
		}
		if output.AppliedRules[0].RuleID != first.ID || output.AppliedRules[1].RuleID != second.ID {
			t.Errorf("expected creation order %q, %q; got %q, %q",
				first.Name, second.Name, output.AppliedRules[0].Name, output.AppliedRules[1].Name)
		}
	})

	t.Run("both actions land, stop-on-match ends the run after the second", func(t *testing.T) {
		if !tx.HasTag("first") || !tx.HasTag("second") {
			t.Errorf("expected tags from both rules, got %v", tx.Tags)
		}
	})

	t.Run("applied-rule reference records the earlier created rule", func(t *testing.T) {
		if tx.AppliedRuleID == nil || *tx.AppliedRuleID != first.ID {
			t.Errorf("expected applied-rule reference to be the first created rule")
		}
	})
}

func TestApplyRules_StopOnMatch(t *testing.T) {
	userID := uuid.New()
	categoryRepo := &fakeCategoryRepository{}
	subscriptions := entity.NewCategory(userID, "Subscriptions", "", "", entity.CategoryTypeExpense)
	misc := entity.NewCategory(userID, "Misc", "", "", entity.CategoryTypeExpense)
	_ = categoryRepo.Create(context.Background(), subscriptions)
	_ = categoryRepo.Create(context.Background(), misc)

	stopper := entity.NewRule(userID, "subscriptions",
		[]entity.Condition{{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "netflix"}},
		[]entity.Action{setCategoryAction(subscriptions.ID)}, 10, entity.RuleScopeAll, true)
	catchAll := entity.NewRule(userID, "catch all", nil,
		[]entity.Action{setCategoryAction(misc.ID)}, 1, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{stopper, catchAll}}
	engine := newEngine(ruleRepo, categoryRepo, &fakeAccountRepository{}, &fakeGuard{})

	tx := newTestTransaction("NETFLIX.COM", "15.99", entity.TransactionTypeExpense)
	tx.UserID = userID

	output, err := engine.Execute(context.Background(), tx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(output.AppliedRules) != 1 {
		t.Fatalf("expected stop-on-match to end the run after 1 rule, got %d", len(output.AppliedRules))
	}
	if tx.CategoryID == nil || *tx.CategoryID != subscriptions.ID {
		t.Error("expected category from the stop-on-match rule")
	}
	if got := ruleRepo.countApplications(catchAll.ID); got != 0 {
		t.Errorf("expected the rule after stop-on-match to record no applications, got %d", got)
	}
}

func TestApplyRules_StopOnMatchOnNonMatchingRuleDoesNotStop(t *testing.T) {
	userID := uuid.New()
	categoryRepo := &fakeCategoryRepository{}
	misc := entity.NewCategory(userID, "Misc", "", "", entity.CategoryTypeExpense)
	_ = categoryRepo.Create(context.Background(), misc)

	nonMatchingStopper := entity.NewRule(userID, "never matches",
		[]entity.Condition{{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "zzz"}},
		[]entity.Action{setCategoryAction(misc.ID)}, 10, entity.RuleScopeAll, true)
	catchAll := entity.NewRule(userID, "catch all", nil,
		[]entity.Action{setCategoryAction(misc.ID)}, 1, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{nonMatchingStopper, catchAll}}
	engine := newEngine(ruleRepo, categoryRepo, &fakeAccountRepository{}, &fakeGuard{})

	tx := newTestTransaction("Coffee", "4.00", entity.TransactionTypeExpense)
	tx.UserID = userID

	output, err := engine.Execute(context.Background(), tx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(output.AppliedRules) != 1 || output.AppliedRules[0].RuleID != catchAll.ID {
		t.Error("expected evaluation to continue past a non-matching stop-on-match rule")
	}
}

func TestApplyRules_OwnershipDegradation(t *testing.T) {
	userID := uuid.New()
	otherUserID := uuid.New()

	categoryRepo := &fakeCategoryRepository{}
	foreign := entity.NewCategory(otherUserID, "Not yours", "", "", entity.CategoryTypeExpense)
	_ = categoryRepo.Create(context.Background(), foreign)

	r := entity.NewRule(userID, "bad action", nil,
		[]entity.Action{
			setCategoryAction(foreign.ID),
			{Type: entity.ActionAddTag, Tag: "flagged"},
		}, 1, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{r}}
	engine := newEngine(ruleRepo, categoryRepo, &fakeAccountRepository{}, &fakeGuard{})

	tx := newTestTransaction("Anything", "10", entity.TransactionTypeExpense)
	tx.UserID = userID

	output, err := engine.Execute(context.Background(), tx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	t.Run("foreign category action is skipped silently", func(t *testing.T) {
		if tx.CategoryID != nil {
			t.Error("expected set_category referencing another user's category to be skipped")
		}
	})

	t.Run("the rule's remaining actions still apply", func(t *testing.T) {
		if !tx.HasTag("flagged") {
			t.Error("expected add_tag action to apply despite a skipped sibling action")
		}
		if len(output.AppliedRules) != 1 {
			t.Error("expected the rule to still count as applied")
		}
	})
}

func TestApplyRules_AddTagIsIdempotent(t *testing.T) {
	userID := uuid.New()
	r := entity.NewRule(userID, "tagger", nil,
		[]entity.Action{
			{Type: entity.ActionAddTag, Tag: "review"},
			{Type: entity.ActionAddTag, Tag: "review"},
		}, 1, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{r}}
	engine := newEngine(ruleRepo, &fakeCategoryRepository{}, &fakeAccountRepository{}, &fakeGuard{})

	tx := newTestTransaction("Anything", "10", entity.TransactionTypeExpense)
	tx.UserID = userID

	if _, err := engine.Execute(context.Background(), tx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(tx.Tags) != 1 {
		t.Errorf("expected duplicate add_tag to leave a single tag, got %v", tx.Tags)
	}
}

func TestApplyRules_GuardDeduplicatesStats(t *testing.T) {
	userID := uuid.New()
	r := entity.NewRule(userID, "tagger", nil,
		[]entity.Action{{Type: entity.ActionAddTag, Tag: "seen"}}, 1, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{r}}
	guard := &fakeGuard{}
	engine := newEngine(ruleRepo, &fakeCategoryRepository{}, &fakeAccountRepository{}, guard)

	tx := newTestTransaction("Anything", "10", entity.TransactionTypeExpense)
	tx.UserID = userID

	// A retried run over the same transaction must not double count.
	if _, err := engine.Execute(context.Background(), tx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := engine.Execute(context.Background(), tx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := ruleRepo.countApplications(r.ID); got != 1 {
		t.Errorf("expected exactly 1 recorded application across retries, got %d", got)
	}
}

func TestApplyRules_GuardUnavailableStillRecords(t *testing.T) {
	userID := uuid.New()
	r := entity.NewRule(userID, "tagger", nil,
		[]entity.Action{{Type: entity.ActionAddTag, Tag: "seen"}}, 1, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{r}}
	guard := &fakeGuard{err: errRepositoryDown}
	engine := newEngine(ruleRepo, &fakeCategoryRepository{}, &fakeAccountRepository{}, guard)

	tx := newTestTransaction("Anything", "10", entity.TransactionTypeExpense)
	tx.UserID = userID

	if _, err := engine.Execute(context.Background(), tx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := ruleRepo.countApplications(r.ID); got != 1 {
		t.Errorf("expected the application to be recorded when the guard is down, got %d", got)
	}
}

func TestApplyRules_RuleLoadFailurePropagates(t *testing.T) {
	ruleRepo := &fakeRuleRepository{findErr: errRepositoryDown}
	engine := newEngine(ruleRepo, &fakeCategoryRepository{}, &fakeAccountRepository{}, &fakeGuard{})

	tx := newTestTransaction("Anything", "10", entity.TransactionTypeExpense)
	if _, err := engine.Execute(context.Background(), tx); err == nil {
		t.Error("expected an error when active rules cannot be loaded")
	}
}

func TestApplyRules_SetAccountAction(t *testing.T) {
	userID := uuid.New()
	accountRepo := &fakeAccountRepository{}
	target := entity.NewAccount(userID, "Joint checking", entity.AccountTypeChecking, decimal.Zero)
	_ = accountRepo.Create(context.Background(), target)

	r := entity.NewRule(userID, "reroute", nil,
		[]entity.Action{{Type: entity.ActionSetAccount, AccountID: &target.ID}}, 1, entity.RuleScopeAll, false)

	ruleRepo := &fakeRuleRepository{rules: []*entity.Rule{r}}
	engine := newEngine(ruleRepo, &fakeCategoryRepository{}, accountRepo, &fakeGuard{})

	tx := newTestTransaction("Anything", "10", entity.TransactionTypeExpense)
	tx.UserID = userID

	if _, err := engine.Execute(context.Background(), tx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if tx.AccountID != target.ID {
		t.Error("expected set_account to reroute the transaction")
	}
}
