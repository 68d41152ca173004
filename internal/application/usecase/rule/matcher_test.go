package rule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

func newTestTransaction(description string, amount string, txType entity.TransactionType) *entity.Transaction {
	return &entity.Transaction{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Date:        time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		AccountID:   uuid.New(),
	}
}

func newTestRule(conditions []entity.Condition) *entity.Rule {
	return &entity.Rule{
		ID:         uuid.New(),
		Name:       "test rule",
		Conditions: conditions,
		Scope:      entity.RuleScopeAll,
		IsActive:   true,
	}
}

func TestMatches_DescriptionOperators(t *testing.T) {
	tx := newTestTransaction("NETFLIX.COM Subscription", "15.99", entity.TransactionTypeExpense)

	tests := []struct {
		name     string
		operator entity.ConditionOperator
		value    string
		want     bool
	}{
		{"equals is case-insensitive", entity.OperatorEquals, "netflix.com subscription", true},
		{"equals rejects different text", entity.OperatorEquals, "spotify", false},
		{"not_equals", entity.OperatorNotEquals, "spotify", true},
		{"contains is case-insensitive", entity.OperatorContains, "netflix", true},
		{"contains rejects absent substring", entity.OperatorContains, "hulu", false},
		{"not_contains", entity.OperatorNotContains, "hulu", true},
		{"starts_with", entity.OperatorStartsWith, "NETFLIX", true},
		{"starts_with rejects mid-string match", entity.OperatorStartsWith, "subscription", false},
		{"ends_with", entity.OperatorEndsWith, "subscription", true},
		{"regex is case-insensitive", entity.OperatorRegex, `netflix|spotify`, true},
		{"regex rejects non-match", entity.OperatorRegex, `^spotify`, false},
		{"malformed regex fails the condition", entity.OperatorRegex, `net(flix`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRule([]entity.Condition{
				{Field: entity.ConditionFieldDescription, Operator: tt.operator, Value: tt.value},
			})
			if got := Matches(r, tx); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches_AmountOperators(t *testing.T) {
	// Amounts are positive magnitudes regardless of direction, so an expense
	// of 50 matches amount > 20 the same way an income of 50 would.
	tx := newTestTransaction("Dinner", "50.00", entity.TransactionTypeExpense)

	tests := []struct {
		name     string
		operator entity.ConditionOperator
		value    string
		want     bool
	}{
		{"equals ignores trailing zeros", entity.OperatorEquals, "50", true},
		{"greater_than", entity.OperatorGreaterThan, "20", true},
		{"greater_than rejects equal value", entity.OperatorGreaterThan, "50", false},
		{"greater_than_or_equal accepts equal value", entity.OperatorGreaterThanOrEqual, "50", true},
		{"less_than", entity.OperatorLessThan, "100.50", true},
		{"less_than_or_equal", entity.OperatorLessThanOrEqual, "49.99", false},
		{"not_equals", entity.OperatorNotEquals, "49.99", true},
		{"malformed numeric value fails the condition", entity.OperatorGreaterThan, "abc", false},
		{"malformed value on equals fails the condition", entity.OperatorEquals, "fifty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRule([]entity.Condition{
				{Field: entity.ConditionFieldAmount, Operator: tt.operator, Value: tt.value},
			})
			if got := Matches(r, tx); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches_DateConditions(t *testing.T) {
	tx := newTestTransaction("Rent", "1200", entity.TransactionTypeExpense)

	tests := []struct {
		name     string
		operator entity.ConditionOperator
		value    string
		want     bool
	}{
		{"equals at day granularity ignores time of day", entity.OperatorEquals, "2024-03-15", true},
		{"greater_than", entity.OperatorGreaterThan, "2024-03-01", true},
		{"greater_than rejects same day", entity.OperatorGreaterThan, "2024-03-15", false},
		{"less_than", entity.OperatorLessThan, "2024-04-01", true},
		{"malformed date fails the condition", entity.OperatorEquals, "not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRule([]entity.Condition{
				{Field: entity.ConditionFieldDate, Operator: tt.operator, Value: tt.value},
			})
			if got := Matches(r, tx); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches_AccountAndCategoryConditions(t *testing.T) {
	tx := newTestTransaction("Coffee", "4.50", entity.TransactionTypeExpense)
	categoryID := uuid.New()

	t.Run("account equals matches the transaction account", func(t *testing.T) {
		r := newTestRule([]entity.Condition{
			{Field: entity.ConditionFieldAccount, Operator: entity.OperatorEquals, Value: tx.AccountID.String()},
		})
		if !Matches(r, tx) {
			t.Error("expected account condition to match")
		}
	})

	t.Run("category condition fails on uncategorized transaction", func(t *testing.T) {
		r := newTestRule([]entity.Condition{
			{Field: entity.ConditionFieldCategory, Operator: entity.OperatorEquals, Value: categoryID.String()},
		})
		if Matches(r, tx) {
			t.Error("expected category condition to fail when CategoryID is nil")
		}
	})

	t.Run("category equals matches when set", func(t *testing.T) {
		categorized := newTestTransaction("Coffee", "4.50", entity.TransactionTypeExpense)
		categorized.CategoryID = &categoryID
		r := newTestRule([]entity.Condition{
			{Field: entity.ConditionFieldCategory, Operator: entity.OperatorEquals, Value: categoryID.String()},
		})
		if !Matches(r, categorized) {
			t.Error("expected category condition to match")
		}
	})
}

func TestMatches_ConditionsAreANDed(t *testing.T) {
	tx := newTestTransaction("NETFLIX.COM", "15.99", entity.TransactionTypeExpense)

	t.Run("all conditions passing matches", func(t *testing.T) {
		r := newTestRule([]entity.Condition{
			{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "netflix"},
			{Field: entity.ConditionFieldAmount, Operator: entity.OperatorLessThan, Value: "20"},
		})
		if !Matches(r, tx) {
			t.Error("expected rule to match when every condition passes")
		}
	})

	t.Run("one failing condition rejects the rule", func(t *testing.T) {
		r := newTestRule([]entity.Condition{
			{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "netflix"},
			{Field: entity.ConditionFieldAmount, Operator: entity.OperatorGreaterThan, Value: "20"},
		})
		if Matches(r, tx) {
			t.Error("expected rule not to match when one condition fails")
		}
	})
}

func TestMatches_EmptyConditionsMatchEverything(t *testing.T) {
	tx := newTestTransaction("Anything at all", "1.00", entity.TransactionTypeIncome)
	r := newTestRule(nil)
	if !Matches(r, tx) {
		t.Error("expected a rule with no conditions to match any transaction in scope")
	}
}

func TestMatches_ScopeAndActivity(t *testing.T) {
	expense := newTestTransaction("Groceries", "80", entity.TransactionTypeExpense)
	income := newTestTransaction("Salary", "5000", entity.TransactionTypeIncome)

	t.Run("expense scope rejects income transactions", func(t *testing.T) {
		r := newTestRule(nil)
		r.Scope = entity.RuleScopeExpense
		if Matches(r, income) {
			t.Error("expected expense-scoped rule not to match an income transaction")
		}
		if !Matches(r, expense) {
			t.Error("expected expense-scoped rule to match an expense transaction")
		}
	})

	t.Run("inactive rule never matches", func(t *testing.T) {
		r := newTestRule(nil)
		r.IsActive = false
		if Matches(r, expense) {
			t.Error("expected inactive rule not to match")
		}
	})

	t.Run("unknown condition field fails the condition", func(t *testing.T) {
		r := newTestRule([]entity.Condition{
			{Field: entity.ConditionField("merchant"), Operator: entity.OperatorEquals, Value: "x"},
		})
		if Matches(r, expense) {
			t.Error("expected unknown field to degrade to a non-match")
		}
	})

	t.Run("unknown operator fails the condition", func(t *testing.T) {
		r := newTestRule([]entity.Condition{
			{Field: entity.ConditionFieldDescription, Operator: entity.ConditionOperator("fuzzy"), Value: "x"},
		})
		if Matches(r, expense) {
			t.Error("expected unknown operator to degrade to a non-match")
		}
	})
}
