// Package rule contains the transaction automation rule engine use cases.
package rule

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// Matches reports whether the rule applies to the transaction. It
// short-circuits on the first failing check: an inactive rule never matches,
// a scoped rule only matches transactions of its scope's type, and every
// condition must pass (conditions are ANDed). A rule with no conditions
// matches every transaction within its scope.
//
// Matching never errors: an unknown field or operator, a malformed condition
// value, or a null transaction field all count as a non-match.
func Matches(r *entity.Rule, tx *entity.Transaction) bool {
	if r == nil || tx == nil {
		return false
	}
	if !r.IsActive {
		return false
	}
	if r.Scope != entity.RuleScopeAll && string(r.Scope) != string(tx.Type) {
		return false
	}
	for _, cond := range r.Conditions {
		if !conditionMatches(cond, tx) {
			return false
		}
	}
	return true
}

// conditionMatches evaluates a single condition against the transaction.
func conditionMatches(cond entity.Condition, tx *entity.Transaction) bool {
	switch cond.Field {
	case entity.ConditionFieldDescription:
		return matchString(tx.Description, cond)
	case entity.ConditionFieldAmount:
		return matchAmount(tx.Amount, cond)
	case entity.ConditionFieldAccount:
		return matchString(tx.AccountID.String(), cond)
	case entity.ConditionFieldCategory:
		// An uncategorized transaction has no value to compare against.
		if tx.CategoryID == nil {
			return false
		}
		return matchString(tx.CategoryID.String(), cond)
	case entity.ConditionFieldDate:
		return matchDate(tx.Date, cond)
	default:
		return false
	}
}

// matchString evaluates an operator over a textual field value. Textual
// comparisons are case-insensitive; numeric operators fall back to decimal
// comparison when both sides parse as numbers.
func matchString(value string, cond entity.Condition) bool {
	switch cond.Operator {
	case entity.OperatorEquals:
		return strings.EqualFold(value, cond.Value)
	case entity.OperatorNotEquals:
		return !strings.EqualFold(value, cond.Value)
	case entity.OperatorContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(cond.Value))
	case entity.OperatorNotContains:
		return !strings.Contains(strings.ToLower(value), strings.ToLower(cond.Value))
	case entity.OperatorStartsWith:
		return strings.HasPrefix(strings.ToLower(value), strings.ToLower(cond.Value))
	case entity.OperatorEndsWith:
		return strings.HasSuffix(strings.ToLower(value), strings.ToLower(cond.Value))
	case entity.OperatorGreaterThan, entity.OperatorLessThan,
		entity.OperatorGreaterThanOrEqual, entity.OperatorLessThanOrEqual:
		fieldValue, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return false
		}
		return compareDecimal(fieldValue, cond)
	case entity.OperatorRegex:
		re, err := regexp.Compile("(?i)" + cond.Value)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	default:
		return false
	}
}

// matchAmount evaluates an operator over the transaction amount. Amounts are
// positive magnitudes, so condition values are compared as-is. Textual
// operators are evaluated against the amount's string form.
func matchAmount(amount decimal.Decimal, cond entity.Condition) bool {
	switch cond.Operator {
	case entity.OperatorEquals:
		condValue, err := decimal.NewFromString(strings.TrimSpace(cond.Value))
		return err == nil && amount.Equal(condValue)
	case entity.OperatorNotEquals:
		condValue, err := decimal.NewFromString(strings.TrimSpace(cond.Value))
		return err == nil && !amount.Equal(condValue)
	case entity.OperatorGreaterThan, entity.OperatorLessThan,
		entity.OperatorGreaterThanOrEqual, entity.OperatorLessThanOrEqual:
		return compareDecimal(amount, cond)
	default:
		return matchString(amount.String(), cond)
	}
}

// compareDecimal evaluates a numeric ordering operator. A malformed condition
// value fails the condition.
func compareDecimal(fieldValue decimal.Decimal, cond entity.Condition) bool {
	condValue, err := decimal.NewFromString(strings.TrimSpace(cond.Value))
	if err != nil {
		return false
	}

	switch cond.Operator {
	case entity.OperatorGreaterThan:
		return fieldValue.GreaterThan(condValue)
	case entity.OperatorLessThan:
		return fieldValue.LessThan(condValue)
	case entity.OperatorGreaterThanOrEqual:
		return fieldValue.GreaterThanOrEqual(condValue)
	case entity.OperatorLessThanOrEqual:
		return fieldValue.LessThanOrEqual(condValue)
	default:
		return false
	}
}

// conditionDateLayout is the calendar-day form used for date conditions.
const conditionDateLayout = "2006-01-02"

// matchDate evaluates an operator over the transaction date at calendar-day
// granularity.
func matchDate(date time.Time, cond entity.Condition) bool {
	switch cond.Operator {
	case entity.OperatorEquals, entity.OperatorNotEquals,
		entity.OperatorGreaterThan, entity.OperatorLessThan,
		entity.OperatorGreaterThanOrEqual, entity.OperatorLessThanOrEqual:
		condDate, err := time.Parse(conditionDateLayout, strings.TrimSpace(cond.Value))
		if err != nil {
			return false
		}
		day := entity.DateOnly(date)
		condDay := entity.DateOnly(condDate)

		switch cond.Operator {
		case entity.OperatorEquals:
			return day.Equal(condDay)
		case entity.OperatorNotEquals:
			return !day.Equal(condDay)
		case entity.OperatorGreaterThan:
			return day.After(condDay)
		case entity.OperatorLessThan:
			return day.Before(condDay)
		case entity.OperatorGreaterThanOrEqual:
			return !day.Before(condDay)
		default: // less_than_or_equal
			return !day.After(condDay)
		}
	default:
		return matchString(date.Format(conditionDateLayout), cond)
	}
}
