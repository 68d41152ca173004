package rule

import (
	"fmt"
	"regexp"

	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

const (
	// MaxRuleNameLength is the maximum allowed length for rule names.
	MaxRuleNameLength = 100
	// MaxConditionsPerRule caps the number of conditions a single rule can carry.
	MaxConditionsPerRule = 20
	// MaxActionsPerRule caps the number of actions a single rule can carry.
	MaxActionsPerRule = 10
)

// validateRuleName checks the rule name is present and within bounds.
func validateRuleName(name string) error {
	if name == "" {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidCondition,
			"rule name is required",
			domainerror.ErrInvalidCondition,
		)
	}
	if len(name) > MaxRuleNameLength {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidCondition,
			fmt.Sprintf("rule name must not exceed %d characters", MaxRuleNameLength),
			domainerror.ErrInvalidCondition,
		)
	}
	return nil
}

// validateScope checks the scope is a known transaction-type filter.
func validateScope(scope entity.RuleScope) error {
	if !entity.IsValidRuleScope(scope) {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidRuleScope,
			"scope must be 'all', 'income', 'expense' or 'transfer'",
			domainerror.ErrInvalidRuleScope,
		)
	}
	return nil
}

// validateConditions checks every condition references a known field and
// operator and carries a usable value. Regex patterns must compile under the
// case-insensitive flag the matcher uses.
func validateConditions(conditions []entity.Condition) error {
	if len(conditions) > MaxConditionsPerRule {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidCondition,
			fmt.Sprintf("a rule must not have more than %d conditions", MaxConditionsPerRule),
			domainerror.ErrInvalidCondition,
		)
	}
	for i, cond := range conditions {
		if !isValidConditionField(cond.Field) {
			return domainerror.NewRuleError(
				domainerror.ErrCodeInvalidCondition,
				fmt.Sprintf("condition %d references unknown field %q", i+1, cond.Field),
				domainerror.ErrInvalidCondition,
			)
		}
		if !isValidConditionOperator(cond.Operator) {
			return domainerror.NewRuleError(
				domainerror.ErrCodeInvalidCondition,
				fmt.Sprintf("condition %d references unknown operator %q", i+1, cond.Operator),
				domainerror.ErrInvalidCondition,
			)
		}
		if cond.Operator == entity.OperatorRegex {
			if _, err := regexp.Compile("(?i)" + cond.Value); err != nil {
				return domainerror.NewRuleError(
					domainerror.ErrCodeInvalidCondition,
					fmt.Sprintf("condition %d has an invalid regex pattern", i+1),
					domainerror.ErrInvalidCondition,
				)
			}
		}
	}
	return nil
}

// validateActions checks every action has a known type and the payload that
// type requires.
func validateActions(actions []entity.Action) error {
	if len(actions) == 0 {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidAction,
			"a rule must have at least one action",
			domainerror.ErrInvalidAction,
		)
	}
	if len(actions) > MaxActionsPerRule {
		return domainerror.NewRuleError(
			domainerror.ErrCodeInvalidAction,
			fmt.Sprintf("a rule must not have more than %d actions", MaxActionsPerRule),
			domainerror.ErrInvalidAction,
		)
	}
	for i, action := range actions {
		switch action.Type {
		case entity.ActionSetCategory:
			if action.CategoryID == nil {
				return actionPayloadError(i, "set_category requires a category id")
			}
		case entity.ActionSetAccount:
			if action.AccountID == nil {
				return actionPayloadError(i, "set_account requires an account id")
			}
		case entity.ActionSetNotes:
			// Empty notes are allowed: the action clears the field.
		case entity.ActionAddTag:
			if action.Tag == "" {
				return actionPayloadError(i, "add_tag requires a tag")
			}
		default:
			return domainerror.NewRuleError(
				domainerror.ErrCodeInvalidAction,
				fmt.Sprintf("action %d has unknown type %q", i+1, action.Type),
				domainerror.ErrInvalidAction,
			)
		}
	}
	return nil
}

func actionPayloadError(index int, message string) error {
	return domainerror.NewRuleError(
		domainerror.ErrCodeInvalidAction,
		fmt.Sprintf("action %d: %s", index+1, message),
		domainerror.ErrInvalidAction,
	)
}

func isValidConditionField(field entity.ConditionField) bool {
	switch field {
	case entity.ConditionFieldDescription, entity.ConditionFieldAmount,
		entity.ConditionFieldAccount, entity.ConditionFieldCategory,
		entity.ConditionFieldDate:
		return true
	}
	return false
}

func isValidConditionOperator(op entity.ConditionOperator) bool {
	switch op {
	case entity.OperatorEquals, entity.OperatorNotEquals,
		entity.OperatorContains, entity.OperatorNotContains,
		entity.OperatorStartsWith, entity.OperatorEndsWith,
		entity.OperatorGreaterThan, entity.OperatorLessThan,
		entity.OperatorGreaterThanOrEqual, entity.OperatorLessThanOrEqual,
		entity.OperatorRegex:
		return true
	}
	return false
}
