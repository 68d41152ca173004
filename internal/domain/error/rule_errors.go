// Package error defines domain-specific errors for the LedgerFlow application.
package error

import "errors"

// Rule domain errors.
var (
	// ErrRuleNotFound is returned when an automation rule is not found.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrRuleNameExists is returned when attempting to create a rule with a name already in use.
	ErrRuleNameExists = errors.New("rule name already exists")

	// ErrInvalidRuleScope is returned when the scope value is not a known transaction-type filter.
	ErrInvalidRuleScope = errors.New("invalid rule scope")

	// ErrInvalidCondition is returned when a condition references an unknown field or operator.
	ErrInvalidCondition = errors.New("invalid rule condition")

	// ErrInvalidAction is returned when an action has an unknown type or a missing payload.
	ErrInvalidAction = errors.New("invalid rule action")

	// ErrNotAuthorizedToModifyRule is returned when a user is not authorized to modify a rule.
	ErrNotAuthorizedToModifyRule = errors.New("not authorized to modify rule")

	// ErrRuleTemplateNotFound is returned when an unknown template is instantiated.
	ErrRuleTemplateNotFound = errors.New("rule template not found")
)

// RuleErrorCode defines error codes for rule errors.
// Format: RUL-XXYYYY where XX is category and YYYY is specific error.
type RuleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRuleNotFound         RuleErrorCode = "RUL-010001"
	ErrCodeRuleNameExists       RuleErrorCode = "RUL-010002"
	ErrCodeInvalidRuleScope     RuleErrorCode = "RUL-010003"
	ErrCodeInvalidCondition     RuleErrorCode = "RUL-010004"
	ErrCodeInvalidAction        RuleErrorCode = "RUL-010005"
	ErrCodeNotAuthorizedRule    RuleErrorCode = "RUL-010006"
	ErrCodeRuleTemplateNotFound RuleErrorCode = "RUL-010007"
)

// RuleError represents a rule error with code and message.
type RuleError struct {
	Code    RuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// NewRuleError creates a new RuleError with the given code and message.
func NewRuleError(code RuleErrorCode, message string, err error) *RuleError {
	return &RuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
