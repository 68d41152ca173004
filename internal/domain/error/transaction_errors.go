// Package error defines domain-specific errors for the LedgerFlow application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the type is not expense, income or transfer.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidAmount is returned when the amount is zero or negative. Amounts
	// are stored as positive magnitudes; direction is carried by the type.
	ErrInvalidAmount = errors.New("amount must be a positive magnitude")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrMissingDestinationAccount is returned when a transfer lacks a destination account.
	ErrMissingDestinationAccount = errors.New("transfer requires a destination account")

	// ErrCategoryNotOwnedByUser is returned when a referenced category belongs to another user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrAccountNotOwnedByUser is returned when a referenced account belongs to another user.
	ErrAccountNotOwnedByUser = errors.New("account does not belong to user")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionNotFound       TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionType    TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidAmount             TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong        TransactionErrorCode = "TXN-010004"
	ErrCodeNotesTooLong              TransactionErrorCode = "TXN-010005"
	ErrCodeMissingDestinationAccount TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryNotOwned       TransactionErrorCode = "TXN-010007"
	ErrCodeTxnAccountNotOwned        TransactionErrorCode = "TXN-010008"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
