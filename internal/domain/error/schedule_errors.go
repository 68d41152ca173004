// Package error defines domain-specific errors for the LedgerFlow application.
package error

import "errors"

// Recurring schedule domain errors.
var (
	// ErrScheduleNotFound is returned when a recurring schedule is not found.
	ErrScheduleNotFound = errors.New("recurring schedule not found")

	// ErrInvalidFrequency is returned when the frequency is not daily, weekly, monthly or annual.
	ErrInvalidFrequency = errors.New("invalid schedule frequency")

	// ErrInvalidInterval is returned when the interval is not a positive integer.
	ErrInvalidInterval = errors.New("interval must be a positive integer")

	// ErrInvalidAnchor is returned when a day-of-week, day-of-month or
	// month-of-year anchor is out of range for the schedule's frequency.
	ErrInvalidAnchor = errors.New("invalid schedule anchor")

	// ErrScheduleNotDue is returned when a schedule is explicitly processed
	// while not due.
	ErrScheduleNotDue = errors.New("schedule is not due")

	// ErrNotAuthorizedToModifySchedule is returned when a user is not authorized to modify a schedule.
	ErrNotAuthorizedToModifySchedule = errors.New("not authorized to modify schedule")
)

// ScheduleErrorCode defines error codes for recurring schedule errors.
// Format: SCH-XXYYYY where XX is category and YYYY is specific error.
type ScheduleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeScheduleNotFound      ScheduleErrorCode = "SCH-010001"
	ErrCodeInvalidFrequency      ScheduleErrorCode = "SCH-010002"
	ErrCodeInvalidInterval       ScheduleErrorCode = "SCH-010003"
	ErrCodeInvalidAnchor         ScheduleErrorCode = "SCH-010004"
	ErrCodeScheduleNotDue        ScheduleErrorCode = "SCH-010005"
	ErrCodeNotAuthorizedSchedule ScheduleErrorCode = "SCH-010006"
)

// ScheduleError represents a recurring schedule error with code and message.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// NewScheduleError creates a new ScheduleError with the given code and message.
func NewScheduleError(code ScheduleErrorCode, message string, err error) *ScheduleError {
	return &ScheduleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
