package recurring

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// MaxScheduleDescriptionLength is the maximum allowed length for schedule descriptions.
const MaxScheduleDescriptionLength = 255

// validateFrequency checks the frequency is a known value.
func validateFrequency(frequency entity.Frequency) error {
	switch frequency {
	case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyMonthly, entity.FrequencyAnnual:
		return nil
	}
	return domainerror.NewScheduleError(
		domainerror.ErrCodeInvalidFrequency,
		"frequency must be 'daily', 'weekly', 'monthly' or 'annual'",
		domainerror.ErrInvalidFrequency,
	)
}

// validateInterval checks the interval is a positive step count.
func validateInterval(interval int) error {
	if interval < 1 {
		return domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidInterval,
			"interval must be at least 1",
			domainerror.ErrInvalidInterval,
		)
	}
	return nil
}

// validateAnchors checks the optional calendar anchors are in range for the
// schedule's frequency. Anchors for other frequencies are simply ignored by
// the calculator, so only range errors are rejected here.
func validateAnchors(dayOfWeek *time.Weekday, dayOfMonth *int, monthOfYear *time.Month) error {
	if dayOfWeek != nil && (*dayOfWeek < time.Sunday || *dayOfWeek > time.Saturday) {
		return anchorError("day of week must be between 0 (Sunday) and 6 (Saturday)")
	}
	if dayOfMonth != nil && (*dayOfMonth < 1 || *dayOfMonth > 31) {
		return anchorError("day of month must be between 1 and 31")
	}
	if monthOfYear != nil && (*monthOfYear < time.January || *monthOfYear > time.December) {
		return anchorError("month of year must be between 1 and 12")
	}
	return nil
}

func anchorError(message string) error {
	return domainerror.NewScheduleError(
		domainerror.ErrCodeInvalidAnchor,
		message,
		domainerror.ErrInvalidAnchor,
	)
}

// validateAmount checks the amount is a positive magnitude.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}
