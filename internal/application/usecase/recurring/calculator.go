// Package recurring contains the recurring transaction scheduling use cases.
package recurring

import (
	"log/slog"
	"time"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// NextOccurrence computes the occurrence that follows base for the schedule.
// It works at calendar-day granularity, always returns a date strictly after
// base, and never errors: day-of-month anchors that do not exist in the
// target month clamp to the month's last day, and an unknown frequency falls
// back to one month ahead.
func NextOccurrence(s *entity.RecurringSchedule, base time.Time) time.Time {
	base = entity.DateOnly(base)

	switch s.Frequency {
	case entity.FrequencyDaily:
		return base.AddDate(0, 0, s.Interval)

	case entity.FrequencyWeekly:
		return nextWeekly(s, base)

	case entity.FrequencyMonthly:
		return nextMonthly(s, base)

	case entity.FrequencyAnnual:
		return nextAnnual(s, base)

	default:
		slog.Warn("recurring schedule has unknown frequency, advancing one month",
			"scheduleID", s.ID, "frequency", s.Frequency)
		return addMonthsClamped(base, 1, base.Day())
	}
}

// nextWeekly advances by whole weeks. With a weekday anchor the result is the
// next occurrence of that weekday strictly after base, pushed out by the
// remaining whole weeks of the interval; without one it is a plain
// interval-week jump.
func nextWeekly(s *entity.RecurringSchedule, base time.Time) time.Time {
	if s.DayOfWeek == nil {
		return base.AddDate(0, 0, 7*s.Interval)
	}

	daysAhead := (int(*s.DayOfWeek) - int(base.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return base.AddDate(0, 0, daysAhead+7*(s.Interval-1))
}

// nextMonthly advances by interval months, keeping the anchored day where one
// is set and the base day otherwise, clamped to the target month's length.
func nextMonthly(s *entity.RecurringSchedule, base time.Time) time.Time {
	day := base.Day()
	if s.DayOfMonth != nil {
		day = *s.DayOfMonth
	}
	return addMonthsClamped(base, s.Interval, day)
}

// nextAnnual advances by interval years, honoring an optional month anchor.
// Feb 29 schedules land on Feb 28 in non-leap years.
func nextAnnual(s *entity.RecurringSchedule, base time.Time) time.Time {
	year := base.Year() + s.Interval
	month := base.Month()
	if s.MonthOfYear != nil {
		month = *s.MonthOfYear
	}
	day := base.Day()
	if s.DayOfMonth != nil {
		day = *s.DayOfMonth
	}
	return time.Date(year, month, clampDay(year, month, day), 0, 0, 0, 0, time.UTC)
}

// addMonthsClamped moves months forward without Go's date normalization: the
// target day is clamped to the target month's length instead of spilling into
// the following month (Jan 31 + 1 month is Feb 28/29, never Mar 2/3).
func addMonthsClamped(base time.Time, months, day int) time.Time {
	year := base.Year()
	month := int(base.Month()) + months
	year += (month - 1) / 12
	month = (month-1)%12 + 1

	return time.Date(year, time.Month(month), clampDay(year, time.Month(month), day), 0, 0, 0, 0, time.UTC)
}

// clampDay bounds day to [1, last day of the month].
func clampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	last := lastDayOfMonth(year, month)
	if day > last {
		return last
	}
	return day
}

// lastDayOfMonth returns the number of days in the month.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
