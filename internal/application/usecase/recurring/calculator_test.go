package recurring

import (
	"testing"
	"time"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func weeklySchedule(interval int, anchor *time.Weekday) *entity.RecurringSchedule {
	return &entity.RecurringSchedule{Frequency: entity.FrequencyWeekly, Interval: interval, DayOfWeek: anchor}
}

func monthlySchedule(interval int, anchor *int) *entity.RecurringSchedule {
	return &entity.RecurringSchedule{Frequency: entity.FrequencyMonthly, Interval: interval, DayOfMonth: anchor}
}

func intPtr(v int) *int                       { return &v }
func weekdayPtr(v time.Weekday) *time.Weekday { return &v }
func monthPtr(v time.Month) *time.Month       { return &v }

func TestNextOccurrence_Daily(t *testing.T) {
	s := &entity.RecurringSchedule{Frequency: entity.FrequencyDaily, Interval: 1}
	got := NextOccurrence(s, day(2024, 3, 15))
	if want := day(2024, 3, 16); !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}

	s.Interval = 10
	got = NextOccurrence(s, day(2024, 12, 28))
	if want := day(2025, 1, 7); !got.Equal(want) {
		t.Errorf("NextOccurrence() across year boundary = %v, want %v", got, want)
	}
}

func TestNextOccurrence_Weekly(t *testing.T) {
	t.Run("no anchor jumps whole weeks", func(t *testing.T) {
		got := NextOccurrence(weeklySchedule(2, nil), day(2024, 3, 15))
		if want := day(2024, 3, 29); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("anchor later in the week lands on the coming weekday", func(t *testing.T) {
		// Monday base, Friday anchor: the immediately following Friday.
		got := NextOccurrence(weeklySchedule(1, weekdayPtr(time.Friday)), day(2024, 3, 11))
		if want := day(2024, 3, 15); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("anchor earlier in the week wraps forward", func(t *testing.T) {
		// Friday base, Monday anchor: the next Monday.
		got := NextOccurrence(weeklySchedule(1, weekdayPtr(time.Monday)), day(2024, 3, 15))
		if want := day(2024, 3, 18); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("base on the anchor weekday moves a full week", func(t *testing.T) {
		got := NextOccurrence(weeklySchedule(1, weekdayPtr(time.Friday)), day(2024, 3, 15))
		if want := day(2024, 3, 22); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("multi-week interval adds the remaining weeks", func(t *testing.T) {
		// Monday base, Friday anchor, every 3 weeks: coming Friday + 2 weeks.
		got := NextOccurrence(weeklySchedule(3, weekdayPtr(time.Friday)), day(2024, 3, 11))
		if want := day(2024, 3, 29); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})
}

func TestNextOccurrence_Monthly(t *testing.T) {
	t.Run("keeps the base day", func(t *testing.T) {
		got := NextOccurrence(monthlySchedule(1, nil), day(2024, 3, 15))
		if want := day(2024, 4, 15); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("Jan 31 clamps to the end of February", func(t *testing.T) {
		got := NextOccurrence(monthlySchedule(1, nil), day(2023, 1, 31))
		if want := day(2023, 2, 28); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("leap year February keeps day 29", func(t *testing.T) {
		got := NextOccurrence(monthlySchedule(1, nil), day(2024, 1, 31))
		if want := day(2024, 2, 29); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("day-of-month anchor reasserts after a clamped month", func(t *testing.T) {
		// Anchored to the 31st, advancing from a clamped Feb 28 occurrence.
		got := NextOccurrence(monthlySchedule(1, intPtr(31)), day(2023, 2, 28))
		if want := day(2023, 3, 31); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("quarterly interval crosses the year boundary", func(t *testing.T) {
		got := NextOccurrence(monthlySchedule(3, nil), day(2024, 11, 30))
		if want := day(2025, 2, 28); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})
}

func TestNextOccurrence_Annual(t *testing.T) {
	t.Run("plain yearly advance", func(t *testing.T) {
		s := &entity.RecurringSchedule{Frequency: entity.FrequencyAnnual, Interval: 1}
		got := NextOccurrence(s, day(2024, 6, 10))
		if want := day(2025, 6, 10); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("Feb 29 lands on Feb 28 in a non-leap year", func(t *testing.T) {
		s := &entity.RecurringSchedule{Frequency: entity.FrequencyAnnual, Interval: 1}
		got := NextOccurrence(s, day(2024, 2, 29))
		if want := day(2025, 2, 28); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})

	t.Run("month anchor overrides the base month", func(t *testing.T) {
		s := &entity.RecurringSchedule{
			Frequency:   entity.FrequencyAnnual,
			Interval:    1,
			MonthOfYear: monthPtr(time.December),
			DayOfMonth:  intPtr(25),
		}
		got := NextOccurrence(s, day(2024, 12, 25))
		if want := day(2025, 12, 25); !got.Equal(want) {
			t.Errorf("NextOccurrence() = %v, want %v", got, want)
		}
	})
}

func TestNextOccurrence_UnknownFrequencyFallsBackToMonthly(t *testing.T) {
	s := &entity.RecurringSchedule{Frequency: entity.Frequency("fortnightly"), Interval: 2}
	got := NextOccurrence(s, day(2024, 1, 31))
	if want := day(2024, 2, 29); !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestNextOccurrence_AlwaysStrictlyAfterBase(t *testing.T) {
	schedules := []*entity.RecurringSchedule{
		{Frequency: entity.FrequencyDaily, Interval: 1},
		{Frequency: entity.FrequencyWeekly, Interval: 1},
		{Frequency: entity.FrequencyWeekly, Interval: 1, DayOfWeek: weekdayPtr(time.Wednesday)},
		{Frequency: entity.FrequencyMonthly, Interval: 1},
		{Frequency: entity.FrequencyMonthly, Interval: 1, DayOfMonth: intPtr(1)},
		{Frequency: entity.FrequencyAnnual, Interval: 1},
	}
	bases := []time.Time{
		day(2024, 1, 1), day(2024, 2, 29), day(2024, 12, 31), day(2023, 1, 31),
	}

	for _, s := range schedules {
		for _, base := range bases {
			if got := NextOccurrence(s, base); !got.After(base) {
				t.Errorf("NextOccurrence(%s/%d, %v) = %v, not strictly after base",
					s.Frequency, s.Interval, base, got)
			}
		}
	}
}

func TestIsDue(t *testing.T) {
	today := day(2024, 6, 15)

	t.Run("due when next date is today", func(t *testing.T) {
		s := &entity.RecurringSchedule{IsActive: true, NextDate: day(2024, 6, 15)}
		if !s.IsDue(today) {
			t.Error("expected schedule with NextDate today to be due")
		}
	})

	t.Run("due when next date is in the past", func(t *testing.T) {
		s := &entity.RecurringSchedule{IsActive: true, NextDate: day(2024, 6, 1)}
		if !s.IsDue(today) {
			t.Error("expected overdue schedule to be due")
		}
	})

	t.Run("not due when next date is tomorrow", func(t *testing.T) {
		s := &entity.RecurringSchedule{IsActive: true, NextDate: day(2024, 6, 16)}
		if s.IsDue(today) {
			t.Error("expected future schedule not to be due")
		}
	})

	t.Run("paused schedule is never due", func(t *testing.T) {
		s := &entity.RecurringSchedule{IsActive: false, NextDate: day(2024, 6, 1)}
		if s.IsDue(today) {
			t.Error("expected paused schedule not to be due")
		}
	})

	t.Run("ended schedule is inert", func(t *testing.T) {
		end := day(2024, 5, 31)
		s := &entity.RecurringSchedule{IsActive: true, NextDate: day(2024, 6, 1), EndDate: &end}
		if s.IsDue(today) {
			t.Error("expected schedule past its end date not to be due")
		}
	})

	t.Run("end date today still counts", func(t *testing.T) {
		end := day(2024, 6, 15)
		s := &entity.RecurringSchedule{IsActive: true, NextDate: day(2024, 6, 15), EndDate: &end}
		if !s.IsDue(today) {
			t.Error("expected schedule ending today to still be due")
		}
	})
}
