// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents the cadence of a recurring schedule.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
)

// RecurringSchedule is a transaction template plus cadence definition that
// periodically materializes transactions. NextDate always points at the next
// occurrence still to be materialized or skipped.
type RecurringSchedule struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Description          string
	Amount               decimal.Decimal
	Type                 TransactionType
	AccountID            uuid.UUID
	DestinationAccountID *uuid.UUID // Required for transfer templates
	CategoryID           *uuid.UUID
	Frequency            Frequency
	Interval             int           // Every N frequency units, minimum 1
	DayOfWeek            *time.Weekday // Weekly anchor
	DayOfMonth           *int          // Monthly/annual anchor, 1-31
	MonthOfYear          *time.Month   // Annual anchor
	StartDate            time.Time
	EndDate              *time.Time
	NextDate             time.Time
	LastProcessedAt      *time.Time
	IsActive             bool
	AutoProcess          bool // Picked up by the scheduled sweep when true
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewRecurringSchedule creates a new RecurringSchedule entity. The first
// occurrence is the start date itself.
func NewRecurringSchedule(
	userID uuid.UUID,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	accountID uuid.UUID,
	frequency Frequency,
	interval int,
	startDate time.Time,
) *RecurringSchedule {
	now := time.Now().UTC()
	if interval < 1 {
		interval = 1
	}

	return &RecurringSchedule{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		AccountID:   accountID,
		Frequency:   frequency,
		Interval:    interval,
		StartDate:   startDate,
		NextDate:    startDate,
		IsActive:    true,
		AutoProcess: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsDue reports whether the schedule should materialize a transaction as of
// the given day. A schedule whose end date has passed is permanently inert
// even while still marked active.
func (s *RecurringSchedule) IsDue(today time.Time) bool {
	if !s.IsActive {
		return false
	}
	today = DateOnly(today)
	if s.EndDate != nil && DateOnly(*s.EndDate).Before(today) {
		return false
	}
	return !DateOnly(s.NextDate).After(today)
}

// Pause deactivates the schedule without touching its next occurrence.
func (s *RecurringSchedule) Pause() {
	s.IsActive = false
	s.UpdatedAt = time.Now().UTC()
}

// Resume reactivates a paused schedule without touching its next occurrence.
func (s *RecurringSchedule) Resume() {
	s.IsActive = true
	s.UpdatedAt = time.Now().UTC()
}

// DateOnly truncates a timestamp to midnight UTC of the same calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
