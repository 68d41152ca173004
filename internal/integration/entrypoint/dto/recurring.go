// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// CreateScheduleRequest represents the request body for creating a recurring schedule.
type CreateScheduleRequest struct {
	Description          string  `json:"description" binding:"required,min=1,max=255"`
	Amount               string  `json:"amount" binding:"required"`
	Type                 string  `json:"type" binding:"required,oneof=expense income transfer"`
	AccountID            string  `json:"account_id" binding:"required,uuid"`
	DestinationAccountID *string `json:"destination_account_id,omitempty" binding:"omitempty,uuid"`
	CategoryID           *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Frequency            string  `json:"frequency" binding:"required,oneof=daily weekly monthly annually"`
	Interval             int     `json:"interval,omitempty"`
	DayOfWeek            *int    `json:"day_of_week,omitempty"`
	DayOfMonth           *int    `json:"day_of_month,omitempty"`
	MonthOfYear          *int    `json:"month_of_year,omitempty"`
	StartDate            string  `json:"start_date" binding:"required"`
	EndDate              *string `json:"end_date,omitempty"`
	AutoProcess          *bool   `json:"auto_process,omitempty"`
}

// UpdateScheduleRequest represents the request body for a schedule update.
type UpdateScheduleRequest struct {
	Description *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *string `json:"amount,omitempty"`
	CategoryID  *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Frequency   *string `json:"frequency,omitempty" binding:"omitempty,oneof=daily weekly monthly annually"`
	Interval    *int    `json:"interval,omitempty"`
	DayOfWeek   *int    `json:"day_of_week,omitempty"`
	DayOfMonth  *int    `json:"day_of_month,omitempty"`
	MonthOfYear *int    `json:"month_of_year,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	AutoProcess *bool   `json:"auto_process,omitempty"`
}

// ProcessScheduleRequest represents the request body for processing an occurrence.
type ProcessScheduleRequest struct {
	Force bool `json:"force,omitempty"`
}

// ScheduleResponse represents a single recurring schedule in API responses.
type ScheduleResponse struct {
	ID                   string     `json:"id"`
	Description          string     `json:"description"`
	Amount               string     `json:"amount"`
	Type                 string     `json:"type"`
	AccountID            string     `json:"account_id"`
	DestinationAccountID *string    `json:"destination_account_id,omitempty"`
	CategoryID           *string    `json:"category_id,omitempty"`
	Frequency            string     `json:"frequency"`
	Interval             int        `json:"interval"`
	DayOfWeek            *int       `json:"day_of_week,omitempty"`
	DayOfMonth           *int       `json:"day_of_month,omitempty"`
	MonthOfYear          *int       `json:"month_of_year,omitempty"`
	StartDate            string     `json:"start_date"`
	EndDate              *string    `json:"end_date,omitempty"`
	NextDate             string     `json:"next_date"`
	LastProcessedAt      *time.Time `json:"last_processed_at,omitempty"`
	IsActive             bool       `json:"is_active"`
	AutoProcess          bool       `json:"auto_process"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ScheduleListResponse represents the response for listing schedules.
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// ProcessScheduleResponse represents the response for processing an occurrence.
type ProcessScheduleResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Schedule    ScheduleResponse    `json:"schedule"`
}

// ToScheduleResponse converts a domain RecurringSchedule entity to its DTO.
func ToScheduleResponse(s *entity.RecurringSchedule) ScheduleResponse {
	var dayOfWeek *int
	if s.DayOfWeek != nil {
		d := int(*s.DayOfWeek)
		dayOfWeek = &d
	}
	var monthOfYear *int
	if s.MonthOfYear != nil {
		m := int(*s.MonthOfYear)
		monthOfYear = &m
	}
	var endDate *string
	if s.EndDate != nil {
		e := s.EndDate.Format("2006-01-02")
		endDate = &e
	}

	return ScheduleResponse{
		ID:                   s.ID.String(),
		Description:          s.Description,
		Amount:               s.Amount.StringFixed(2),
		Type:                 string(s.Type),
		AccountID:            s.AccountID.String(),
		DestinationAccountID: uuidToStringPtr(s.DestinationAccountID),
		CategoryID:           uuidToStringPtr(s.CategoryID),
		Frequency:            string(s.Frequency),
		Interval:             s.Interval,
		DayOfWeek:            dayOfWeek,
		DayOfMonth:           s.DayOfMonth,
		MonthOfYear:          monthOfYear,
		StartDate:            s.StartDate.Format("2006-01-02"),
		EndDate:              endDate,
		NextDate:             s.NextDate.Format("2006-01-02"),
		LastProcessedAt:      s.LastProcessedAt,
		IsActive:             s.IsActive,
		AutoProcess:          s.AutoProcess,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// ToScheduleListResponse converts a list of schedules to ScheduleListResponse.
func ToScheduleListResponse(schedules []*entity.RecurringSchedule) ScheduleListResponse {
	responses := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		responses[i] = ToScheduleResponse(s)
	}
	return ScheduleListResponse{Schedules: responses}
}
