package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// RecurringScheduleModel represents the recurring_schedules table in the database.
type RecurringScheduleModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description          string          `gorm:"type:varchar(255);not null"`
	Amount               decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type                 string          `gorm:"type:varchar(10);not null"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null"`
	DestinationAccountID *uuid.UUID      `gorm:"type:uuid"`
	CategoryID           *uuid.UUID      `gorm:"type:uuid"`
	Frequency            string          `gorm:"type:varchar(10);not null"`
	Interval             int             `gorm:"not null;default:1"`
	DayOfWeek            *int            `gorm:"type:integer"`
	DayOfMonth           *int            `gorm:"type:integer"`
	MonthOfYear          *int            `gorm:"type:integer"`
	StartDate            time.Time       `gorm:"type:date;not null"`
	EndDate              *time.Time      `gorm:"type:date"`
	NextDate             time.Time       `gorm:"type:date;not null;index"`
	LastProcessedAt      *time.Time      `gorm:"type:timestamp"`
	IsActive             bool            `gorm:"not null;default:true;index"`
	AutoProcess          bool            `gorm:"not null;default:true"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
	DeletedAt            gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the RecurringScheduleModel.
func (RecurringScheduleModel) TableName() string {
	return "recurring_schedules"
}

// ToEntity converts a RecurringScheduleModel to a domain RecurringSchedule entity.
func (m *RecurringScheduleModel) ToEntity() *entity.RecurringSchedule {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var dayOfWeek *time.Weekday
	if m.DayOfWeek != nil {
		weekday := time.Weekday(*m.DayOfWeek)
		dayOfWeek = &weekday
	}
	var monthOfYear *time.Month
	if m.MonthOfYear != nil {
		month := time.Month(*m.MonthOfYear)
		monthOfYear = &month
	}

	return &entity.RecurringSchedule{
		ID:                   m.ID,
		UserID:               m.UserID,
		Description:          m.Description,
		Amount:               m.Amount,
		Type:                 entity.TransactionType(m.Type),
		AccountID:            m.AccountID,
		DestinationAccountID: m.DestinationAccountID,
		CategoryID:           m.CategoryID,
		Frequency:            entity.Frequency(m.Frequency),
		Interval:             m.Interval,
		DayOfWeek:            dayOfWeek,
		DayOfMonth:           m.DayOfMonth,
		MonthOfYear:          monthOfYear,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		NextDate:             m.NextDate,
		LastProcessedAt:      m.LastProcessedAt,
		IsActive:             m.IsActive,
		AutoProcess:          m.AutoProcess,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// RecurringScheduleFromEntity creates a RecurringScheduleModel from a domain entity.
func RecurringScheduleFromEntity(schedule *entity.RecurringSchedule) *RecurringScheduleModel {
	var deletedAt gorm.DeletedAt
	if schedule.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *schedule.DeletedAt, Valid: true}
	}

	var dayOfWeek *int
	if schedule.DayOfWeek != nil {
		weekday := int(*schedule.DayOfWeek)
		dayOfWeek = &weekday
	}
	var monthOfYear *int
	if schedule.MonthOfYear != nil {
		month := int(*schedule.MonthOfYear)
		monthOfYear = &month
	}

	return &RecurringScheduleModel{
		ID:                   schedule.ID,
		UserID:               schedule.UserID,
		Description:          schedule.Description,
		Amount:               schedule.Amount,
		Type:                 string(schedule.Type),
		AccountID:            schedule.AccountID,
		DestinationAccountID: schedule.DestinationAccountID,
		CategoryID:           schedule.CategoryID,
		Frequency:            string(schedule.Frequency),
		Interval:             schedule.Interval,
		DayOfWeek:            dayOfWeek,
		DayOfMonth:           schedule.DayOfMonth,
		MonthOfYear:          monthOfYear,
		StartDate:            schedule.StartDate,
		EndDate:              schedule.EndDate,
		NextDate:             schedule.NextDate,
		LastProcessedAt:      schedule.LastProcessedAt,
		IsActive:             schedule.IsActive,
		AutoProcess:          schedule.AutoProcess,
		CreatedAt:            schedule.CreatedAt,
		UpdatedAt:            schedule.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}
