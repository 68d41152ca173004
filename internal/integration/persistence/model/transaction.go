package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date                 time.Time       `gorm:"type:date;not null;index"`
	Description          string          `gorm:"type:varchar(255);not null"`
	Amount               decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type                 string          `gorm:"type:varchar(10);not null;index"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	DestinationAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryID           *uuid.UUID      `gorm:"type:uuid;index"`
	AppliedRuleID        *uuid.UUID      `gorm:"type:uuid;index"`
	RecurringScheduleID  *uuid.UUID      `gorm:"type:uuid;index"`
	Tags                 pq.StringArray  `gorm:"type:text[]"`
	Notes                string          `gorm:"type:text"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
	DeletedAt            gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:                   m.ID,
		UserID:               m.UserID,
		Date:                 m.Date,
		Description:          m.Description,
		Amount:               m.Amount,
		Type:                 entity.TransactionType(m.Type),
		AccountID:            m.AccountID,
		DestinationAccountID: m.DestinationAccountID,
		CategoryID:           m.CategoryID,
		AppliedRuleID:        m.AppliedRuleID,
		RecurringScheduleID:  m.RecurringScheduleID,
		Tags:                 []string(m.Tags),
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// ToEntityWithCategory converts a TransactionModel with its Category preloaded.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:                   transaction.ID,
		UserID:               transaction.UserID,
		Date:                 transaction.Date,
		Description:          transaction.Description,
		Amount:               transaction.Amount,
		Type:                 string(transaction.Type),
		AccountID:            transaction.AccountID,
		DestinationAccountID: transaction.DestinationAccountID,
		CategoryID:           transaction.CategoryID,
		AppliedRuleID:        transaction.AppliedRuleID,
		RecurringScheduleID:  transaction.RecurringScheduleID,
		Tags:                 pq.StringArray(transaction.Tags),
		Notes:                transaction.Notes,
		CreatedAt:            transaction.CreatedAt,
		UpdatedAt:            transaction.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}
