package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// ConditionsJSON stores rule conditions as a JSON document.
type ConditionsJSON []entity.Condition

// Value implements driver.Valuer.
func (c ConditionsJSON) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (c *ConditionsJSON) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// ActionsJSON stores rule actions as a JSON document.
type ActionsJSON []entity.Action

// Value implements driver.Valuer.
func (a ActionsJSON) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (a *ActionsJSON) Scan(value interface{}) error {
	return scanJSON(value, a)
}

func scanJSON(value interface{}, target interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}

// RuleModel represents the rules table in the database.
type RuleModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name          string         `gorm:"type:varchar(100);not null"`
	Conditions    ConditionsJSON `gorm:"type:jsonb;not null"`
	Actions       ActionsJSON    `gorm:"type:jsonb;not null"`
	Priority      int            `gorm:"not null;default:0;index"`
	IsActive      bool           `gorm:"not null;default:true"`
	StopOnMatch   bool           `gorm:"not null;default:false"`
	Scope         string         `gorm:"type:varchar(10);not null;default:'all'"`
	TimesApplied  int            `gorm:"not null;default:0"`
	LastAppliedAt *time.Time     `gorm:"type:timestamp"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
	DeletedAt     gorm.DeletedAt `gorm:"index"` // Soft-delete support

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the RuleModel.
func (RuleModel) TableName() string {
	return "rules"
}

// ToEntity converts a RuleModel to a domain Rule entity.
func (m *RuleModel) ToEntity() *entity.Rule {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Rule{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Conditions:    []entity.Condition(m.Conditions),
		Actions:       []entity.Action(m.Actions),
		Priority:      m.Priority,
		IsActive:      m.IsActive,
		StopOnMatch:   m.StopOnMatch,
		Scope:         entity.RuleScope(m.Scope),
		TimesApplied:  m.TimesApplied,
		LastAppliedAt: m.LastAppliedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// RuleFromEntity creates a RuleModel from a domain Rule entity.
func RuleFromEntity(rule *entity.Rule) *RuleModel {
	var deletedAt gorm.DeletedAt
	if rule.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *rule.DeletedAt, Valid: true}
	}

	return &RuleModel{
		ID:            rule.ID,
		UserID:        rule.UserID,
		Name:          rule.Name,
		Conditions:    ConditionsJSON(rule.Conditions),
		Actions:       ActionsJSON(rule.Actions),
		Priority:      rule.Priority,
		IsActive:      rule.IsActive,
		StopOnMatch:   rule.StopOnMatch,
		Scope:         string(rule.Scope),
		TimesApplied:  rule.TimesApplied,
		LastAppliedAt: rule.LastAppliedAt,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
