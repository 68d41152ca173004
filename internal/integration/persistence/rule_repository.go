package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
	"github.com/ledgerflow/backend/internal/integration/persistence/model"
)

// ruleRepository implements the adapter.RuleRepository interface.
type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new rule repository instance.
func NewRuleRepository(db *gorm.DB) adapter.RuleRepository {
	return &ruleRepository{
		db: db,
	}
}

// Create creates a new rule in the database.
func (r *ruleRepository) Create(ctx context.Context, rule *entity.Rule) error {
	ruleModel := model.RuleFromEntity(rule)
	result := r.db.WithContext(ctx).Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a rule by its ID.
func (r *ruleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error) {
	var ruleModel model.RuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByUser retrieves all rules for a user in evaluation order: priority
// descending, creation order breaking ties so the order is stable across
// equal priorities.
func (r *ruleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	var ruleModels []model.RuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRuleEntities(ruleModels), nil
}

// FindActiveByUser retrieves only active rules for a user in evaluation order.
func (r *ruleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	var ruleModels []model.RuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority DESC, created_at ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRuleEntities(ruleModels), nil
}

// Update updates an existing rule in the database.
func (r *ruleRepository) Update(ctx context.Context, rule *entity.Rule) error {
	ruleModel := model.RuleFromEntity(rule)
	result := r.db.WithContext(ctx).Save(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRuleNotFound
	}
	return nil
}

// Delete soft-deletes a rule.
func (r *ruleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRuleNotFound
	}
	return nil
}

// RecordApplication increments the rule's usage counter and stamps the
// last-applied time in a single update, so concurrent workers never lose
// increments to read-modify-write races.
func (r *ruleRepository) RecordApplication(ctx context.Context, ruleID uuid.UUID, appliedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.RuleModel{}).
		Where("id = ?", ruleID).
		UpdateColumns(map[string]interface{}{
			"times_applied":   gorm.Expr("times_applied + 1"),
			"last_applied_at": appliedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRuleNotFound
	}
	return nil
}

// UpdatePriorities updates the priorities for multiple rules in a single
// transaction so a reorder is all-or-nothing.
func (r *ruleRepository) UpdatePriorities(ctx context.Context, updates []entity.RulePriorityUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			result := tx.Model(&model.RuleModel{}).
				Where("id = ?", update.ID).
				UpdateColumn("priority", update.Priority)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domainerror.ErrRuleNotFound
			}
		}
		return nil
	})
}

// GetMaxPriorityByUser gets the maximum priority value among the user's rules.
func (r *ruleRepository) GetMaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var maxPriority *int
	result := r.db.WithContext(ctx).
		Model(&model.RuleModel{}).
		Where("user_id = ?", userID).
		Select("MAX(priority)").
		Scan(&maxPriority)
	if result.Error != nil {
		return 0, result.Error
	}
	if maxPriority == nil {
		return 0, nil
	}
	return *maxPriority, nil
}

func toRuleEntities(ruleModels []model.RuleModel) []*entity.Rule {
	rules := make([]*entity.Rule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules
}
