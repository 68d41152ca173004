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

// scheduleRepository implements the adapter.ScheduleRepository interface.
type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new recurring schedule repository instance.
func NewScheduleRepository(db *gorm.DB) adapter.ScheduleRepository {
	return &scheduleRepository{
		db: db,
	}
}

// Create creates a new recurring schedule in the database.
func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.RecurringSchedule) error {
	scheduleModel := model.RecurringScheduleFromEntity(schedule)
	result := r.db.WithContext(ctx).Create(scheduleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a schedule by its ID.
func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error) {
	var scheduleModel model.RecurringScheduleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&scheduleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrScheduleNotFound
		}
		return nil, result.Error
	}
	return scheduleModel.ToEntity(), nil
}

// FindByUser retrieves all schedules for a user, newest first.
func (r *scheduleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	var scheduleModels []model.RecurringScheduleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&scheduleModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toScheduleEntities(scheduleModels), nil
}

// FindDue retrieves all active, auto-process schedules whose next occurrence
// is on or before the given day and whose end date has not passed.
func (r *scheduleRepository) FindDue(ctx context.Context, asOf time.Time) ([]*entity.RecurringSchedule, error) {
	day := entity.DateOnly(asOf)

	var scheduleModels []model.RecurringScheduleModel
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND auto_process = ?", true, true).
		Where("next_date <= ?", day).
		Where("end_date IS NULL OR end_date >= ?", day).
		Order("next_date ASC").
		Find(&scheduleModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toScheduleEntities(scheduleModels), nil
}

// Update updates an existing schedule in the database.
func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.RecurringSchedule) error {
	scheduleModel := model.RecurringScheduleFromEntity(schedule)
	result := r.db.WithContext(ctx).Save(scheduleModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrScheduleNotFound
	}
	return nil
}

// Delete soft-deletes a schedule.
func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringScheduleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrScheduleNotFound
	}
	return nil
}

func toScheduleEntities(scheduleModels []model.RecurringScheduleModel) []*entity.RecurringSchedule {
	schedules := make([]*entity.RecurringSchedule, len(scheduleModels))
	for i, sm := range scheduleModels {
		schedules[i] = sm.ToEntity()
	}
	return schedules
}
