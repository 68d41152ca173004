package recurring

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

type stubCategoryRepository struct{}

func (stubCategoryRepository) Create(_ context.Context, _ *entity.Category) error { return nil }
func (stubCategoryRepository) FindByID(_ context.Context, _ uuid.UUID) (*entity.Category, error) {
	return nil, domainerror.ErrCategoryNotFound
}
func (stubCategoryRepository) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}
func (stubCategoryRepository) Update(_ context.Context, _ *entity.Category) error { return nil }
func (stubCategoryRepository) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

func TestUpdateSchedule_CadenceChangeRealignsFromPendingOccurrence(t *testing.T) {
	userID := uuid.New()
	schedule := monthlyRent(userID, uuid.New())
	// The June 1 occurrence was consumed by a late sweep on July 20; the
	// pending occurrence is July 1.
	processedAt := day(2024, 7, 20)
	schedule.LastProcessedAt = &processedAt
	schedule.NextDate = day(2024, 7, 1)

	scheduleRepo := newFakeScheduleRepository(schedule)
	uc := NewUpdateScheduleUseCase(scheduleRepo, stubCategoryRepository{})

	weekly := entity.FrequencyWeekly
	output, err := uc.Execute(context.Background(), UpdateScheduleInput{
		ScheduleID: schedule.ID,
		UserID:     userID,
		Frequency:  &weekly,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// One week after the pending July 1 occurrence, not after the July 20
	// processing timestamp.
	if !output.Schedule.NextDate.Equal(day(2024, 7, 8)) {
		t.Errorf("expected next date 2024-07-08, got %v", output.Schedule.NextDate)
	}
}

func TestUpdateSchedule_CadenceChangeOnNeverProcessedScheduleKeepsStartDate(t *testing.T) {
	userID := uuid.New()
	schedule := monthlyRent(userID, uuid.New())

	scheduleRepo := newFakeScheduleRepository(schedule)
	uc := NewUpdateScheduleUseCase(scheduleRepo, stubCategoryRepository{})

	interval := 3
	output, err := uc.Execute(context.Background(), UpdateScheduleInput{
		ScheduleID: schedule.ID,
		UserID:     userID,
		Interval:   &interval,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !output.Schedule.NextDate.Equal(schedule.StartDate) {
		t.Errorf("expected the first occurrence to stay on the start date, got %v", output.Schedule.NextDate)
	}
}
