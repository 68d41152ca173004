// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// ScheduleRepository defines the interface for recurring schedule persistence operations.
type ScheduleRepository interface {
	// Create creates a new recurring schedule in the database.
	Create(ctx context.Context, schedule *entity.RecurringSchedule) error

	// FindByID retrieves a schedule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error)

	// FindByUser retrieves all schedules for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error)

	// FindDue retrieves all active, auto-process schedules whose next
	// occurrence is on or before the given day and whose end date has not
	// passed. Used by the scheduled sweep.
	FindDue(ctx context.Context, asOf time.Time) ([]*entity.RecurringSchedule, error)

	// Update updates an existing schedule in the database.
	Update(ctx context.Context, schedule *entity.RecurringSchedule) error

	// Delete soft-deletes a schedule. Previously materialized transactions
	// keep their back-reference.
	Delete(ctx context.Context, id uuid.UUID) error
}
