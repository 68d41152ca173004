// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/domain/entity"
)

// RuleRepository defines the interface for automation rule persistence operations.
type RuleRepository interface {
	// Create creates a new rule in the database.
	Create(ctx context.Context, rule *entity.Rule) error

	// FindByID retrieves a rule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error)

	// FindByUser retrieves all rules for a user, sorted by priority descending
	// with creation order as a stable tie-break.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error)

	// FindActiveByUser retrieves only active rules for a user in the same
	// deterministic order as FindByUser. The rule engine evaluates rules in
	// exactly this order.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error)

	// Update updates an existing rule in the database.
	Update(ctx context.Context, rule *entity.Rule) error

	// Delete removes a rule from the database. Transactions already mutated by
	// the rule are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error

	// RecordApplication increments the rule's usage counter by one and sets
	// its last-applied timestamp. Persisted independently of any transaction
	// mutation.
	RecordApplication(ctx context.Context, ruleID uuid.UUID, appliedAt time.Time) error

	// UpdatePriorities updates the priorities for multiple rules in a batch operation.
	UpdatePriorities(ctx context.Context, updates []entity.RulePriorityUpdate) error

	// GetMaxPriorityByUser gets the maximum priority value among the user's rules.
	GetMaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
