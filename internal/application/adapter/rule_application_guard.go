// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// RuleApplicationGuard deduplicates rule-statistics updates. The rule engine
// records at most one application per (rule, transaction) pair, so a retried
// persistence call for the same logical application cannot double-increment
// the rule's usage counter.
type RuleApplicationGuard interface {
	// FirstApplication marks the (rule, transaction) pair as applied and
	// reports whether this call was the first to do so.
	FirstApplication(ctx context.Context, ruleID, transactionID uuid.UUID) (bool, error)
}
