// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerflow/backend/internal/application/adapter"
)

const (
	// ruleGuardKeyPrefix namespaces guard keys in the shared Redis instance.
	ruleGuardKeyPrefix = "rule-applied:"

	// ruleGuardTTL bounds how long dedup markers live. A pair older than
	// this can no longer be retried by the engine anyway.
	ruleGuardTTL = 24 * time.Hour
)

// redisRuleGuard implements adapter.RuleApplicationGuard on top of Redis
// SET NX, so the first-application check is atomic across processes.
type redisRuleGuard struct {
	client *redis.Client
}

// NewRedisRuleGuard creates a rule application guard backed by Redis.
func NewRedisRuleGuard(client *redis.Client) adapter.RuleApplicationGuard {
	return &redisRuleGuard{client: client}
}

// FirstApplication marks the (rule, transaction) pair as applied and reports
// whether this call was the first to do so.
func (g *redisRuleGuard) FirstApplication(ctx context.Context, ruleID, transactionID uuid.UUID) (bool, error) {
	key := ruleGuardKeyPrefix + ruleID.String() + ":" + transactionID.String()
	return g.client.SetNX(ctx, key, 1, ruleGuardTTL).Result()
}
