package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultCooldown is how long a repeated alert for the same vessel and status is suppressed.
const DefaultCooldown = 5 * time.Minute

// RedisSetter is the part of a redis client the cooldown needs.
type RedisSetter interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// Cooldown suppresses repeated alerts for the same vessel and status within a window.
type Cooldown struct {
	client RedisSetter
	window time.Duration
}

// NewCooldown creates a cooldown over client; a non-positive window uses DefaultCooldown.
func NewCooldown(client RedisSetter, window time.Duration) *Cooldown {
	if window <= 0 {
		window = DefaultCooldown
	}

	return &Cooldown{client: client, window: window}
}

// Allow reports whether an alert may be sent and, if so, starts the window.
func (c *Cooldown) Allow(ctx context.Context, vesselID string, status models.StatusCode) (bool, error) {
	key := fmt.Sprintf("alert:%s:%s", vesselID, status)

	ok, err := c.client.SetNX(ctx, key, time.Now().Unix(), c.window).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown check failed: %w", err)
	}

	return ok, nil
}
