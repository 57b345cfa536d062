// Package ratelimit provides a Redis fixed-window request limiter for the
// auth endpoints.
package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/helpdesk-io/helpdesk-api/pkg/util"
)

// Limiter counts requests per client IP in fixed windows.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewLimiter builds a limiter. A nil client or non-positive limit disables it.
func NewLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{client: client, limit: limit, window: window, logger: logger}
}

// Handle is a fiber middleware enforcing the limit. Redis failures fail open
// so an unavailable cache never blocks logins.
func (l *Limiter) Handle(c *fiber.Ctx) error {
	if l == nil || l.client == nil || l.limit <= 0 {
		return c.Next()
	}

	key := fmt.Sprintf("ratelimit:auth:%s", c.IP())
	ctx := c.Context()

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable", zap.Error(err))
		return c.Next()
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}
	if count > int64(l.limit) {
		return apperrors.NewTooManyRequests("too many requests, try again later")
	}
	return c.Next()
}
