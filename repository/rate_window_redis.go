package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"waitlist-service/domain"
)

// RedisRateLimiter shares fixed-window counters between instances.
// Unlike the local store the counter keeps incrementing past the limit,
// but the value above the threshold is never read, so admission behavior
// is identical.
type RedisRateLimiter struct {
	cli redis.UniversalClient
}

func NewRedisRateLimiter(cli redis.UniversalClient) RedisRateLimiter {
	return RedisRateLimiter{
		cli: cli,
	}
}

func (r RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*domain.RateLimitResult, error) {
	redisKey := r.key(key)

	value, err := r.cli.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, errors.WithMessage(err, "incr")
	}

	if value == 1 {
		err := r.cli.ExpireNX(ctx, redisKey, window).Err()
		if err != nil {
			return nil, errors.WithMessage(err, "expire nx")
		}
	}

	if value > int64(limit) {
		retryAfter, err := r.cli.PTTL(ctx, redisKey).Result()
		if err != nil {
			return nil, errors.WithMessage(err, "pttl")
		}
		return &domain.RateLimitResult{
			Allow:      false,
			Remaining:  0,
			RetryAfter: retryAfter,
		}, nil
	}

	return &domain.RateLimitResult{
		Allow:      true,
		Remaining:  limit - int(value),
		RetryAfter: -1,
	}, nil
}

func (r RedisRateLimiter) key(clientKey string) string {
	return fmt.Sprintf("rate_limit:%s", clientKey)
}
