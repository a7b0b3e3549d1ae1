package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"waitlist-service/conf"
	"waitlist-service/domain"
)

type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*domain.RateLimitResult, error)
}

type RateLimit struct {
	store  RateLimitStore
	limit  int
	window time.Duration
}

func NewRateLimit(store RateLimitStore, config conf.RateLimit) RateLimit {
	return RateLimit{
		store:  store,
		limit:  config.Max(),
		window: config.Window(),
	}
}

func (s RateLimit) Allow(ctx context.Context, clientKey string) (*domain.RateLimitResult, error) {
	result, err := s.store.Allow(ctx, clientKey, s.limit, s.window)
	if err != nil {
		return nil, errors.WithMessage(err, "is allow request per window")
	}

	return result, nil
}
