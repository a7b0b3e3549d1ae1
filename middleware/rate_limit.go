package middleware

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"waitlist-service/domain"
	"waitlist-service/httperrors"
	"waitlist-service/request"
)

type RateLimiter interface {
	Allow(ctx context.Context, clientKey string) (*domain.RateLimitResult, error)
}

func RateLimit(limiter RateLimiter) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			result, err := limiter.Allow(ctx.Context(), ctx.ClientKey())
			if err != nil {
				return errors.WithMessage(err, "rate limit: allow")
			}
			if !result.Allow {
				return httperrors.New(
					http.StatusTooManyRequests,
					"Too many requests. Please try again in a minute.",
					errors.Errorf("rate limit: limit has been reached for client '%s'", ctx.ClientKey()),
				)
			}

			return next.Handle(ctx)
		})
	}
}
