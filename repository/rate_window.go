package repository

import (
	"context"
	"sync"
	"time"

	"waitlist-service/domain"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// LocalRateLimiter keeps fixed-window counters in a process-wide map.
// The window is not sliding: a client can burst up to twice the nominal
// rate across a window boundary, which is documented, accepted behavior.
type LocalRateLimiter struct {
	lock    sync.Mutex
	windows map[string]*rateWindow

	sweepInterval time.Duration
	lastSweep     time.Time
}

func NewLocalRateLimiter(sweepInterval time.Duration) *LocalRateLimiter {
	return &LocalRateLimiter{
		windows:       make(map[string]*rateWindow),
		sweepInterval: sweepInterval,
		lastSweep:     time.Now(),
	}
}

func (s *LocalRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*domain.RateLimitResult, error) {
	now := time.Now()

	s.lock.Lock()
	defer s.lock.Unlock()

	s.sweep(now)

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		s.windows[key] = &rateWindow{count: 1, resetAt: now.Add(window)}
		return &domain.RateLimitResult{
			Allow:      true,
			Remaining:  limit - 1,
			RetryAfter: -1,
		}, nil
	}

	if w.count >= limit {
		return &domain.RateLimitResult{
			Allow:      false,
			Remaining:  0,
			RetryAfter: w.resetAt.Sub(now),
		}, nil
	}

	w.count++
	return &domain.RateLimitResult{
		Allow:      true,
		Remaining:  limit - w.count,
		RetryAfter: -1,
	}, nil
}

// sweep drops windows whose resetAt is already past. Runs on the Allow path
// under the same lock, so entries for clients never seen again do not
// accumulate for the life of the process.
func (s *LocalRateLimiter) sweep(now time.Time) {
	if s.sweepInterval <= 0 {
		return
	}
	if now.Sub(s.lastSweep) < s.sweepInterval {
		return
	}

	for key, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, key)
		}
	}
	s.lastSweep = now
}
