package s3archive

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/olusolaa/hilog/internal/core/ports"
)

const (
	defaultRateLimitRPS = 5
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

type DefaultRateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter returns a token bucket allowing rps calls per second. Values
// outside 1..100 fall back to the default with a warning; 0 is silent.
func NewRateLimiter(rps int, logger ports.Logger) *DefaultRateLimiter {
	limit := defaultRateLimitRPS
	switch {
	case rps >= minRateLimitRPS && rps <= maxRateLimitRPS:
		limit = rps
	case rps != 0:
		logger.Warnf(context.Background(), "Invalid S3 archive RPS configured (%d), using default %d RPS. Valid range: %d-%d.",
			rps, defaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
	}
	return &DefaultRateLimiter{limiter: rate.NewLimiter(rate.Limit(limit), limit)}
}

func (l *DefaultRateLimiter) Wait(ctx context.Context, logger ports.Logger) error {
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			logger.Warnf(ctx, "Error waiting for S3 archive rate limiter: %v", err)
		}
		return err
	}
	return nil
}
