package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/xraph/trawl/platform"
)

// RateLimit returns middleware that throttles platform submissions with
// a token bucket. Submit blocks until a token is available or the
// context is cancelled. Outcome queries are not limited.
func RateLimit(limit rate.Limit, burst int) Middleware {
	return RateLimitWith(rate.NewLimiter(limit, burst))
}

// RateLimitWith returns rate-limiting middleware using the provided
// limiter, which may be shared across several clients.
func RateLimitWith(limiter *rate.Limiter) Middleware {
	return func(next platform.Client) platform.Client {
		return &rateLimitClient{wrapped: wrapped{next: next}, limiter: limiter}
	}
}

type rateLimitClient struct {
	wrapped
	limiter *rate.Limiter
}

func (c *rateLimitClient) Submit(ctx context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Submit(ctx, spider, req)
}
