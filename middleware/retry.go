package middleware

import (
	"context"
	"time"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/backoff"
	"github.com/xraph/trawl/platform"
)

// RetryOption configures the retry middleware.
type RetryOption func(*retryClient)

// WithMaxAttempts caps how many times a failing call is attempted in
// total, the initial call included. Default: 3.
func WithMaxAttempts(n int) RetryOption {
	return func(c *retryClient) { c.maxAttempts = n }
}

// WithBackoff sets the delay strategy between attempts. Default:
// backoff.DefaultStrategy.
func WithBackoff(s backoff.Strategy) RetryOption {
	return func(c *retryClient) { c.strategy = s }
}

// Retry returns middleware that retries transport errors with backoff.
// Only errors are retried: a declined submission (zero handle, nil
// error) is a platform decision and passes through, as do outcome
// queries that report a job still running.
func Retry(opts ...RetryOption) Middleware {
	return func(next platform.Client) platform.Client {
		c := &retryClient{
			wrapped:     wrapped{next: next},
			maxAttempts: 3,
			strategy:    backoff.DefaultStrategy(),
		}
		for _, opt := range opts {
			opt(c)
		}
		return c
	}
}

type retryClient struct {
	wrapped
	maxAttempts int
	strategy    backoff.Strategy
}

func (c *retryClient) Submit(ctx context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	var h platform.Handle
	err := c.retry(ctx, func() error {
		var err error
		h, err = c.next.Submit(ctx, spider, req)
		return err
	})
	return h, err
}

func (c *retryClient) Outcome(ctx context.Context, handle platform.Handle) (trawl.Outcome, bool, error) {
	var (
		outcome  trawl.Outcome
		finished bool
	)
	err := c.retry(ctx, func() error {
		var err error
		outcome, finished, err = c.next.Outcome(ctx, handle)
		return err
	})
	return outcome, finished, err
}

func (c *retryClient) retry(ctx context.Context, call func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = call(); err == nil || attempt >= c.maxAttempts {
			return err
		}

		timer := time.NewTimer(c.strategy.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
