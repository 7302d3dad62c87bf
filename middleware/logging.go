package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/trawl/platform"
)

// Logging returns middleware that logs every platform submission.
func Logging(logger *slog.Logger) Middleware {
	return func(next platform.Client) platform.Client {
		return &loggingClient{wrapped: wrapped{next: next}, logger: logger}
	}
}

type loggingClient struct {
	wrapped
	logger *slog.Logger
}

func (c *loggingClient) Submit(ctx context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	start := time.Now()
	h, err := c.next.Submit(ctx, spider, req)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		c.logger.Error("submission failed",
			slog.String("spider", spider),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	case h == "":
		c.logger.Warn("submission declined by platform",
			slog.String("spider", spider),
			slog.Duration("elapsed", elapsed),
		)
	default:
		c.logger.Info("job submitted",
			slog.String("spider", spider),
			slog.String("handle", h.String()),
			slog.Duration("elapsed", elapsed),
		)
	}
	return h, err
}
