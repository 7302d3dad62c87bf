// Package middleware provides composable decorators for platform
// clients: logging, metrics, tracing, and submission rate limiting.
//
// A Middleware wraps a platform.Client and returns a new one. Chain
// composes several so the first middleware listed is the outermost.
package middleware

import (
	"context"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// Middleware decorates a platform client.
type Middleware func(platform.Client) platform.Client

// Chain composes middlewares around client. Chain(c, a, b) wraps c so
// that a sees each call first, then b, then c.
func Chain(client platform.Client, mws ...Middleware) platform.Client {
	for i := len(mws) - 1; i >= 0; i-- {
		client = mws[i](client)
	}
	return client
}

// wrapped is the common base for client decorators. It forwards both
// calls to the next client; decorators override what they need.
type wrapped struct {
	next platform.Client
}

func (w *wrapped) Submit(ctx context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	return w.next.Submit(ctx, spider, req)
}

func (w *wrapped) Outcome(ctx context.Context, h platform.Handle) (trawl.Outcome, bool, error) {
	return w.next.Outcome(ctx, h)
}

// Unwrap exposes the decorated client so capabilities like
// platform.Resumer stay discoverable through the chain.
func (w *wrapped) Unwrap() platform.Client { return w.next }
