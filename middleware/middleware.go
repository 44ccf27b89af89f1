// Package middleware provides observability and pacing wrappers for embedders.
package middleware

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/klejdi94/simscore/core"
	"github.com/klejdi94/simscore/embedder"
	"github.com/klejdi94/simscore/pacing"
)

// Middleware wraps an embedder with additional behavior (logging, metrics, pacing).
type Middleware func(embedder.Embedder) embedder.Embedder

// Chain wraps e with all middlewares in order (first middleware is outermost).
func Chain(e embedder.Embedder, mws ...Middleware) embedder.Embedder {
	for i := len(mws) - 1; i >= 0; i-- {
		e = mws[i](e)
	}
	return e
}

// loggingEmbedder logs requests and their outcome.
type loggingEmbedder struct {
	next   embedder.Embedder
	logger *slog.Logger
}

// Logging returns a middleware that logs each Embed call at debug level (text length, duration, error).
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(e embedder.Embedder) embedder.Embedder {
		return &loggingEmbedder{next: e, logger: logger}
	}
}

func (l *loggingEmbedder) Embed(ctx context.Context, text string) (core.Vector, error) {
	start := time.Now()
	vec, err := l.next.Embed(ctx, text)
	if err != nil {
		l.logger.DebugContext(ctx, "embed failed", "text_len", len(text), "duration", time.Since(start), "error", err)
		return nil, err
	}
	l.logger.DebugContext(ctx, "embed ok", "text_len", len(text), "dims", len(vec), "duration", time.Since(start))
	return vec, nil
}

// metricsEmbedder counts requests and failures.
type metricsEmbedder struct {
	next     embedder.Embedder
	requests atomic.Uint64
	errors   atomic.Uint64
}

// Metrics returns a middleware that counts requests and errors.
// Counters are exposed via Requests and Errors.
func Metrics() (Middleware, *Counters) {
	m := &metricsEmbedder{}
	return func(e embedder.Embedder) embedder.Embedder {
		m.next = e
		return m
	}, &Counters{m: m}
}

// Counters provides read access to collected metrics.
type Counters struct {
	m *metricsEmbedder
}

func (c *Counters) Requests() uint64 { return c.m.requests.Load() }
func (c *Counters) Errors() uint64   { return c.m.errors.Load() }

func (m *metricsEmbedder) Embed(ctx context.Context, text string) (core.Vector, error) {
	m.requests.Add(1)
	vec, err := m.next.Embed(ctx, text)
	if err != nil {
		m.errors.Add(1)
		return nil, err
	}
	return vec, nil
}

// pacedEmbedder waits on a pacer before every request.
type pacedEmbedder struct {
	next  embedder.Embedder
	pacer pacing.Pacer
}

// Paced returns a middleware that gates every Embed call on p. A nil pacer never waits.
func Paced(p pacing.Pacer) Middleware {
	if p == nil {
		p = pacing.None
	}
	return func(e embedder.Embedder) embedder.Embedder {
		return &pacedEmbedder{next: e, pacer: p}
	}
}

func (p *pacedEmbedder) Embed(ctx context.Context, text string) (core.Vector, error) {
	if err := p.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	return p.next.Embed(ctx, text)
}
