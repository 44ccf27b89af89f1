// Package embedder provides clients that turn text into embedding vectors.
package embedder

import (
	"context"
	"net/http"
	"time"

	"github.com/klejdi94/simscore/core"
)

// DefaultTimeout bounds a single embedding request when no HTTP client is configured.
const DefaultTimeout = 60 * time.Second

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// Embedder produces a vector embedding for text.
type Embedder interface {
	Embed(ctx context.Context, text string) (core.Vector, error)
}

// Func adapts a function to Embedder.
type Func func(ctx context.Context, text string) (core.Vector, error)

// Embed implements Embedder.
func (f Func) Embed(ctx context.Context, text string) (core.Vector, error) {
	return f(ctx, text)
}

// Result is the outcome of one embedding request: a vector on success, the failure otherwise.
type Result struct {
	Vector core.Vector
	Err    error
}

// OK reports whether the request produced a vector.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the failure text, or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Request calls e and captures the outcome as a Result.
func Request(ctx context.Context, e Embedder, text string) Result {
	vec, err := e.Embed(ctx, text)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Vector: vec}
}
