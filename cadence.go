package cadence

import (
	"context"
	"log/slog"

	"github.com/aretw0/cadence/internal/runtime"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// Status re-exports the iteration outcome for convenience.
type Status = domain.Status

// Continue and Finished are the two iteration outcomes.
const (
	Continue = domain.Continue
	Finished = domain.Finished
)

// Scope re-exports the per-invocation attribute bag.
type Scope = domain.Scope

// Callback re-exports the unit-of-work contract.
type Callback = ports.Callback

// Option configures a Repeater or a Concurrent repeater.
type Option = runtime.Option

// WithPolicy sets the completion policy. When omitted, the loop runs until
// the callback itself reports Finished.
func WithPolicy(p ports.CompletionPolicy) Option {
	return runtime.WithPolicy(p)
}

// WithExceptionHandler sets the exception handler. When omitted, every
// callback error propagates and terminates the loop.
func WithExceptionHandler(h ports.ExceptionHandler) Option {
	return runtime.WithExceptionHandler(h)
}

// WithListeners registers lifecycle listeners. Open and Before fire in
// registration order; After, OnError and Close in reverse.
func WithListeners(listeners ...ports.Listener) Option {
	return runtime.WithListeners(listeners...)
}

// WithLogger sets a structured logger for engine diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return runtime.WithLogger(logger)
}

// WithMaxInFlight caps the concurrent repeater's in-flight submissions.
// It has no effect on a sequential Repeater.
func WithMaxInFlight(n int) Option {
	return runtime.WithMaxInFlight(n)
}

// WithIsolatedScopes gives each concurrent iteration its own child scope.
// It has no effect on a sequential Repeater.
func WithIsolatedScopes() Option {
	return runtime.WithIsolatedScopes()
}

// Repeater is the high-level entry point for the sequential engine. A
// Repeater holds no per-invocation state and is safe to reuse and share.
type Repeater struct {
	engine *runtime.Engine
}

// New creates a Repeater. Defaults when options are omitted: an unbounded
// policy, a propagate-everything handler, and an empty listener chain.
func New(opts ...Option) *Repeater {
	return &Repeater{engine: runtime.NewEngine(opts...)}
}

// Run invokes cb repeatedly until the policy declares the loop finished or
// an unabsorbed error ends it. It returns Finished when no iteration ran,
// otherwise the last status the callback reported, and fails by
// propagating whatever error the exception handler does not absorb.
func (r *Repeater) Run(ctx context.Context, cb Callback) (Status, error) {
	return r.engine.Run(ctx, nil, cb)
}

// RunIn is Run for a nested loop: parent is the scope of the enclosing
// loop, so the new loop's scope becomes its child. Callbacks that start
// inner loops should pass their own scope here.
func (r *Repeater) RunIn(ctx context.Context, parent *Scope, cb Callback) (Status, error) {
	return r.engine.Run(ctx, parent, cb)
}

// Concurrent is the high-level entry point for the concurrent engine. It
// fans iterations out to an externally supplied worker pool while keeping
// completion and exception semantics identical to the sequential loop.
type Concurrent struct {
	engine *runtime.ConcurrentEngine
}

// NewConcurrent creates a concurrent repeater submitting to pool. The pool
// is a collaborator: the repeater never owns, sizes or shuts it down.
func NewConcurrent(pool ports.Executor, opts ...Option) *Concurrent {
	return &Concurrent{engine: runtime.NewConcurrentEngine(pool, opts...)}
}

// Run behaves like Repeater.Run with iterations executing in parallel. The
// first error in completion order that the handler refuses to absorb
// decides failure; in-flight iterations are drained before Run returns.
func (c *Concurrent) Run(ctx context.Context, cb Callback) (Status, error) {
	return c.engine.Run(ctx, nil, cb)
}

// RunIn is Run with an explicit parent scope for nested loops.
func (c *Concurrent) RunIn(ctx context.Context, parent *Scope, cb Callback) (Status, error) {
	return c.engine.Run(ctx, parent, cb)
}
