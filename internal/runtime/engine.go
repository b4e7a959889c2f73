package runtime

import (
	"context"
	"log/slog"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/handler"
	"github.com/aretw0/cadence/pkg/policy"
	"github.com/aretw0/cadence/pkg/ports"
)

// settings is the configuration shared by the sequential and concurrent
// engines.
type settings struct {
	policy      ports.CompletionPolicy
	handler     ports.ExceptionHandler
	chain       *Chain
	logger      *slog.Logger
	maxInFlight int
	isolate     bool
}

func defaultSettings() settings {
	return settings{
		policy:      policy.NewUnbounded(),
		handler:     handler.NewPropagate(),
		chain:       NewChain(),
		logger:      logging.NewNop(),
		maxInFlight: defaultMaxInFlight,
	}
}

// Option configures an engine.
type Option func(*settings)

// WithPolicy sets the completion policy. Default: policy.Unbounded.
func WithPolicy(p ports.CompletionPolicy) Option {
	return func(s *settings) {
		s.policy = p
	}
}

// WithExceptionHandler sets the exception handler. Default: propagate
// every error.
func WithExceptionHandler(h ports.ExceptionHandler) Option {
	return func(s *settings) {
		s.handler = h
	}
}

// WithListeners appends lifecycle listeners, in registration order.
func WithListeners(listeners ...ports.Listener) Option {
	return func(s *settings) {
		for _, l := range listeners {
			s.chain.Register(l)
		}
	}
}

// WithLogger sets a structured logger for the engine's own diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Engine is the sequential repetition loop. It repeatedly invokes a
// callback until the completion policy declares the sequence finished or
// the exception handler propagates an error. All state lives on the scope
// created per Run, so one Engine is safe to reuse across invocations.
type Engine struct {
	settings
}

// NewEngine creates a sequential engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{settings: defaultSettings()}
	for _, opt := range opts {
		opt(&e.settings)
	}
	return e
}

// Run drives the loop: INIT (create scope, open listeners), RUNNING
// (iterate until the policy or an unhandled error stops it), then COMPLETE
// or FAILED. Close notifications run on every exit path.
//
// parent is the scope of an enclosing loop when Run is nested inside
// another engine's callback, or nil for a top-level loop. The returned
// status is Finished when no iteration ran, otherwise the last status the
// callback reported. Context cancellation stops the loop before the next
// iteration and surfaces ctx.Err() without consulting the exception
// handler.
func (e *Engine) Run(ctx context.Context, parent *domain.Scope, cb ports.Callback) (domain.Status, error) {
	scope := e.policy.Start(parent)
	e.logger.Debug("loop open", "scope", scope.ID())
	e.chain.Open(scope)

	status := domain.Finished
	var runErr error

	for e.policy.Ready(scope) {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		e.chain.Before(scope)
		st, err := cb(ctx, scope)
		if err != nil {
			e.chain.OnError(scope, err)
			if herr := e.handler.Handle(scope, err); herr != nil {
				runErr = herr
				break
			}
			// Absorbed: the iteration still counts, with an implied
			// Continue for the post-check.
			st = domain.Continue
			e.policy.Update(scope)
		} else {
			e.policy.Update(scope)
			e.chain.After(scope, st)
		}

		status = st
		if e.policy.Complete(scope, st) {
			break
		}
	}

	e.chain.Close(scope)
	if runErr != nil {
		e.logger.Debug("loop failed", "scope", scope.ID(), "err", runErr)
		return status, runErr
	}
	e.logger.Debug("loop complete", "scope", scope.ID(), "status", status)
	return status, nil
}
