package runtime

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// defaultMaxInFlight caps the engine's own in-flight submissions so an
// unbounded executor is not flooded while the policy pre-check stays true.
const defaultMaxInFlight = 4

// WithMaxInFlight sets how many submissions the concurrent engine keeps in
// flight at once. It does not size the pool, which remains an external
// collaborator.
func WithMaxInFlight(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxInFlight = n
		}
	}
}

// WithIsolatedScopes gives every submitted iteration its own child scope
// under the loop's scope, instead of handing all workers the shared scope.
// Policy counters stay on the loop's scope either way.
func WithIsolatedScopes() Option {
	return func(s *settings) {
		s.isolate = true
	}
}

// ConcurrentEngine runs the same loop contract as Engine but submits
// callback invocations to an externally supplied worker pool, keeping
// several iterations in flight at once.
//
// Policy and handler semantics are unchanged: the owning goroutine is the
// only one that touches Update, Complete and Handle, receiving completed
// iterations over a channel, so the strategies stay single-threaded while
// callbacks run in parallel. Before fires on the worker immediately ahead
// of the callback; After and OnError fire on the owning goroutine.
type ConcurrentEngine struct {
	settings
	pool ports.Executor
}

// NewConcurrentEngine creates a concurrent engine submitting to pool.
func NewConcurrentEngine(pool ports.Executor, opts ...Option) *ConcurrentEngine {
	e := &ConcurrentEngine{settings: defaultSettings(), pool: pool}
	for _, opt := range opts {
		opt(&e.settings)
	}
	return e
}

// outcome is one settled submission, reported back to the owner.
type outcome struct {
	scope  *domain.Scope
	status domain.Status
	err    error
}

// Run drives the concurrent loop. The policy pre-check gates whether a new
// iteration may be submitted; completions are processed in the order they
// settle. The first error the handler refuses to absorb (in completion
// order) decides FAILED: no new submissions are issued, in-flight work is
// drained, later errors are logged and discarded, and Close runs before
// the error reaches the caller.
func (e *ConcurrentEngine) Run(ctx context.Context, parent *domain.Scope, cb ports.Callback) (domain.Status, error) {
	scope := e.policy.Start(parent)
	e.logger.Debug("loop open", "scope", scope.ID())
	e.chain.Open(scope)

	results := make(chan outcome, e.maxInFlight)
	inFlight := 0
	status := domain.Finished
	done := false
	var runErr error

	submit := func() error {
		iterScope := scope
		if e.isolate {
			iterScope = scope.Child()
		}
		return e.pool.Submit(func() {
			e.chain.Before(iterScope)
			st, err := cb(ctx, iterScope)
			results <- outcome{scope: iterScope, status: st, err: err}
		})
	}

	// handle routes one error through the exception handler on the owner
	// goroutine. Absorbed errors count as completed iterations with an
	// implied Continue.
	handle := func(errScope *domain.Scope, err error) {
		if herr := e.handler.Handle(errScope, err); herr != nil {
			runErr = herr
			return
		}
		e.policy.Update(scope)
		status = domain.Continue
		if e.policy.Complete(scope, domain.Continue) {
			done = true
		}
	}

	for {
		// Saturate the pool while no termination has been decided.
		for !done && runErr == nil && ctx.Err() == nil &&
			inFlight < e.maxInFlight && e.policy.Ready(scope) {
			if err := submit(); err != nil {
				// Pool refused to schedule: same routing as a callback
				// error raised at submission time.
				e.chain.OnError(scope, err)
				handle(scope, err)
				continue
			}
			inFlight++
		}

		if inFlight == 0 {
			break
		}

		res := <-results
		inFlight--

		if res.err != nil {
			if done || runErr != nil {
				// Termination already decided; the error is discarded.
				e.logger.Warn("discarding late iteration error",
					"scope", res.scope.ID(), "err", res.err)
				continue
			}
			e.chain.OnError(res.scope, res.err)
			handle(res.scope, res.err)
			continue
		}

		e.chain.After(res.scope, res.status)
		if done || runErr != nil {
			continue
		}
		e.policy.Update(scope)
		status = res.status
		if e.policy.Complete(scope, res.status) {
			done = true
		}
	}

	if runErr == nil && !done {
		if err := ctx.Err(); err != nil {
			runErr = err
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
