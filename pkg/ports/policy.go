package ports

import "github.com/aretw0/cadence/pkg/domain"

// CompletionPolicy decides when an iteration sequence ends. It is also the
// factory for the Scope a loop invocation runs in, so any counters it
// needs live as attributes on that scope rather than on the policy value
// itself. One policy instance is therefore safe to share across nested and
// concurrent loops: each Start hands out an independently countered scope.
//
// The engine serializes Update and Complete for a given scope; policies do
// not need internal locking.
type CompletionPolicy interface {
	// Start allocates a fresh scope for one loop invocation, linked to
	// parent when the loop is nested (parent may be nil), and initializes
	// any counters as attributes on it. Each call produces an independent
	// scope even when invoked repeatedly with the same parent.
	Start(parent *domain.Scope) *domain.Scope

	// Update advances the policy's counters on scope. The engine calls it
	// exactly once per completed iteration, successful or error-absorbed.
	Update(scope *domain.Scope)

	// Ready is the pre-iteration check: may the engine start (or, in the
	// concurrent engine, submit) another iteration?
	Ready(scope *domain.Scope) bool

	// Complete is the post-iteration check, combining the callback's own
	// reported status with the policy's counters. A Finished last status
	// completes the loop regardless of the counters: callback-declared
	// completion always wins.
	Complete(scope *domain.Scope, last domain.Status) bool
}
