package ports

import "github.com/aretw0/cadence/pkg/domain"

// ExceptionHandler decides, per error raised by a callback, whether the
// loop absorbs it and continues or aborts and surfaces it.
//
// Handle returns nil to absorb err (the iteration counts as completed and
// the loop goes on) or a non-nil error to propagate out of the entire
// loop. Handlers usually rethrow err itself, but may wrap or replace it.
// The scope passed in is the one active at the time of the fault, which
// lets stateful handlers keep counters there (see Scope.GetOrPut) and
// share them with parent scopes when configured to.
type ExceptionHandler interface {
	Handle(scope *domain.Scope, err error) error
}
