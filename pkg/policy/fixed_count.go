package policy

import (
	"errors"
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

// ErrInvalidCount is returned by NewFixedCount for a non-positive count.
var ErrInvalidCount = errors.New("fixed-count policy requires a positive count")

// FixedCount completes a loop after a fixed number of iterations, or
// earlier if an iteration reports Finished. The running count is a scope
// attribute, so the same FixedCount value can drive independent loops
// concurrently.
type FixedCount struct {
	count int
}

// NewFixedCount creates a policy that allows exactly count iterations.
// Misconfiguration fails here, never mid-loop.
func NewFixedCount(count int) (*FixedCount, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	return &FixedCount{count: count}, nil
}

func (p *FixedCount) Start(parent *domain.Scope) *domain.Scope {
	scope := newScope(parent)
	scope.Put(keyIterations, 0)
	return scope
}

func (p *FixedCount) Update(scope *domain.Scope) {
	bumpIterations(scope)
}

// Ready gates the next iteration on the remaining budget.
func (p *FixedCount) Ready(scope *domain.Scope) bool {
	return Iterations(scope) < p.count
}

// Complete combines the callback's status with the exhausted-budget
// signal; Finished from either side ends the loop.
func (p *FixedCount) Complete(scope *domain.Scope, last domain.Status) bool {
	own := domain.Continue
	if Iterations(scope) >= p.count {
		own = domain.Finished
	}
	return last.And(own) == domain.Finished
}
