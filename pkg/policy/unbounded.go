package policy

import "github.com/aretw0/cadence/pkg/domain"

// keyIterations holds the number of completed iterations on a scope
// created by one of the built-in policies.
const keyIterations = "cadence.policy.iterations"

// Iterations reports how many iterations have completed in the loop that
// owns scope. It returns 0 for scopes not created by a built-in policy.
func Iterations(scope *domain.Scope) int {
	if v, ok := scope.Get(keyIterations); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

func bumpIterations(scope *domain.Scope) {
	scope.Put(keyIterations, Iterations(scope)+1)
}

func newScope(parent *domain.Scope) *domain.Scope {
	if parent != nil {
		return parent.Child()
	}
	return domain.NewScope()
}

// Unbounded is the default completion policy: the loop runs until the
// callback itself reports Finished. It still counts iterations, for
// listeners and debugging.
type Unbounded struct{}

// NewUnbounded creates the default, callback-driven policy.
func NewUnbounded() *Unbounded {
	return &Unbounded{}
}

func (p *Unbounded) Start(parent *domain.Scope) *domain.Scope {
	scope := newScope(parent)
	scope.Put(keyIterations, 0)
	return scope
}

func (p *Unbounded) Update(scope *domain.Scope) {
	bumpIterations(scope)
}

func (p *Unbounded) Ready(_ *domain.Scope) bool {
	return true
}

func (p *Unbounded) Complete(_ *domain.Scope, last domain.Status) bool {
	return last == domain.Finished
}
