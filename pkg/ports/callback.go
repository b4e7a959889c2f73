package ports

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// Callback is one unit of repeatable work. The engine invokes it once per
// iteration with the scope of the running loop. It reports whether more
// work remains, or returns an error to be routed through the loop's
// ExceptionHandler.
//
// A callback must not retain the scope past its own return.
type Callback func(ctx context.Context, scope *domain.Scope) (domain.Status, error)

// Adapt wraps an arbitrary do-once function as a Callback. A nil return
// signals Finished, so the wrapped call runs exactly once under the
// default policy; an error is raised as a callback error. This is the
// boundary adapter for hosts that want to push an existing function
// through the engine without implementing the contract themselves.
func Adapt(fn func(ctx context.Context) error) Callback {
	return func(ctx context.Context, _ *domain.Scope) (domain.Status, error) {
		if err := fn(ctx); err != nil {
			return domain.Continue, err
		}
		return domain.Finished, nil
	}
}
