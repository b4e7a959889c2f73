package handler

import "github.com/aretw0/cadence/pkg/domain"

// Propagate is the default exception handler: every callback error aborts
// the loop.
type Propagate struct{}

// NewPropagate creates the always-propagate handler.
func NewPropagate() *Propagate {
	return &Propagate{}
}

func (h *Propagate) Handle(_ *domain.Scope, err error) error {
	return err
}
