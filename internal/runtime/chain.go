package runtime

import (
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// Chain fans a single notification out to an ordered set of listeners.
// Entry hooks (Open, Before) traverse in registration order, exit hooks
// (After, OnError, Close) in reverse, so paired setup/teardown nests like
// scoped blocks no matter how many listeners are registered.
//
// Chain itself satisfies ports.Listener.
type Chain struct {
	listeners []ports.Listener
}

// NewChain creates a chain over the given listeners, in order.
func NewChain(listeners ...ports.Listener) *Chain {
	return &Chain{listeners: listeners}
}

// Register appends a listener to the end of the chain.
func (c *Chain) Register(l ports.Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Chain) Open(scope *domain.Scope) {
	for _, l := range c.listeners {
		l.Open(scope)
	}
}

func (c *Chain) Before(scope *domain.Scope) {
	for _, l := range c.listeners {
		l.Before(scope)
	}
}

func (c *Chain) After(scope *domain.Scope, status domain.Status) {
	for i := len(c.listeners) - 1; i >= 0; i-- {
		c.listeners[i].After(scope, status)
	}
}

func (c *Chain) OnError(scope *domain.Scope, err error) {
	for i := len(c.listeners) - 1; i >= 0; i-- {
		c.listeners[i].OnError(scope, err)
	}
}

func (c *Chain) Close(scope *domain.Scope) {
	for i := len(c.listeners) - 1; i >= 0; i-- {
		c.listeners[i].Close(scope)
	}
}
