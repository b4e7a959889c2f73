package handler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/cadence/pkg/domain"
)

// ErrInvalidLimit is returned by NewThreshold for a non-positive limit.
var ErrInvalidLimit = errors.New("threshold handler requires a positive limit")

// Matcher decides whether an error belongs to the category a Threshold
// handler counts. Errors outside the category always propagate.
type Matcher func(error) bool

// Is returns a Matcher for the category rooted at target, following
// wrapped errors the way errors.Is does.
func Is(target error) Matcher {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

// Threshold absorbs errors of a configured category until a limit is
// reached, then propagates that and every subsequent matching error.
// Errors outside the category propagate immediately.
//
// The running count lives on the scope active at the fault, keyed per
// handler instance so two thresholds on one loop never collide. In
// shared-counter mode it lives on the scope's parent instead, so sibling
// loops under one parent draw down a single budget.
type Threshold struct {
	limit  int
	match  Matcher
	shared bool
	key    string
}

// Option configures a Threshold handler.
type Option func(*Threshold)

// WithMatcher restricts the counted category. The default counts every
// error.
func WithMatcher(m Matcher) Option {
	return func(h *Threshold) {
		h.match = m
	}
}

// WithSharedCounter stores the count on the parent scope when one exists,
// pooling the budget across sibling scopes.
func WithSharedCounter() Option {
	return func(h *Threshold) {
		h.shared = true
	}
}

// NewThreshold creates a handler that absorbs up to limit matching errors.
// Misconfiguration fails here, never mid-loop.
func NewThreshold(limit int, opts ...Option) (*Threshold, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	h := &Threshold{
		limit: limit,
		match: func(error) bool { return true },
		key:   "cadence.handler.threshold." + uuid.NewString(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// counter is the mutable state slot stored on a scope. next is atomic
// with respect to sibling iterations sharing the slot, so the count and
// the absorb/propagate decision never tear under the concurrent engine.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

func (h *Threshold) Handle(scope *domain.Scope, err error) error {
	if !h.match(err) {
		return err
	}

	slot := scope
	if h.shared && scope.Parent() != nil {
		slot = scope.Parent()
	}
	c := slot.GetOrPut(h.key, &counter{}).(*counter)

	if c.next() > h.limit {
		return err
	}
	return nil
}
