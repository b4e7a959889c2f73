package handler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/handler"
)

var (
	errKindA = errors.New("kind A")
	errKindB = errors.New("kind B")
)

func TestNewThreshold_RejectsNonPositiveLimit(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := handler.NewThreshold(n)
		assert.ErrorIs(t, err, handler.ErrInvalidLimit, "limit %d", n)
	}
}

func TestThreshold_AbsorbsUntilLimit(t *testing.T) {
	h, err := handler.NewThreshold(2, handler.WithMatcher(handler.Is(errKindA)))
	require.NoError(t, err)

	scope := domain.NewScope()

	assert.NoError(t, h.Handle(scope, errKindA), "first matching error is absorbed")
	assert.NoError(t, h.Handle(scope, errKindA), "second matching error is absorbed")

	third := h.Handle(scope, errKindA)
	assert.ErrorIs(t, third, errKindA, "third matching error propagates")

	// Once over the limit, every subsequent match propagates too.
	assert.Error(t, h.Handle(scope, errKindA))
}

func TestThreshold_OutOfCategoryPropagatesImmediately(t *testing.T) {
	h, err := handler.NewThreshold(5, handler.WithMatcher(handler.Is(errKindA)))
	require.NoError(t, err)

	scope := domain.NewScope()
	assert.ErrorIs(t, h.Handle(scope, errKindB), errKindB)

	// And it does not consume the category budget.
	assert.NoError(t, h.Handle(scope, errKindA))
}

func TestThreshold_MatchesWrappedErrors(t *testing.T) {
	h, err := handler.NewThreshold(1, handler.WithMatcher(handler.Is(errKindA)))
	require.NoError(t, err)

	scope := domain.NewScope()
	wrapped := fmt.Errorf("while reading chunk: %w", errKindA)
	assert.NoError(t, h.Handle(scope, wrapped))
}

func TestThreshold_CountersAreScopePrivate(t *testing.T) {
	h, err := handler.NewThreshold(1)
	require.NoError(t, err)

	a := domain.NewScope()
	b := domain.NewScope()

	assert.NoError(t, h.Handle(a, errKindA))
	assert.NoError(t, h.Handle(b, errKindA), "unrelated scope has its own budget")
	assert.Error(t, h.Handle(a, errKindA))
}

func TestThreshold_SharedCounterPoolsSiblings(t *testing.T) {
	h, err := handler.NewThreshold(2,
		handler.WithMatcher(handler.Is(errKindA)),
		handler.WithSharedCounter(),
	)
	require.NoError(t, err)

	parent := domain.NewScope()
	left := parent.Child()
	right := parent.Child()

	assert.NoError(t, h.Handle(left, errKindA))
	assert.NoError(t, h.Handle(right, errKindA))

	// Third occurrence, regardless of which sibling raises it.
	assert.Error(t, h.Handle(left, errKindA))
	assert.Error(t, h.Handle(right, errKindA))
}

func TestThreshold_SharedCounterWithoutParentFallsBackToScope(t *testing.T) {
	h, err := handler.NewThreshold(1, handler.WithSharedCounter())
	require.NoError(t, err)

	scope := domain.NewScope()
	assert.NoError(t, h.Handle(scope, errKindA))
	assert.Error(t, h.Handle(scope, errKindA))
}

func TestThreshold_TwoHandlersDoNotCollide(t *testing.T) {
	h1, err := handler.NewThreshold(1)
	require.NoError(t, err)
	h2, err := handler.NewThreshold(1)
	require.NoError(t, err)

	scope := domain.NewScope()
	assert.NoError(t, h1.Handle(scope, errKindA))
	assert.NoError(t, h2.Handle(scope, errKindA), "second handler keeps its own counter")
}

func TestPropagate_AlwaysPropagates(t *testing.T) {
	h := handler.NewPropagate()
	scope := domain.NewScope()
	assert.ErrorIs(t, h.Handle(scope, errKindA), errKindA)
}
