package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/policy"
)

func TestNewFixedCount_RejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		_, err := policy.NewFixedCount(n)
		assert.ErrorIs(t, err, policy.ErrInvalidCount, "count %d", n)
	}
}

func TestFixedCount_CountsDownBudget(t *testing.T) {
	p, err := policy.NewFixedCount(3)
	require.NoError(t, err)

	scope := p.Start(nil)

	for i := 0; i < 3; i++ {
		assert.True(t, p.Ready(scope), "iteration %d should be allowed", i)
		p.Update(scope)
	}

	assert.False(t, p.Ready(scope))
	assert.True(t, p.Complete(scope, domain.Continue))
	assert.Equal(t, 3, policy.Iterations(scope))
}

func TestFixedCount_CallbackFinishedWins(t *testing.T) {
	p, err := policy.NewFixedCount(100)
	require.NoError(t, err)

	scope := p.Start(nil)
	p.Update(scope)

	// The budget is nowhere near exhausted, but a Finished callback
	// status completes the loop anyway.
	assert.True(t, p.Complete(scope, domain.Finished))
	assert.False(t, p.Complete(scope, domain.Continue))
}

func TestFixedCount_IndependentScopes(t *testing.T) {
	p, err := policy.NewFixedCount(2)
	require.NoError(t, err)

	// One policy value, two loops: each Start hands out its own counter.
	a := p.Start(nil)
	b := p.Start(nil)

	p.Update(a)
	p.Update(a)

	assert.False(t, p.Ready(a))
	assert.True(t, p.Ready(b), "scope b must not see scope a's counter")
	assert.Equal(t, 0, policy.Iterations(b))
}

func TestFixedCount_StartLinksParent(t *testing.T) {
	p, err := policy.NewFixedCount(1)
	require.NoError(t, err)

	parent := domain.NewScope()
	scope := p.Start(parent)
	assert.Same(t, parent, scope.Parent())

	root := p.Start(nil)
	assert.Nil(t, root.Parent())
}

func TestUnbounded_RunsUntilCallbackFinishes(t *testing.T) {
	p := policy.NewUnbounded()
	scope := p.Start(nil)

	for i := 0; i < 10; i++ {
		assert.True(t, p.Ready(scope))
		p.Update(scope)
		assert.False(t, p.Complete(scope, domain.Continue))
	}
	assert.True(t, p.Complete(scope, domain.Finished))
	assert.Equal(t, 10, policy.Iterations(scope))
}
