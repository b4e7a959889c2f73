package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cadence/pkg/domain"
)

func TestScope_Attributes(t *testing.T) {
	scope := domain.NewScope()

	_, ok := scope.Get("missing")
	assert.False(t, ok)

	scope.Put("k", 42)
	v, ok := scope.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	scope.Put("k", "replaced")
	v, _ = scope.Get("k")
	assert.Equal(t, "replaced", v)
}

func TestScope_Tree(t *testing.T) {
	root := domain.NewScope()
	child := root.Child()
	grandchild := child.Child()

	assert.Nil(t, root.Parent())
	assert.Same(t, root, child.Parent())
	assert.Same(t, child, grandchild.Parent())

	// Identity distinguishes siblings sharing one parent.
	sibling := root.Child()
	assert.NotEqual(t, child.ID(), sibling.ID())
	assert.Same(t, child.Parent(), sibling.Parent())

	// Attributes do not leak between levels.
	child.Put("k", 1)
	_, ok := root.Get("k")
	assert.False(t, ok)
}

func TestScope_GetOrPut_InstallsOnce(t *testing.T) {
	scope := domain.NewScope()

	first := scope.GetOrPut("slot", "a")
	second := scope.GetOrPut("slot", "b")
	assert.Equal(t, "a", first)
	assert.Equal(t, "a", second)
}

func TestScope_ConcurrentAccess(t *testing.T) {
	scope := domain.NewScope()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				scope.Put("k", j)
				scope.Get("k")
				scope.GetOrPut("shared", "winner")
			}
		}()
	}
	wg.Wait()

	v, ok := scope.Get("shared")
	require.True(t, ok)
	assert.Equal(t, "winner", v)
}
