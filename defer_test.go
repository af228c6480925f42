package fineclock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeferStorePrepareNoReallocWithinCapacity(t *testing.T) {
	store := newDeferStore[int, int](false)
	store.prepare(4)
	require.Len(t, store.slots, 4)

	backing := &store.slots[0]
	store.prepare(2)
	require.Len(t, store.slots, 2)
	require.Same(t, backing, &store.slots[0], "shrinking within capacity must not reallocate")

	store.prepare(4)
	require.Len(t, store.slots, 4)
	require.Same(t, backing, &store.slots[0], "growing back within capacity must not reallocate")
}

func TestDeferStorePrepareGrows(t *testing.T) {
	store := newDeferStore[string, string](true)
	store.prepare(2)
	require.Len(t, store.slots, 2)

	store.prepare(10)
	require.Len(t, store.slots, 10)
}

func TestHasStorage(t *testing.T) {
	require.False(t, hasStorage[struct{}]())
	require.True(t, hasStorage[int]())
	require.True(t, hasStorage[string]())

	type empty struct{}
	require.False(t, hasStorage[empty]())
}
