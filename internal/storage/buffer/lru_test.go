package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUVictimOrder(t *testing.T) {
	lr := NewLRUReplacer()
	lr.MarkEvictable(1)
	lr.MarkEvictable(2)
	lr.MarkEvictable(3)
	require.Equal(t, 3, lr.Size())

	v, ok := lr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 1, v, "least recently marked goes first")

	v, ok = lr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = lr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = lr.SelectVictim()
	assert.False(t, ok, "empty replacer has no victim")
}

func TestLRURemarkRefreshesRecency(t *testing.T) {
	lr := NewLRUReplacer()
	lr.MarkEvictable(1)
	lr.MarkEvictable(2)
	lr.MarkEvictable(3)

	lr.MarkEvictable(1)
	require.Equal(t, 3, lr.Size(), "re-mark does not duplicate")

	v, ok := lr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 2, v, "refreshed frame 1 moved behind 2 and 3")
}

func TestLRUMarkNonEvictable(t *testing.T) {
	lr := NewLRUReplacer()
	lr.MarkEvictable(1)
	lr.MarkEvictable(2)

	lr.MarkNonEvictable(1)
	assert.Equal(t, 1, lr.Size())

	v, ok := lr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	lr.MarkNonEvictable(99) // unknown frame is a no-op
	assert.Equal(t, 0, lr.Size())
}
