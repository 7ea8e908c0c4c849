package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClockReplacer(t *testing.T) {
	assert.Panics(t, func() { NewClockReplacer(0) })

	cr := NewClockReplacer(4)
	assert.Equal(t, 0, cr.Size())

	_, ok := cr.SelectVictim()
	assert.False(t, ok, "empty replacer has no victim")
}

func TestClockSecondChance(t *testing.T) {
	cr := NewClockReplacer(3)
	cr.MarkEvictable(0)
	cr.MarkEvictable(1)
	cr.MarkEvictable(2)
	require.Equal(t, 3, cr.Size())

	// First selection sweeps once clearing reference bits, then evicts
	// the first frame it revisits.
	v, ok := cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	// Remaining frames already lost their reference bit.
	v, ok = cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = cr.SelectVictim()
	assert.False(t, ok)
	assert.Equal(t, 0, cr.Size())
}

func TestClockSkipsNonEvictable(t *testing.T) {
	cr := NewClockReplacer(3)
	cr.MarkEvictable(0)
	cr.MarkEvictable(1)
	cr.MarkEvictable(2)
	cr.MarkNonEvictable(1)
	require.Equal(t, 2, cr.Size())

	v, ok := cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	v, ok = cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 2, v, "pinned frame 1 skipped")

	cr.MarkEvictable(1)
	v, ok = cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestClockProtectsRecentlyMarked(t *testing.T) {
	cr := NewClockReplacer(2)
	cr.MarkEvictable(0)
	cr.MarkEvictable(1)

	v, ok := cr.SelectVictim()
	require.True(t, ok)
	require.Equal(t, 0, v)

	// Frame 0 returns with a fresh reference bit; frame 1's bit was
	// cleared by the first sweep, so it goes first.
	cr.MarkEvictable(0)
	v, ok = cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 1, v, "second chance protects the recently re-marked frame")

	v, ok = cr.SelectVictim()
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestClockMarkEvictableIsIdempotent(t *testing.T) {
	cr := NewClockReplacer(2)
	cr.MarkEvictable(0)
	cr.MarkEvictable(0)
	assert.Equal(t, 1, cr.Size())

	cr.MarkNonEvictable(0)
	cr.MarkNonEvictable(0)
	assert.Equal(t, 0, cr.Size())
}
