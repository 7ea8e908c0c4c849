package buffer

import (
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// ClockReplacer is a second-chance circular sweep over the frame arena.
// Each evictable frame carries a reference bit, set when the frame
// becomes evictable; the hand clears a set bit and skips the frame
// once, evicting the first evictable frame found with a clear bit.
type ClockReplacer struct {
	inClock []bool // frame is an eviction candidate
	refBit  []bool // second-chance bit
	hand    int    // next frame the sweep examines
	size    int
}

func NewClockReplacer(poolSize int) *ClockReplacer {
	if poolSize <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	return &ClockReplacer{
		inClock: make([]bool, poolSize),
		refBit:  make([]bool, poolSize),
	}
}

func (cr *ClockReplacer) MarkEvictable(frameIdx int) {
	if !cr.inClock[frameIdx] {
		cr.inClock[frameIdx] = true
		cr.size++
	}
	cr.refBit[frameIdx] = true
}

func (cr *ClockReplacer) MarkNonEvictable(frameIdx int) {
	if cr.inClock[frameIdx] {
		cr.inClock[frameIdx] = false
		cr.refBit[frameIdx] = false
		cr.size--
	}
}

func (cr *ClockReplacer) SelectVictim() (int, bool) {
	if cr.size == 0 {
		return -1, false
	}

	// At most two sweeps: one clearing reference bits, one finding a
	// clear bit. size > 0 guarantees termination.
	for {
		idx := cr.hand
		cr.hand = (cr.hand + 1) % len(cr.inClock)

		if !cr.inClock[idx] {
			continue
		}
		if cr.refBit[idx] {
			cr.refBit[idx] = false
			continue
		}

		cr.inClock[idx] = false
		cr.size--
		return idx, true
	}
}

func (cr *ClockReplacer) Size() int {
	return cr.size
}
