package buffer

// Replacer defines the contract for page replacement policies. The pool
// calls MarkEvictable/MarkNonEvictable exactly when a frame's pin count
// transitions to/from zero, and SelectVictim when it needs a frame and
// the free list is empty.
//
// Implementations are not safe for concurrent use on their own; the
// pool invokes them under its own lock.
type Replacer interface {
	// MarkEvictable adds a frame to the set of eviction candidates.
	MarkEvictable(frameIdx int)
	// MarkNonEvictable removes a frame from the set of eviction candidates.
	MarkNonEvictable(frameIdx int)
	// SelectVictim picks an evictable frame and removes it from the
	// candidate set. ok is false when no frame is evictable.
	SelectVictim() (frameIdx int, ok bool)
	// Size returns the number of currently evictable frames.
	Size() int
}
