package buffer

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/frame-db/internal/storage/file"
	"github.com/bietkhonhungvandi212/frame-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// BufferPool is a fixed-capacity cache of disk pages. It owns an arena
// of frames, maps resident page ids to frame indices, and recycles
// unpinned frames through a pluggable replacement policy, writing dirty
// pages back to disk before their frame is reused.
//
// One mutex serializes every operation end to end, disk I/O included.
// Coarse by intent: correctness over parallelism.
type BufferPool struct {
	mu         sync.Mutex
	frames     []page.Page         // fixed arena, 4KB each
	pinCounts  []int32             // callers holding each frame
	dirtyFlags []bool              // frame bytes ahead of disk
	pageToIdx  map[util.PageID]int // Map the pageId to index
	nextFree   []int               // Free list for allocation
	freeHead   int                 // Head of free list
	poolSize   int                 // Total frames
	replacer   Replacer
	fm         file.Filer
	walSync    func() error // durability barrier before page write-back
	log        *zap.Logger
	metrics    *Metrics
}

type Option func(*BufferPool)

// WithReplacer selects the replacement policy. Default is clock.
func WithReplacer(r Replacer) Option {
	return func(bp *BufferPool) { bp.replacer = r }
}

func WithLogger(log *zap.Logger) Option {
	return func(bp *BufferPool) { bp.log = log }
}

func WithMetrics(m *Metrics) Option {
	return func(bp *BufferPool) { bp.metrics = m }
}

// WithWALSync installs a log-manager barrier invoked before any dirty
// page is written back, so the write-ahead log reaches disk first. The
// pool never calls it for any other reason.
func WithWALSync(fn func() error) Option {
	return func(bp *BufferPool) { bp.walSync = fn }
}

func NewBufferPool(size int, filer file.Filer, opts ...Option) *BufferPool {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	bp := &BufferPool{
		frames:     make([]page.Page, size),
		pinCounts:  make([]int32, size),
		dirtyFlags: make([]bool, size),
		pageToIdx:  make(map[util.PageID]int, size),
		nextFree:   make([]int, size),
		freeHead:   0,
		poolSize:   size,
		fm:         filer,
		log:        zap.NewNop(),
	}

	for i := 0; i < size; i++ {
		bp.frames[i].ID = util.InvalidPageID
		bp.nextFree[i] = i + 1
	}
	bp.nextFree[size-1] = -1

	for _, opt := range opts {
		opt(bp)
	}
	if bp.replacer == nil {
		bp.replacer = NewClockReplacer(size)
	}

	return bp
}

// FetchPage returns a pinned handle on the given page, reading it from
// disk if it is not resident. Fails with ErrNoFreeFrame when every
// frame is pinned; callers decide whether to retry.
func (bp *BufferPool) FetchPage(pageID util.PageID) (*FrameHandle, error) {
	if pageID == util.InvalidPageID {
		return nil, util.ErrInvalidPageId
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	if frameIdx, exists := bp.pageToIdx[pageID]; exists {
		bp.pinLocked(frameIdx)
		if bp.metrics != nil {
			bp.metrics.Hits.Inc()
		}
		return bp.newHandleLocked(frameIdx), nil
	}

	frameIdx, err := bp.acquireFrameLocked()
	if err != nil {
		return nil, err
	}

	if err := bp.fm.ReadPage(pageID, &bp.frames[frameIdx]); err != nil {
		// The frame holds no page; put it back on the free list.
		bp.frames[frameIdx].Reset()
		bp.returnFrameToFreeLocked(frameIdx)
		return nil, fmt.Errorf("[pool] [FetchPage] read page %d: %w", pageID, err)
	}

	bp.pinCounts[frameIdx] = 1
	bp.dirtyFlags[frameIdx] = false
	bp.pageToIdx[pageID] = frameIdx

	if bp.metrics != nil {
		bp.metrics.Misses.Inc()
		bp.metrics.PinnedFrames.Inc()
	}
	bp.log.Debug("page read into frame",
		zap.Uint64("page_id", uint64(pageID)),
		zap.Int("frame", frameIdx))

	return bp.newHandleLocked(frameIdx), nil
}

// UnpinPage decrements the pin count and ORs in the dirty flag. A pin
// count reaching zero makes the frame eviction-eligible. Unpinning an
// already-unpinned page is rejected, not clamped.
func (bp *BufferPool) UnpinPage(pageID util.PageID, isDirty bool) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frameIdx, exists := bp.pageToIdx[pageID]
	if !exists {
		return util.ErrPageNotResident
	}
	if bp.pinCounts[frameIdx] == 0 {
		return util.ErrPageNotPinned
	}

	bp.pinCounts[frameIdx]--
	if isDirty {
		bp.dirtyFlags[frameIdx] = true
	}
	if bp.pinCounts[frameIdx] == 0 {
		bp.replacer.MarkEvictable(frameIdx)
		if bp.metrics != nil {
			bp.metrics.PinnedFrames.Dec()
		}
	}

	return nil
}

// FlushPage writes the page's bytes to disk and clears the dirty flag.
// A clean resident page is a no-op.
func (bp *BufferPool) FlushPage(pageID util.PageID) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frameIdx, exists := bp.pageToIdx[pageID]
	if !exists {
		return util.ErrPageNotResident
	}

	return bp.flushFrameLocked(frameIdx)
}

// FlushAllPages flushes every resident page. Best effort: one page's
// failure does not abort the sweep; all failures are joined.
func (bp *BufferPool) FlushAllPages() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	var errs error
	for i := 0; i < bp.poolSize; i++ {
		if bp.frames[i].ID == util.InvalidPageID {
			continue
		}
		if err := bp.flushFrameLocked(i); err != nil {
			bp.log.Error("flush failed during sweep",
				zap.Uint64("page_id", uint64(bp.frames[i].ID)),
				zap.Error(err))
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// NewPage allocates a fresh on-disk page and returns a pinned handle on
// its zeroed frame. The frame is obtained before the id is allocated,
// so a fully pinned pool fails without leaking an id. The fresh frame
// starts dirty: its zeroed image has never been persisted.
func (bp *BufferPool) NewPage() (*FrameHandle, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frameIdx, err := bp.acquireFrameLocked()
	if err != nil {
		return nil, err
	}

	pageID, err := bp.fm.AllocatePage()
	if err != nil {
		bp.returnFrameToFreeLocked(frameIdx)
		return nil, fmt.Errorf("[pool] [NewPage] allocate page: %w", err)
	}

	bp.frames[frameIdx].ID = pageID
	bp.pinCounts[frameIdx] = 1
	bp.dirtyFlags[frameIdx] = true
	bp.pageToIdx[pageID] = frameIdx

	if bp.metrics != nil {
		bp.metrics.PinnedFrames.Inc()
	}
	bp.log.Debug("new page allocated",
		zap.Uint64("page_id", uint64(pageID)),
		zap.Int("frame", frameIdx))

	return bp.newHandleLocked(frameIdx), nil
}

// DeletePage drops a page from the pool and deallocates its id on
// disk. Deleting a non-resident page succeeds trivially; deleting a
// pinned page fails with ErrPagePinned and leaves it resident.
func (bp *BufferPool) DeletePage(pageID util.PageID) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frameIdx, exists := bp.pageToIdx[pageID]
	if !exists {
		return nil
	}
	if bp.pinCounts[frameIdx] > 0 {
		return util.ErrPagePinned
	}

	// The frame sits in the replacer (pin count zero); pull it out
	// before recycling so it cannot be victimized as well.
	bp.replacer.MarkNonEvictable(frameIdx)
	delete(bp.pageToIdx, pageID)
	bp.frames[frameIdx].Reset()
	bp.dirtyFlags[frameIdx] = false
	bp.returnFrameToFreeLocked(frameIdx)

	if err := bp.fm.DeallocatePage(pageID); err != nil {
		return fmt.Errorf("[pool] [DeletePage] deallocate page %d: %w", pageID, err)
	}

	return nil
}

// Close flushes all resident pages. The pool is not usable afterwards
// by convention; it holds no resources beyond the arena.
func (bp *BufferPool) Close() error {
	return bp.FlushAllPages()
}

// Size returns the pool capacity in frames.
func (bp *BufferPool) Size() int {
	return bp.poolSize
}

// ===================== HELPER FUNCTION =====================

// acquireFrameLocked obtains a recyclable frame: free list first, then
// victim selection, writing a dirty victim back before reuse. The
// returned frame holds no page and has no page-table entry.
func (bp *BufferPool) acquireFrameLocked() (int, error) {
	if frameIdx := bp.allocFromFreeLocked(); frameIdx != -1 {
		return frameIdx, nil
	}

	frameIdx, ok := bp.replacer.SelectVictim()
	if !ok {
		return -1, util.ErrNoFreeFrame
	}

	victimID := bp.frames[frameIdx].ID
	if err := bp.flushFrameLocked(frameIdx); err != nil {
		// Keep the victim resident and evictable; the caller sees the
		// write failure, not a lost page.
		bp.replacer.MarkEvictable(frameIdx)
		return -1, fmt.Errorf("[pool] [acquireFrame] flush victim %d: %w", victimID, err)
	}

	delete(bp.pageToIdx, victimID)
	bp.frames[frameIdx].Reset()
	if bp.metrics != nil {
		bp.metrics.Evictions.Inc()
	}
	bp.log.Debug("frame evicted",
		zap.Uint64("victim_page_id", uint64(victimID)),
		zap.Int("frame", frameIdx))

	return frameIdx, nil
}

// flushFrameLocked writes one frame back if dirty. Callers hold bp.mu.
func (bp *BufferPool) flushFrameLocked(frameIdx int) error {
	if !bp.dirtyFlags[frameIdx] {
		return nil
	}
	if bp.walSync != nil {
		if err := bp.walSync(); err != nil {
			return fmt.Errorf("[pool] [FlushPage] sync log before page %d: %w", bp.frames[frameIdx].ID, err)
		}
	}
	if err := bp.fm.WritePage(&bp.frames[frameIdx]); err != nil {
		return fmt.Errorf("[pool] [FlushPage] write page %d: %w", bp.frames[frameIdx].ID, err)
	}
	bp.dirtyFlags[frameIdx] = false
	if bp.metrics != nil {
		bp.metrics.Flushes.Inc()
	}
	return nil
}

// pinLocked increments a resident frame's pin count, pulling it out of
// the replacer on the zero-to-one transition.
func (bp *BufferPool) pinLocked(frameIdx int) {
	bp.pinCounts[frameIdx]++
	if bp.pinCounts[frameIdx] == 1 {
		bp.replacer.MarkNonEvictable(frameIdx)
		if bp.metrics != nil {
			bp.metrics.PinnedFrames.Inc()
		}
	}
}

func (bp *BufferPool) newHandleLocked(frameIdx int) *FrameHandle {
	return &FrameHandle{
		pool:     bp,
		frameIdx: frameIdx,
		pageID:   bp.frames[frameIdx].ID,
	}
}

func (bp *BufferPool) allocFromFreeLocked() int {
	if bp.freeHead == -1 {
		return -1
	}

	freeIdx := bp.freeHead
	bp.freeHead = bp.nextFree[freeIdx]
	bp.nextFree[freeIdx] = -1

	return freeIdx
}

func (bp *BufferPool) returnFrameToFreeLocked(frameIdx int) {
	bp.nextFree[frameIdx] = bp.freeHead
	bp.freeHead = frameIdx
}
