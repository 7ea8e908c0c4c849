package buffer

import (
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// FrameHandle is a scoped pin on one resident page. FetchPage and
// NewPage return the page already pinned; Release performs the unpin
// exactly once, so deferring it covers every exit path.
//
// A handle belongs to a single caller; the pin count is the caller's
// contract that the pool will not recycle the frame, but the page bytes
// themselves are not locked — concurrent readers/writers of the same
// page must coordinate above this layer.
type FrameHandle struct {
	pool     *BufferPool
	frameIdx int
	pageID   util.PageID
	dirty    bool
	released bool
}

// PageID returns the id of the pinned page.
func (h *FrameHandle) PageID() util.PageID {
	return h.pageID
}

// Data returns the frame's page bytes, or nil after Release.
func (h *FrameHandle) Data() []byte {
	if h.released {
		return nil
	}
	return h.pool.frames[h.frameIdx].Data[:]
}

// MarkDirty records that the caller modified the page bytes; the unpin
// performed by Release will carry the dirty flag.
func (h *FrameHandle) MarkDirty() {
	h.dirty = true
}

// Release unpins the page. The first call performs the unpin; later
// calls are no-ops returning nil.
func (h *FrameHandle) Release() error {
	if h.released {
		return nil
	}
	h.released = true
	return h.pool.UnpinPage(h.pageID, h.dirty)
}
