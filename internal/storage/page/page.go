package page

import (
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// Page is the in-memory image of one disk page: the raw bytes plus the
// id of the on-disk page they belong to. The buffer pool owns a fixed
// arena of these; the file manager moves them to and from disk whole.
type Page struct {
	ID   util.PageID
	Data [util.PageSize]byte
}

// Reset zeroes the page bytes and invalidates the id, returning the
// frame to the "holds no page" state.
func (p *Page) Reset() {
	p.ID = util.InvalidPageID
	clear(p.Data[:])
}

// CopyFrom overwrites the page bytes with src, truncating src to the
// page size if needed.
func (p *Page) CopyFrom(src []byte) {
	if len(src) > len(p.Data) {
		src = src[:len(p.Data)]
	}
	copy(p.Data[:], src)
}
