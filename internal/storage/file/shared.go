package file

import (
	"github.com/bietkhonhungvandi212/frame-db/internal/storage/page"
	utils "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// Filer is the storage contract the buffer pool consumes. All calls are
// synchronous; errors are recoverable by the caller.
type Filer interface {
	// ReadPage fills p with the persisted bytes of the given page.
	ReadPage(pageId utils.PageID, p *page.Page) error
	// WritePage persists p's bytes at the offset of p.ID.
	WritePage(p *page.Page) error
	// AllocatePage returns a fresh or recycled page id.
	AllocatePage() (utils.PageID, error)
	// DeallocatePage marks an id free for reuse.
	DeallocatePage(pageId utils.PageID) error
}
