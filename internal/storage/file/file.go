package file

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/frame-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

/**
* This module is used to read and write pages from / to disk.
* Pages live at offset pageId * PageSize; the file grows on allocation.
**/
type FileManager struct {
	mu         sync.Mutex
	file       *os.File
	nextPageID util.PageID
	freeIDs    map[util.PageID]struct{} // deallocated ids, reused before growing the file
	syncWrites bool
	log        *zap.Logger
}

type FileOption func(*FileManager)

// WithSyncWrites makes WritePage fsync after every write.
func WithSyncWrites() FileOption {
	return func(fm *FileManager) { fm.syncWrites = true }
}

func WithFileLogger(log *zap.Logger) FileOption {
	return func(fm *FileManager) { fm.log = log }
}

func NewFileManager(path string, initialPages int, opts ...FileOption) (*FileManager, error) {
	if initialPages <= 0 {
		return nil, util.ErrInvalidInitialPages
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	fm := &FileManager{
		file:    f,
		freeIDs: make(map[util.PageID]struct{}),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(fm)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	initialSize := int64(initialPages) * int64(util.PageSize)
	if info.Size() < initialSize {
		if err := f.Truncate(initialSize); err != nil {
			f.Close()
			return nil, fmt.Errorf("grow file to %d pages: %w", initialPages, err)
		}
		fm.nextPageID = util.PageID(initialPages)
	} else {
		// Round partial trailing pages up: they were allocated.
		fm.nextPageID = util.PageID((info.Size() + util.PageSize - 1) / util.PageSize)
	}

	fm.log.Debug("file manager opened",
		zap.String("path", path),
		zap.Uint64("pages", uint64(fm.nextPageID)))

	return fm, nil
}

/* READ FILE */
func (fm *FileManager) ReadPage(pageId util.PageID, p *page.Page) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if err := fm.checkPageId(pageId); err != nil {
		return err
	}

	offset := int64(pageId) * int64(util.PageSize)
	if _, err := fm.file.ReadAt(p.Data[:], offset); err != nil {
		return fmt.Errorf("[file] [ReadPage] read page %d: %w", pageId, err)
	}
	p.ID = pageId

	return nil
}

/* WRITE FILE */
func (fm *FileManager) WritePage(p *page.Page) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if err := fm.checkPageId(p.ID); err != nil {
		return err
	}

	offset := int64(p.ID) * int64(util.PageSize)
	if _, err := fm.file.WriteAt(p.Data[:], offset); err != nil {
		return fmt.Errorf("[file] [WritePage] write page %d: %w", p.ID, err)
	}

	if fm.syncWrites {
		if err := fm.file.Sync(); err != nil {
			return fmt.Errorf("[file] [WritePage] sync: %w", err)
		}
	}

	return nil
}

// AllocatePage hands out a page id, preferring previously deallocated
// ids over extending the file.
func (fm *FileManager) AllocatePage() (util.PageID, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.file == nil {
		return util.InvalidPageID, util.ErrFileClosed
	}

	for id := range fm.freeIDs {
		delete(fm.freeIDs, id)
		return id, nil
	}

	id := fm.nextPageID
	if err := fm.file.Truncate(int64(id+1) * int64(util.PageSize)); err != nil {
		return util.InvalidPageID, fmt.Errorf("[file] [AllocatePage] grow file: %w", err)
	}
	fm.nextPageID++

	return id, nil
}

// DeallocatePage marks an id free for reuse. On-disk space is not
// reclaimed; the id is simply handed out again by AllocatePage.
// Deallocating an id twice is rejected.
func (fm *FileManager) DeallocatePage(pageId util.PageID) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if err := fm.checkPageId(pageId); err != nil {
		return err
	}

	fm.freeIDs[pageId] = struct{}{}
	return nil
}

// checkPageId validates that an id is currently allocated: inside the
// file's range and not sitting on the free list. Callers must hold
// fm.mu.
func (fm *FileManager) checkPageId(pageId util.PageID) error {
	if fm.file == nil {
		return util.ErrFileClosed
	}
	if pageId == util.InvalidPageID {
		return util.ErrInvalidPageId
	}
	if pageId >= fm.nextPageID {
		return util.ErrPageOutOfBounds
	}
	if _, freed := fm.freeIDs[pageId]; freed {
		return util.ErrPageDeallocated
	}
	return nil
}

/**
* CLOSE FUNCTION
**/
func (fm *FileManager) Close() error {
	if fm == nil {
		return nil // Idempotent
	}
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.file == nil {
		return nil
	}

	var err error
	if e := fm.file.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync file: %w", e))
	}
	if e := fm.file.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close file: %w", e))
	}
	fm.file = nil
	return err
}
