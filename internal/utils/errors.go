package util

import "errors"

var (
	ErrInvalidPageId       = errors.New("invalid page id")
	ErrInvalidInitialPages = errors.New("initial pages must be positive")
	ErrInvalidPoolSize     = errors.New("invalid pool size")
	ErrPageOutOfBounds     = errors.New("page out of bounds")
	ErrPageDeallocated     = errors.New("page is deallocated")
	ErrPageNotResident     = errors.New("page not resident in buffer pool")
	ErrPageNotPinned       = errors.New("page is not pinned")
	ErrPagePinned          = errors.New("page is pinned")
	ErrNoFreeFrame         = errors.New("no free frames")
	ErrFileClosed          = errors.New("file manager is closed")
)
