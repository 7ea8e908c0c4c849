package page

import (
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

func CreateTestPage(pageID util.PageID, data []byte) *Page {
	p := &Page{ID: pageID}
	p.CopyFrom(data)
	return p
}
