package buffer

import (
	"container/list"
)

// LRUReplacer evicts the frame that became evictable least recently.
// Strict LRU alternative to ClockReplacer; same contract.
type LRUReplacer struct {
	order    *list.List // front = most recent, back = victim
	frameMap map[int]*list.Element
}

func NewLRUReplacer() *LRUReplacer {
	return &LRUReplacer{
		order:    list.New(),
		frameMap: make(map[int]*list.Element),
	}
}

func (lr *LRUReplacer) MarkEvictable(frameIdx int) {
	if elem, ok := lr.frameMap[frameIdx]; ok {
		lr.order.MoveToFront(elem)
		return
	}
	lr.frameMap[frameIdx] = lr.order.PushFront(frameIdx)
}

func (lr *LRUReplacer) MarkNonEvictable(frameIdx int) {
	elem, ok := lr.frameMap[frameIdx]
	if !ok {
		return
	}
	lr.order.Remove(elem)
	delete(lr.frameMap, frameIdx)
}

func (lr *LRUReplacer) SelectVictim() (int, bool) {
	elem := lr.order.Back()
	if elem == nil {
		return -1, false
	}
	frameIdx := lr.order.Remove(elem).(int)
	delete(lr.frameMap, frameIdx)
	return frameIdx, true
}

func (lr *LRUReplacer) Size() int {
	return len(lr.frameMap)
}
