package gesture

import (
	"sync"
	"time"
)

// snapshot is a frozen copy of one PointerEvent. The detector retains three
// of them (start, previous, current) and returns each to the pool as soon as
// it is superseded.
type snapshot struct {
	action      Action
	actionIndex int
	pointers    []Pointer
	time        time.Time
	refs        int
}

var snapshotPool = sync.Pool{
	New: func() any { return &snapshot{pointers: make([]Pointer, 0, 4)} },
}

func newSnapshot(ev PointerEvent) *snapshot {
	s := snapshotPool.Get().(*snapshot)
	s.action = ev.Action
	s.actionIndex = ev.ActionIndex
	s.pointers = append(s.pointers[:0], ev.Pointers...)
	s.time = ev.Time
	s.refs = 1
	return s
}

// retain adds a reference so the same snapshot can fill several slots.
func (s *snapshot) retain() *snapshot {
	if s != nil {
		s.refs++
	}
	return s
}

// release drops a reference and returns the snapshot to the pool when none
// are left.
func (s *snapshot) release() {
	if s == nil {
		return
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	s.pointers = s.pointers[:0]
	snapshotPool.Put(s)
}

// find returns the pointer with the given id.
func (s *snapshot) find(id int) (Pointer, bool) {
	if s == nil {
		return Pointer{}, false
	}
	for _, p := range s.pointers {
		if p.ID == id {
			return p, true
		}
	}
	return Pointer{}, false
}

func (s *snapshot) actionPointer() (Pointer, bool) {
	if s == nil || s.actionIndex < 0 || s.actionIndex >= len(s.pointers) {
		return Pointer{}, false
	}
	return s.pointers[s.actionIndex], true
}

// event rebuilds a PointerEvent from the snapshot. The pointer slice is a
// copy.
func (s *snapshot) event() PointerEvent {
	return PointerEvent{
		Action:      s.action,
		ActionIndex: s.actionIndex,
		Pointers:    append([]Pointer(nil), s.pointers...),
		Time:        s.time,
	}
}

// swap releases *slot and stores next in it.
func swap(slot **snapshot, next *snapshot) {
	(*slot).release()
	*slot = next
}
