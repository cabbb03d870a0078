package gesture

import (
	"fmt"
	"slices"
)

// DefaultTrackedPointers is the number of pointers used for multi-finger math
// unless configured otherwise.
const DefaultTrackedPointers = 2

// PointerTrack keeps the ids of all pointers that are down, in touch-down
// order, and the tracked subset: the most recent N of them.
type PointerTrack struct {
	ids      []int
	tracked  []int
	previous []int
	limit    int
}

// SetLimit sets how many of the most recent pointers are tracked.
func (t *PointerTrack) SetLimit(n int) error {
	if n < 2 {
		return fmt.Errorf("track %d pointers: %w", n, ErrInvalidTrackCount)
	}
	t.limit = n
	t.retrack()
	return nil
}

// Limit returns the tracked pointer count.
func (t *PointerTrack) Limit() int {
	if t.limit < 2 {
		return DefaultTrackedPointers
	}
	return t.limit
}

// add appends id if it is not already down.
func (t *PointerTrack) add(id int) {
	if slices.Contains(t.ids, id) {
		return
	}
	t.ids = append(t.ids, id)
	t.retrack()
}

// remove drops id from the down set.
func (t *PointerTrack) remove(id int) {
	i := slices.Index(t.ids, id)
	if i < 0 {
		return
	}
	t.ids = slices.Delete(t.ids, i, i+1)
	t.retrack()
}

func (t *PointerTrack) retrack() {
	n := t.Limit()
	start := max(len(t.ids)-n, 0)
	t.tracked = append(t.tracked[:0], t.ids[start:]...)
}

// remember copies the tracked subset so the next frame can compare against
// the same pointers.
func (t *PointerTrack) remember() {
	t.previous = append(t.previous[:0], t.tracked...)
}

// IDs returns the ids of all pointers that are down, oldest first. The slice
// is owned by the track.
func (t *PointerTrack) IDs() []int { return t.ids }

// Tracked returns the tracked subset of the current frame.
func (t *PointerTrack) Tracked() []int { return t.tracked }

// Previous returns the tracked subset as it was at the previous frame.
func (t *PointerTrack) Previous() []int { return t.previous }

// Len returns the number of pointers that are down.
func (t *PointerTrack) Len() int { return len(t.ids) }

func (t *PointerTrack) reset() {
	t.ids = t.ids[:0]
	t.tracked = t.tracked[:0]
	t.previous = t.previous[:0]
}
