package gesture

import (
	"math"
	"time"
)

// Vec2 is a 2D vector used for positions, pivots and offsets throughout the
// API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// boundsOf returns the axis-aligned bounds of a set of points.
func boundsOf(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Action identifies the phase of a pointer event.
type Action uint8

const (
	ActionDown        Action = iota // first pointer touched down
	ActionPointerDown               // an additional pointer touched down
	ActionMove                      // one or more pointers moved
	ActionPointerUp                 // a non-final pointer lifted
	ActionUp                        // the final pointer lifted
	ActionCancel                    // the host aborted the stream
)

var actionNames = [...]string{"down", "pointer-down", "move", "pointer-up", "up", "cancel"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Pointer is the position of a single pointer within an event. X and Y are
// relative to the receiving object; AbsX and AbsY are screen-absolute and are
// the coordinates used for all gesture math.
type Pointer struct {
	ID         int
	X, Y       float64
	AbsX, AbsY float64
}

// PointerEvent is one entry of the raw input stream. Pointers lists every
// pointer that is down, including the one that triggered a PointerDown or
// PointerUp; ActionIndex is the index of that pointer within Pointers.
type PointerEvent struct {
	Action      Action
	ActionIndex int
	Pointers    []Pointer
	Time        time.Time
}

// ActionPointer returns the pointer that caused the event.
func (e PointerEvent) ActionPointer() (Pointer, bool) {
	if e.ActionIndex < 0 || e.ActionIndex >= len(e.Pointers) {
		return Pointer{}, false
	}
	return e.Pointers[e.ActionIndex], true
}

// EventType identifies a kind of gesture event delivered to an EventSink.
type EventType uint8

const (
	EventTouchBegin        EventType = iota // a gesture was accepted
	EventTouchEnd                           // a gesture ended without a click
	EventTouchCancel                        // the host cancelled the stream
	EventPress                              // a pointer has rested long enough to show a press
	EventClick                              // a single tap resolved
	EventDoubleClick                        // a double tap resolved
	EventLongClick                          // a long press was accepted as a click
	EventMoveBegin                          // multi-finger move started
	EventMoveEnd                            // multi-finger move ended
	EventRotateBegin                        // multi-finger rotate started
	EventRotateEnd                          // multi-finger rotate ended
	EventScaleBegin                         // multi-finger scale started
	EventScaleEnd                           // multi-finger scale ended
	EventAdsorptionBegin                    // a snap animation started
	EventAdsorptionEnd                      // a snap animation finished and the object is held
	EventAdsorptionRelease                  // a held object broke free
)
