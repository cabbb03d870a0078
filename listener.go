package gesture

// TouchListener receives the single-finger part of a gesture and its
// terminal callbacks. A nil field takes its default: OnBeginTouch and
// OnTouchMove accept, OnLongPress declines, the rest do nothing.
//
// Exactly one of OnClick, OnDoubleClick, OnLongClick, OnTouchEnd and
// OnTouchCancel ends every accepted gesture.
type TouchListener struct {
	// OnBeginTouch is asked when the first pointer goes down. Returning
	// false discards the gesture.
	OnBeginTouch func(d *Detector, x, y float64) bool
	// OnTouchMove receives single-finger deltas. All four channels are
	// available through the Detector.
	OnTouchMove func(d *Detector) bool
	OnTouchEnd  func(d *Detector)
	// OnTouchCancel fires when the host cancels the pointer stream.
	OnTouchCancel func(d *Detector)
	// OnPress fires when a pointer has rested without moving for the tap
	// timeout.
	OnPress func(d *Detector)
	// OnLongPress decides whether a long press becomes a long click.
	// Returning false keeps the gesture open; it then ends with OnTouchEnd.
	OnLongPress   func(d *Detector) bool
	OnClick       func(d *Detector)
	OnDoubleClick func(d *Detector)
	OnLongClick   func(d *Detector)
	// ProvidePivot overrides the pivot single-finger rotate and scale turn
	// around. It is asked once per gesture, at touch-down.
	ProvidePivot func(d *Detector) Vec2
}

// MoveListener receives multi-finger translation.
type MoveListener struct {
	OnBeginMove func(d *Detector) bool
	// OnMove returning false ends the move.
	OnMove    func(d *Detector) bool
	OnMoveEnd func(d *Detector)
}

// MoveInterceptor claims move frames ahead of the listener that applies
// them, usually by consuming part of the delta. It reports whether it took
// over the frame. At most one interceptor should act on a gesture.
type MoveInterceptor interface {
	OnMove(d *Detector) bool
}

// RotateListener receives multi-finger rotation.
type RotateListener struct {
	OnBeginRotate func(d *Detector) bool
	OnRotate      func(d *Detector) bool
	OnRotateEnd   func(d *Detector)
}

// ScaleListener receives multi-finger scaling.
type ScaleListener struct {
	OnBeginScale func(d *Detector) bool
	OnScale      func(d *Detector) bool
	OnScaleEnd   func(d *Detector)
}

func callBool(fn func(*Detector) bool, d *Detector, def bool) bool {
	if fn == nil {
		return def
	}
	return fn(d)
}

func call(fn func(*Detector), d *Detector) {
	if fn != nil {
		fn(d)
	}
}
