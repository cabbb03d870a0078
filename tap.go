package gesture

import (
	"math"
	"time"
)

// TapListener receives the classifications of a TapDisambiguator.
type TapListener interface {
	// OnShowPress fires when a pointer rested for the tap timeout.
	OnShowPress()
	// OnSingleTapUp fires on the release of a tap, before any double tap
	// is ruled out.
	OnSingleTapUp()
	// OnLongPress fires when a pointer rested for the long-press timeout.
	OnLongPress()
	// OnSingleTapConfirmed fires once a tap can no longer become a double
	// tap.
	OnSingleTapConfirmed()
	// OnDoubleTap fires on the down of the second tap.
	OnDoubleTap()
	// OnDoubleTapEvent receives every event of the second tap.
	OnDoubleTapEvent(a Action)
}

// TapDisambiguator classifies plain taps into click, double click and long
// press. The Detector feeds it the events of tap candidates and drives its
// timers with Advance; a nil disambiguator resolves every tap as a click.
type TapDisambiguator interface {
	Feed(ev PointerEvent)
	Advance(now time.Time)
	Reset()
}

// TapTiming holds the timeouts and distances of a TapClassifier. Zero fields
// take the defaults.
type TapTiming struct {
	TapTimeout         time.Duration // default 100ms
	LongPressTimeout   time.Duration // default 500ms
	DoubleTapTimeout   time.Duration // default 300ms
	DoubleTapMinTime   time.Duration // default 40ms
	TouchSlop          float64       // default 8
	DoubleTapTouchSlop float64       // default TouchSlop
	DoubleTapSlop      float64       // default 100
	DisableLongPress   bool
	DisableDoubleTap   bool
}

const (
	defaultTapTimeout       = 100 * time.Millisecond
	defaultLongPressTimeout = 500 * time.Millisecond
	defaultDoubleTapTimeout = 300 * time.Millisecond
	defaultDoubleTapMinTime = 40 * time.Millisecond
	defaultTouchSlop        = 8
	defaultDoubleTapSlop    = 100
)

func (t TapTiming) withDefaults() TapTiming {
	if t.TapTimeout <= 0 {
		t.TapTimeout = defaultTapTimeout
	}
	if t.LongPressTimeout <= 0 {
		t.LongPressTimeout = defaultLongPressTimeout
	}
	if t.DoubleTapTimeout <= 0 {
		t.DoubleTapTimeout = defaultDoubleTapTimeout
	}
	if t.DoubleTapMinTime <= 0 {
		t.DoubleTapMinTime = defaultDoubleTapMinTime
	}
	if t.TouchSlop <= 0 {
		t.TouchSlop = defaultTouchSlop
	}
	if t.DoubleTapTouchSlop <= 0 {
		t.DoubleTapTouchSlop = t.TouchSlop
	}
	if t.DoubleTapSlop <= 0 {
		t.DoubleTapSlop = defaultDoubleTapSlop
	}
	return t
}

// TapClassifier is a timer-driven tap, long-press and double-tap classifier.
// It owns no clock: deadlines are compared against event timestamps and the
// times passed to Advance.
type TapClassifier struct {
	timing   TapTiming
	listener TapListener

	down      Pointer
	prevDown  Pointer
	prevUp    time.Time
	hasPrevUp bool

	showPressAt  time.Time
	longPressAt  time.Time
	tapConfirmAt time.Time

	stillDown               bool
	inLongPress             bool
	deferConfirm            bool
	doubleTapping           bool
	alwaysInTapRegion       bool
	alwaysInBiggerTapRegion bool
}

// NewTapClassifier returns a classifier reporting to l.
func NewTapClassifier(timing TapTiming, l TapListener) *TapClassifier {
	return &TapClassifier{timing: timing.withDefaults(), listener: l}
}

// Timing returns the effective timing.
func (c *TapClassifier) Timing() TapTiming { return c.timing }

// Feed classifies one event. Deadlines that passed before the event's
// timestamp fire first.
func (c *TapClassifier) Feed(ev PointerEvent) {
	if !ev.Time.IsZero() {
		c.Advance(ev.Time)
	}
	p, ok := ev.ActionPointer()
	if !ok && len(ev.Pointers) > 0 {
		p = ev.Pointers[0]
	}
	switch ev.Action {
	case ActionDown:
		c.onDown(p, ev.Time)
	case ActionPointerDown:
		c.cancelTaps()
	case ActionMove:
		c.onMove(p)
	case ActionUp:
		c.onUp(ev.Time)
	case ActionCancel:
		c.Reset()
	}
}

func (c *TapClassifier) onDown(p Pointer, now time.Time) {
	hadTap := !c.tapConfirmAt.IsZero()
	c.tapConfirmAt = time.Time{}
	double := hadTap && c.hasPrevUp && c.consideredDoubleTap(p, now)

	c.down = p
	c.stillDown = true
	c.inLongPress = false
	c.deferConfirm = false
	c.alwaysInTapRegion = true
	c.alwaysInBiggerTapRegion = true
	c.showPressAt = now.Add(c.timing.TapTimeout)
	c.longPressAt = time.Time{}
	if !c.timing.DisableLongPress {
		c.longPressAt = now.Add(c.timing.LongPressTimeout)
	}

	if double {
		c.doubleTapping = true
		c.listener.OnDoubleTap()
		c.listener.OnDoubleTapEvent(ActionDown)
		return
	}
	if !c.timing.DisableDoubleTap {
		c.tapConfirmAt = now.Add(c.timing.DoubleTapTimeout)
	}
}

func (c *TapClassifier) consideredDoubleTap(second Pointer, now time.Time) bool {
	if !c.alwaysInBiggerTapRegion {
		return false
	}
	dt := now.Sub(c.prevUp)
	if dt > c.timing.DoubleTapTimeout || dt < c.timing.DoubleTapMinTime {
		return false
	}
	return dist(c.prevDown.AbsX, c.prevDown.AbsY, second.AbsX, second.AbsY) < c.timing.DoubleTapSlop
}

func (c *TapClassifier) onMove(p Pointer) {
	if c.inLongPress {
		return
	}
	if c.doubleTapping {
		c.listener.OnDoubleTapEvent(ActionMove)
		return
	}
	if !c.alwaysInTapRegion {
		return
	}
	d := dist(c.down.AbsX, c.down.AbsY, p.AbsX, p.AbsY)
	slop := c.timing.TouchSlop
	if c.hasPrevUp && !c.tapConfirmAt.IsZero() {
		slop = c.timing.DoubleTapTouchSlop
	}
	if d > slop {
		c.alwaysInTapRegion = false
		c.showPressAt = time.Time{}
		c.longPressAt = time.Time{}
		c.tapConfirmAt = time.Time{}
	}
	if d > c.timing.DoubleTapSlop {
		c.alwaysInBiggerTapRegion = false
	}
}

func (c *TapClassifier) onUp(now time.Time) {
	c.stillDown = false
	wasDoubleTapping := c.doubleTapping
	wasLongPress := c.inLongPress
	tap := c.alwaysInTapRegion
	confirm := c.deferConfirm

	c.prevDown = c.down
	c.prevUp = now
	c.hasPrevUp = true
	c.doubleTapping = false
	c.inLongPress = false
	c.deferConfirm = false
	c.showPressAt = time.Time{}
	c.longPressAt = time.Time{}
	if wasLongPress {
		c.tapConfirmAt = time.Time{}
	}

	switch {
	case wasDoubleTapping:
		c.listener.OnDoubleTapEvent(ActionUp)
	case wasLongPress:
	case tap:
		c.listener.OnSingleTapUp()
		if confirm {
			c.listener.OnSingleTapConfirmed()
		}
	}
}

// Advance fires every deadline at or before now, earliest first.
func (c *TapClassifier) Advance(now time.Time) {
	for {
		which, at := c.nextDeadline()
		if which == 0 || at.After(now) {
			return
		}
		switch which {
		case 1:
			c.showPressAt = time.Time{}
			c.listener.OnShowPress()
		case 2:
			c.longPressAt = time.Time{}
			c.tapConfirmAt = time.Time{}
			c.deferConfirm = false
			c.inLongPress = true
			c.listener.OnLongPress()
		case 3:
			c.tapConfirmAt = time.Time{}
			if c.stillDown {
				c.deferConfirm = true
				continue
			}
			c.listener.OnSingleTapConfirmed()
		}
	}
}

func (c *TapClassifier) nextDeadline() (int, time.Time) {
	which, at := 0, time.Time{}
	for i, t := range [...]time.Time{c.showPressAt, c.longPressAt, c.tapConfirmAt} {
		if t.IsZero() {
			continue
		}
		if which == 0 || t.Before(at) {
			which, at = i+1, t
		}
	}
	return which, at
}

func (c *TapClassifier) cancelTaps() {
	c.showPressAt = time.Time{}
	c.longPressAt = time.Time{}
	c.tapConfirmAt = time.Time{}
	c.doubleTapping = false
	c.stillDown = false
	c.alwaysInTapRegion = false
	c.alwaysInBiggerTapRegion = false
	c.deferConfirm = false
	c.inLongPress = false
}

// Reset forgets all pending classifications.
func (c *TapClassifier) Reset() {
	c.cancelTaps()
	c.hasPrevUp = false
}

func dist(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}
