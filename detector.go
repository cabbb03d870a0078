package gesture

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Targets are accumulation targets per delta channel. Zero disables
// accumulation for that channel.
type Targets struct {
	MoveX, MoveY float64 // pixels
	Rotation     float64 // degrees
	Scale        float64 // |factor - 1|
}

// Config holds the plain-value settings of a Detector. Zero values take
// defaults.
type Config struct {
	// TrackedPointers is how many of the most recent pointers feed
	// multi-finger math. Default 2; values below 2 are rejected.
	TrackedPointers int
	// EnableDoubleClick delays every click until a double tap is ruled
	// out.
	EnableDoubleClick bool
	// ScrollCancelsClick gives up the click on any single-finger move,
	// even one inside the touch slop.
	ScrollCancelsClick bool
	// DoubleTapScrollCancelsClick gives up the double click when the second
	// tap moved.
	DoubleTapScrollCancelsClick bool
	// Accumulate is applied at the start of every gesture.
	Accumulate Targets
	// Taps configures the built-in tap classifier. Taps.TouchSlop is also
	// the distance a single finger must travel to count as scrolling.
	Taps TapTiming
	// NoTapClassifier resolves every tap as an immediate click instead of
	// running the built-in classifier.
	NoTapClassifier bool
}

func (c Config) validate() error {
	if c.TrackedPointers != 0 && c.TrackedPointers < 2 {
		return fmt.Errorf("tracked pointers %d: %w", c.TrackedPointers, ErrInvalidTrackCount)
	}
	for k, v := range [kindCount]float64{c.Accumulate.MoveX, c.Accumulate.MoveY, c.Accumulate.Rotation, c.Accumulate.Scale} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("accumulate %s = %v: %w", Kind(k), v, ErrInvalidThreshold)
		}
	}
	return nil
}

// Detector is the gesture state machine. It consumes a raw pointer-event
// stream through Process, computes per-frame move, rotate and scale deltas,
// and dispatches them to its listeners.
//
// A Detector is not safe for concurrent use; feed it from one goroutine.
type Detector struct {
	cfg   Config
	state State

	touch  *TouchListener
	move   *MoveListener
	rotate *RotateListener
	scale  *ScaleListener

	intercept MoveInterceptor
	claimed   bool

	taps   TapDisambiguator
	sink   EventSink
	target Geometry
	debug  bool
}

// NewDetector returns a Detector configured by cfg. The built-in
// TapClassifier is installed unless cfg.NoTapClassifier is set.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("new detector: %w", err)
	}
	d := &Detector{cfg: cfg, state: newState()}
	if cfg.TrackedPointers != 0 {
		if err := d.state.track.SetLimit(cfg.TrackedPointers); err != nil {
			return nil, fmt.Errorf("new detector: %w", err)
		}
	}
	d.cfg.Taps = cfg.Taps.withDefaults()
	if !cfg.NoTapClassifier {
		timing := d.cfg.Taps
		timing.DisableDoubleTap = !cfg.EnableDoubleClick
		d.taps = NewTapClassifier(timing, tapBridge{d})
	}
	return d, nil
}

// --- Wiring ---

// SetTouchListener sets the single-finger listener. Without one no gesture
// is ever accepted.
func (d *Detector) SetTouchListener(l *TouchListener) { d.touch = l }

// SetMoveListener sets the multi-finger move listener.
func (d *Detector) SetMoveListener(l *MoveListener) { d.move = l }

// SetRotateListener sets the multi-finger rotate listener.
func (d *Detector) SetRotateListener(l *RotateListener) { d.rotate = l }

// SetScaleListener sets the multi-finger scale listener.
func (d *Detector) SetScaleListener(l *ScaleListener) { d.scale = l }

// SetMoveInterceptor sets the interceptor that sees every single-finger
// and multi-finger move frame before OnTouchMove or MoveListener.OnMove.
// Pass nil to remove it.
func (d *Detector) SetMoveInterceptor(mi MoveInterceptor) { d.intercept = mi }

// Intercepted reports whether the move interceptor claimed the frame being
// dispatched. Listeners use it to skip applying a move the interceptor
// already handled.
func (d *Detector) Intercepted() bool { return d.claimed }

// SetTapDisambiguator replaces the tap classifier. An external implementation
// reports back through TapListener. Pass nil to resolve taps as immediate
// clicks.
func (d *Detector) SetTapDisambiguator(t TapDisambiguator) { d.taps = t }

// TapListener returns the callback surface a TapDisambiguator reports to.
func (d *Detector) TapListener() TapListener { return tapBridge{d} }

// SetEventSink sets the optional event sink.
func (d *Detector) SetEventSink(s EventSink) { d.sink = s }

// EventSink returns the event sink, or nil.
func (d *Detector) EventSink() EventSink { return d.sink }

// SetTarget sets the manipulated object. Its bounds center becomes the
// pivot at touch-down unless the touch listener provides one.
func (d *Detector) SetTarget(g Geometry) { d.target = g }

// SetTrackedPointers changes the tracked pointer count.
func (d *Detector) SetTrackedPointers(n int) error {
	return d.state.track.SetLimit(n)
}

// SetDoubleClickEnabled toggles double-click detection.
func (d *Detector) SetDoubleClickEnabled(on bool) {
	d.cfg.EnableDoubleClick = on
	if c, ok := d.taps.(*TapClassifier); ok {
		c.timing.DisableDoubleTap = !on
	}
}

// State returns the gesture state.
func (d *Detector) State() *State { return &d.state }

// Session returns the id of the open gesture, or uuid.Nil.
func (d *Detector) Session() uuid.UUID { return d.state.session }

// --- Accumulation and consumption ---

// AccumulateMoveX makes horizontal moves fire in steps of v pixels for the
// open gesture (or the next one when none is open).
func (d *Detector) AccumulateMoveX(v float64) error { return d.state.acc.SetTarget(KindMoveX, v) }

// AccumulateMoveY makes vertical moves fire in steps of v pixels.
func (d *Detector) AccumulateMoveY(v float64) error { return d.state.acc.SetTarget(KindMoveY, v) }

// AccumulateRotation makes rotation fire in steps of v degrees.
func (d *Detector) AccumulateRotation(v float64) error {
	return d.state.acc.SetTarget(KindRotation, v)
}

// AccumulateScale makes scale fire in steps of factor 1±v.
func (d *Detector) AccumulateScale(v float64) error { return d.state.acc.SetTarget(KindScale, v) }

// ClearAccumulation removes every accumulation target.
func (d *Detector) ClearAccumulation() {
	for k := Kind(0); k < kindCount; k++ {
		d.state.acc.ClearTarget(k)
	}
}

// ConsumeMove absorbs part of this frame's move. Signs are ignored.
func (d *Detector) ConsumeMove(x, y float64) {
	d.state.acc.consume(KindMoveX, x)
	d.state.acc.consume(KindMoveY, y)
}

// ConsumeRotation absorbs part of this frame's rotation.
func (d *Detector) ConsumeRotation(deg float64) { d.state.acc.consume(KindRotation, deg) }

// ConsumeScale absorbs part of this frame's scale, measured as |factor-1|.
func (d *Detector) ConsumeScale(amount float64) { d.state.acc.consume(KindScale, amount) }

// ResetConsumed drops all consumption of the current frame. Process calls it
// at the start of every event.
func (d *Detector) ResetConsumed() { d.state.acc.resetConsumed() }

// --- Deltas ---

// MoveX returns the horizontal delta of this frame, after accumulation and
// consumption.
func (d *Detector) MoveX() float64 {
	x, _ := d.rawMove()
	return d.state.acc.value(KindMoveX, x)
}

// MoveY returns the vertical delta of this frame.
func (d *Detector) MoveY() float64 {
	_, y := d.rawMove()
	return d.state.acc.value(KindMoveY, y)
}

// Rotation returns the rotation delta of this frame in degrees, positive
// clockwise on a Y-down screen.
func (d *Detector) Rotation() float64 {
	return d.state.acc.value(KindRotation, d.rawRotation())
}

// ScaleFactor returns the multiplicative scale of this frame.
func (d *Detector) ScaleFactor() float64 {
	return d.state.acc.value(KindScale, d.rawScale())
}

// RawMove returns this frame's move before accumulation and consumption.
func (d *Detector) RawMove() (float64, float64) { return d.rawMove() }

// RawRotation returns this frame's rotation before accumulation and
// consumption.
func (d *Detector) RawRotation() float64 { return d.rawRotation() }

// RawScaleFactor returns this frame's scale before accumulation and
// consumption.
func (d *Detector) RawScaleFactor() float64 { return d.rawScale() }

// --- Processing ---

// Process feeds one pointer event and reports whether it was handled.
//
// A pointer-up always ends the move sub-gesture. Scale and rotate keep
// running while at least two pointers stay down and end when one is left.
func (d *Detector) Process(ev PointerEvent) bool {
	if d.taps != nil && !ev.Time.IsZero() {
		d.taps.Advance(ev.Time)
	}
	s := &d.state
	s.acc.resetConsumed()
	s.rememberCurrent(ev)
	d.claimed = false

	var handled bool
	switch ev.Action {
	case ActionDown:
		s.rememberStart()
		s.rememberPrevious()
		s.pivot = d.providePivot(ev)
		handled = d.onDown(ev)
		s.rememberPointerID()
		s.rememberPrevious()
	case ActionPointerDown:
		handled = d.onPointerDown(ev)
		s.rememberPointerID()
		s.rememberPrevious()
	case ActionMove:
		handled = d.onMove(ev)
		s.rememberPrevious()
	case ActionPointerUp:
		handled = d.onPointerUp(ev)
		s.rememberPointerID()
		s.rememberPrevious()
	case ActionUp:
		handled = d.onUp(ev)
		s.rememberPointerID()
	case ActionCancel:
		handled = d.onCancel()
	}

	if s.completed {
		s.recycle()
	}
	if d.debug {
		debugCheckState(s)
	}
	return handled
}

// Tick drives the tap classifier's timers. Hosts call it once per frame so
// long presses and delayed clicks resolve without waiting for the next
// pointer event.
func (d *Detector) Tick(now time.Time) {
	if d.taps != nil {
		d.taps.Advance(now)
	}
}

func (d *Detector) providePivot(ev PointerEvent) Vec2 {
	if d.touch != nil && d.touch.ProvidePivot != nil {
		return d.touch.ProvidePivot(d)
	}
	if d.target != nil {
		return d.target.Bounds().Center()
	}
	if p, ok := ev.ActionPointer(); ok {
		return Vec2{p.AbsX, p.AbsY}
	}
	return Vec2{}
}

func (d *Detector) onDown(ev PointerEvent) bool {
	s := &d.state
	if len(ev.Pointers) != 1 {
		s.recycle()
		return false
	}
	var handled bool
	if s.completed {
		p := ev.Pointers[0]
		handled = d.touch != nil && (d.touch.OnBeginTouch == nil || d.touch.OnBeginTouch(d, p.AbsX, p.AbsY))
		if handled {
			d.begin(p)
		}
	} else {
		// Second tap of a double tap: the first one is still open.
		handled = true
	}
	if handled {
		s.completed = false
		d.feedTaps(ev)
	} else {
		s.recycle()
	}
	s.useSingleFinger(handled)
	return handled
}

func (d *Detector) begin(p Pointer) {
	s := &d.state
	s.session = uuid.New()
	for k, v := range [kindCount]float64{d.cfg.Accumulate.MoveX, d.cfg.Accumulate.MoveY, d.cfg.Accumulate.Rotation, d.cfg.Accumulate.Scale} {
		if v > 0 && !s.acc.Accumulating(Kind(k)) {
			s.acc.regs[k] = register{target: v}
		}
	}
	Logger().Debug("gesture begin", "session", s.session, "x", p.AbsX, "y", p.AbsY)
	d.emit(EventTouchBegin, p.AbsX, p.AbsY)
}

func (d *Detector) onPointerDown(ev PointerEvent) bool {
	s := &d.state
	if s.completed {
		return false
	}
	var handled bool
	if len(ev.Pointers) > 1 {
		if d.scale != nil && !s.scaling {
			s.scaling = callBool(d.scale.OnBeginScale, d, true)
			d.subBegan(s.scaling, "scale", EventScaleBegin)
		}
		if d.rotate != nil && !s.rotating {
			s.rotating = callBool(d.rotate.OnBeginRotate, d, true)
			d.subBegan(s.rotating, "rotate", EventRotateBegin)
		}
		if d.move != nil && !s.moving {
			s.moving = callBool(d.move.OnBeginMove, d, true)
			d.subBegan(s.moving, "move", EventMoveBegin)
		}
		handled = s.scaling || s.rotating || s.moving
	}
	s.useMultiFinger(handled)
	s.doubleClickTriggered = false
	s.usedMultiFinger = true
	d.feedTaps(ev)
	return handled
}

func (d *Detector) subBegan(ok bool, name string, t EventType) {
	if !ok {
		return
	}
	Logger().Debug("gesture "+name+" begin", "session", d.state.session)
	d.emit(t, 0, 0)
}

func (d *Detector) onMove(ev PointerEvent) bool {
	s := &d.state
	if s.completed {
		return false
	}
	if s.multiFinger && len(ev.Pointers) > 1 {
		var handled bool
		if s.moving && d.move != nil {
			handled = d.dispatch(&s.moving, []Kind{KindMoveX, KindMoveY}, d.intercepted(d.move.OnMove), d.endMove) || handled
		}
		if s.rotating && d.rotate != nil {
			handled = d.dispatch(&s.rotating, []Kind{KindRotation}, d.rotate.OnRotate, d.endRotate) || handled
		}
		if s.scaling && d.scale != nil {
			handled = d.dispatch(&s.scaling, []Kind{KindScale}, d.scale.OnScale, d.endScale) || handled
		}
		return handled
	}
	if !s.singleFinger || d.touch == nil {
		return false
	}
	d.updateScroll(ev)
	handled := d.dispatch(nil, []Kind{KindMoveX, KindMoveY, KindRotation, KindScale}, d.intercepted(d.touch.OnTouchMove), nil)
	d.feedTaps(ev)
	return handled
}

// updateScroll marks the single finger as scrolling once it leaves the touch
// slop. The second tap of a double tap is classified by the tap
// disambiguator instead.
func (d *Detector) updateScroll(ev PointerEvent) {
	s := &d.state
	if s.singleTapScrolled || s.doubleClickTriggered {
		return
	}
	if d.cfg.ScrollCancelsClick {
		s.singleTapScrolled = true
		return
	}
	start, ok := s.start.actionPointer()
	if !ok || len(ev.Pointers) == 0 {
		return
	}
	p := ev.Pointers[0]
	if dist(start.AbsX, start.AbsY, p.AbsX, p.AbsY) > d.cfg.Taps.TouchSlop {
		s.singleTapScrolled = true
	}
}

// dispatch runs the accumulate-then-fire loop for one listener. With no
// accumulation the listener is called once; otherwise once per crossed
// target. A false return ends the sub-gesture named by active.
func (d *Detector) dispatch(active *bool, kinds []Kind, fn func(*Detector) bool, end func()) bool {
	acc := &d.state.acc
	raw := d.rawValues()
	for _, k := range kinds {
		acc.record(k, raw[k])
	}
	canFire := func() bool {
		for _, k := range kinds {
			if acc.canFire(k) {
				return true
			}
		}
		return false
	}

	var handled bool
	ok := true
	if canFire() {
		for ok && canFire() {
			ok = callBool(fn, d, true)
			handled = true
			acc.repeat = true
			for _, k := range kinds {
				acc.fire(k)
			}
		}
	} else if d.speaks(kinds) {
		ok = callBool(fn, d, true)
		handled = true
	}
	acc.repeat = false
	if !ok && active != nil {
		*active = false
		end()
		return handled
	}
	if active == nil {
		return ok && handled
	}
	return handled
}

// intercepted runs the move interceptor ahead of fn on every fire.
func (d *Detector) intercepted(fn func(*Detector) bool) func(*Detector) bool {
	if d.intercept == nil {
		return fn
	}
	return func(d *Detector) bool {
		d.claimed = d.intercept.OnMove(d)
		return callBool(fn, d, true)
	}
}

// speaks reports whether a listener should hear a frame in which no target
// was crossed: only when at least one of its channels is unaccumulated.
func (d *Detector) speaks(kinds []Kind) bool {
	for _, k := range kinds {
		if !d.state.acc.Accumulating(k) {
			return true
		}
	}
	return false
}

func (d *Detector) endMove() {
	Logger().Debug("gesture move end", "session", d.state.session)
	d.emit(EventMoveEnd, 0, 0)
	call(d.move.OnMoveEnd, d)
}

func (d *Detector) endRotate() {
	Logger().Debug("gesture rotate end", "session", d.state.session)
	d.emit(EventRotateEnd, 0, 0)
	call(d.rotate.OnRotateEnd, d)
}

func (d *Detector) endScale() {
	Logger().Debug("gesture scale end", "session", d.state.session)
	d.emit(EventScaleEnd, 0, 0)
	call(d.scale.OnScaleEnd, d)
}

func (d *Detector) onPointerUp(ev PointerEvent) bool {
	s := &d.state
	if s.completed {
		return false
	}
	var handled bool
	if s.moving && d.move != nil {
		s.moving = false
		d.endMove()
		handled = true
	}
	if remaining := len(ev.Pointers) - 1; remaining >= 2 {
		// Scale and rotate carry on with the new tracked subset.
		return s.scaling || s.rotating || handled
	}
	if s.scaling && d.scale != nil {
		s.scaling = false
		d.endScale()
		handled = true
	}
	if s.rotating && d.rotate != nil {
		s.rotating = false
		d.endRotate()
		handled = true
	}
	s.useMultiFinger(false)
	return handled
}

func (d *Detector) onUp(ev PointerEvent) bool {
	s := &d.state
	if s.completed {
		return true
	}
	if s.singleFinger && d.touch != nil {
		if s.singleTapScrolled || s.longPressed || s.usedMultiFinger {
			d.touchEnd()
			return true
		}
		if d.taps == nil {
			d.click()
			return true
		}
		d.feedTaps(ev)
		return true
	}
	d.touchEnd()
	return true
}

func (d *Detector) onCancel() bool {
	s := &d.state
	if s.completed {
		return true
	}
	if d.taps != nil {
		d.taps.Reset()
	}
	d.endSubGestures()
	Logger().Debug("gesture cancel", "session", s.session)
	d.emit(EventTouchCancel, 0, 0)
	if d.touch != nil {
		call(d.touch.OnTouchCancel, d)
	}
	d.finish()
	return true
}

// endSubGestures closes every active multi-finger sub-gesture.
func (d *Detector) endSubGestures() {
	s := &d.state
	if s.scaling && d.scale != nil {
		s.scaling = false
		d.endScale()
	}
	if s.rotating && d.rotate != nil {
		s.rotating = false
		d.endRotate()
	}
	if s.moving && d.move != nil {
		s.moving = false
		d.endMove()
	}
}

// --- Terminal callbacks ---

func (d *Detector) touchEnd() {
	d.endSubGestures()
	Logger().Debug("gesture end", "session", d.state.session)
	d.emit(EventTouchEnd, 0, 0)
	if d.touch != nil {
		call(d.touch.OnTouchEnd, d)
	}
	d.finish()
}

func (d *Detector) click() {
	Logger().Debug("gesture click", "session", d.state.session)
	d.emit(EventClick, 0, 0)
	call(d.touch.OnClick, d)
	d.finish()
}

func (d *Detector) doubleClick() {
	Logger().Debug("gesture double click", "session", d.state.session)
	d.emit(EventDoubleClick, 0, 0)
	call(d.touch.OnDoubleClick, d)
	d.finish()
}

func (d *Detector) longClick() {
	Logger().Debug("gesture long click", "session", d.state.session)
	d.emit(EventLongClick, 0, 0)
	call(d.touch.OnLongClick, d)
	d.finish()
}

// finish closes the gesture and forgets pending tap classifications.
func (d *Detector) finish() {
	d.state.recycle()
	if d.taps != nil {
		d.taps.Reset()
	}
}

func (d *Detector) feedTaps(ev PointerEvent) {
	if d.taps != nil {
		d.taps.Feed(ev)
	}
}

func (d *Detector) emit(t EventType, x, y float64) {
	if d.sink == nil {
		return
	}
	if x == 0 && y == 0 {
		if p, ok := d.state.current.actionPointer(); ok {
			x, y = p.AbsX, p.AbsY
		}
	}
	mx, my := d.rawMove()
	d.sink.EmitEvent(Event{
		Type:     t,
		Session:  d.state.session,
		X:        x,
		Y:        y,
		MoveX:    mx,
		MoveY:    my,
		Rotation: d.rawRotation(),
		Scale:    d.rawScale(),
	})
}

// --- Tap bridge ---

// tapBridge turns tap classifications into the detector's terminal
// callbacks.
type tapBridge struct{ d *Detector }

func (b tapBridge) tapCandidate() bool {
	s := &b.d.state
	return !s.completed && s.singleFinger && !s.usedMultiFinger && b.d.touch != nil
}

func (b tapBridge) OnShowPress() {
	if !b.tapCandidate() || b.d.state.doubleClickTriggered {
		return
	}
	b.d.emit(EventPress, 0, 0)
	call(b.d.touch.OnPress, b.d)
}

func (b tapBridge) OnSingleTapUp() {
	d := b.d
	if !b.tapCandidate() || d.cfg.EnableDoubleClick {
		return
	}
	if d.cfg.ScrollCancelsClick && d.state.singleTapScrolled {
		d.touchEnd()
		return
	}
	d.click()
}

func (b tapBridge) OnSingleTapConfirmed() {
	d := b.d
	if !b.tapCandidate() || !d.cfg.EnableDoubleClick {
		return
	}
	if d.cfg.ScrollCancelsClick && d.state.singleTapScrolled {
		d.touchEnd()
		return
	}
	d.click()
}

func (b tapBridge) OnLongPress() {
	d := b.d
	if !b.tapCandidate() || d.state.doubleClickTriggered {
		return
	}
	if callBool(d.touch.OnLongPress, d, false) {
		d.longClick()
		return
	}
	d.state.longPressed = true
}

func (b tapBridge) OnDoubleTap() {
	if b.tapCandidate() {
		b.d.state.doubleClickTriggered = true
	}
}

func (b tapBridge) OnDoubleTapEvent(a Action) {
	d := b.d
	if !b.tapCandidate() || !d.state.doubleClickTriggered {
		return
	}
	switch a {
	case ActionMove:
		d.state.doubleTapScrolled = true
	case ActionUp:
		if d.cfg.DoubleTapScrollCancelsClick && d.state.doubleTapScrolled {
			d.touchEnd()
			return
		}
		d.doubleClick()
	}
}
