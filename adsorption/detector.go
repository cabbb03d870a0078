package adsorption

import (
	"time"

	"github.com/google/uuid"
	"github.com/phanxgames/gesture"
)

// Options configure the snap animation of a detector.
type Options struct {
	// Duration of the snap. Default DefaultDuration.
	Duration time.Duration
	// Scheduler runs the snap. Nil gives the detector its own
	// TweenScheduler, advanced through the detector's Update.
	Scheduler Scheduler
}

// snapper drives the snap animation shared by the three detectors.
type snapper struct {
	sched    Scheduler
	own      *TweenScheduler
	duration time.Duration
	cancel   func()
	session  uuid.UUID
	sink     gesture.EventSink
	kind     string
}

func newSnapper(kind string, opts Options) snapper {
	s := snapper{sched: opts.Scheduler, duration: opts.Duration, kind: kind}
	if s.duration <= 0 {
		s.duration = DefaultDuration
	}
	if s.sched == nil {
		s.own = NewTweenScheduler()
		s.sched = s.own
	}
	return s
}

// Update advances the detector's own scheduler by dt seconds. It does
// nothing when a shared Scheduler was supplied; its host advances it.
func (s *snapper) Update(dt float32) {
	if s.own != nil {
		s.own.Update(dt)
	}
}

// Animating reports whether a snap is in flight.
func (s *snapper) Animating() bool { return s.cancel != nil }

// watch remembers the gesture's sink and reports whether a snap from an
// earlier gesture was interrupted.
func (s *snapper) watch(d *gesture.Detector) bool {
	s.sink = d.EventSink()
	if s.cancel != nil && d.Session() != s.session {
		s.stop()
		gesture.Logger().Debug("adsorption snap interrupted", "kind", s.kind)
		return true
	}
	return false
}

func (s *snapper) start(d *gesture.Detector, from, to []float64, step func([]float64), done func()) {
	s.session = d.Session()
	s.emit(gesture.EventAdsorptionBegin)
	finished := false
	cancel := s.sched.Animate(from, to, s.duration, step, func() {
		finished = true
		s.cancel = nil
		done()
		s.emit(gesture.EventAdsorptionEnd)
	})
	if !finished {
		s.cancel = cancel
	}
}

func (s *snapper) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *snapper) emit(t gesture.EventType) {
	if s.sink != nil {
		s.sink.EmitEvent(gesture.Event{Type: t, Session: s.session})
	}
}

// MoveListener receives move snapping. A nil OnBeginAdsorption accepts.
type MoveListener struct {
	OnBeginAdsorption func(md *MoveDetector) bool
	// OnAdsorption fires on every animation tick; apply AdsorptionX and
	// AdsorptionY to the object.
	OnAdsorption    func(md *MoveDetector)
	OnAdsorptionEnd func(md *MoveDetector)
}

// MoveDetector snaps a moving object to rectangle edges and centers.
//
// Call OnMove from the gesture's move listener before applying the frame's
// delta; it consumes the part of the delta the object must not receive.
type MoveDetector struct {
	snapper
	analyzer *MoveAnalyzer
	listener MoveListener
	dx, dy   float64
}

// NewMoveDetector returns a detector for magnetic against magnets.
func NewMoveDetector(magnetic Magnetic, magnets []*Magnet, l MoveListener, opts Options) (*MoveDetector, error) {
	a, err := NewMoveAnalyzer(magnetic, magnets...)
	if err != nil {
		return nil, err
	}
	return &MoveDetector{snapper: newSnapper("move", opts), analyzer: a, listener: l}, nil
}

// Analyzer returns the underlying analyzer.
func (md *MoveDetector) Analyzer() *MoveAnalyzer { return md.analyzer }

// AdsorptionX returns the horizontal snap delta of the current tick in
// screen space.
func (md *MoveDetector) AdsorptionX() float64 { return md.dx }

// AdsorptionY returns the vertical snap delta of the current tick in screen
// space.
func (md *MoveDetector) AdsorptionY() float64 { return md.dy }

// AdsorptionIn returns the snap delta of the current tick mapped into space,
// typically the object's parent.
func (md *MoveDetector) AdsorptionIn(space gesture.Space) (float64, float64) {
	return gesture.MapVector(md.dx, md.dy, gesture.ScreenSpace, space)
}

var _ gesture.MoveInterceptor = (*MoveDetector)(nil)

// OnMove runs one frame of move snapping and reports whether snapping
// affects the object this frame. While a snap animates the whole frame
// delta is consumed, so the object holds still under the pointer instead
// of drifting off the alignment the snap is heading to.
func (md *MoveDetector) OnMove(d *gesture.Detector) bool {
	if md.watch(d) {
		md.analyzer.discard()
	}
	if !md.analyzer.magnetic.Target.Attached() {
		md.Release()
		return false
	}
	dx, dy := d.MoveX(), d.MoveY()
	if md.Animating() {
		// The object holds still under a snap that is already running.
		d.ConsumeMove(dx, dy)
		return true
	}
	// Consume runs before the snap starts so a scheduler that finishes
	// inside Animate captures against a settled axis.
	ox, oy, okX, okY := md.analyzer.Analyze(dx, dy)
	px, py, released := md.analyzer.Consume(dx, dy)
	if released {
		md.emit(gesture.EventAdsorptionRelease)
	}
	d.ConsumeMove(dx-px, dy-py)
	if okX || okY {
		if md.listener.OnBeginAdsorption != nil && !md.listener.OnBeginAdsorption(md) {
			md.analyzer.discard()
		} else {
			md.snap(d, ox, oy, okX, okY, trackOf(dx), trackOf(dy))
		}
	}
	h, v := md.analyzer.Phase()
	return md.Animating() || h.Held() || v.Held()
}

func (md *MoveDetector) snap(d *gesture.Detector, ox, oy float64, okX, okY bool, tx, ty Track) {
	gesture.Logger().Debug("adsorption move snap", "dx", ox, "dy", oy)
	last := [2]float64{}
	md.start(d, []float64{0, 0}, []float64{ox, oy}, func(v []float64) {
		md.dx, md.dy = v[0]-last[0], v[1]-last[1]
		last[0], last[1] = v[0], v[1]
		if md.listener.OnAdsorption != nil {
			md.listener.OnAdsorption(md)
		}
	}, func() {
		md.dx, md.dy = 0, 0
		md.analyzer.capture(okX, okY, tx, ty)
		if md.listener.OnAdsorptionEnd != nil {
			md.listener.OnAdsorptionEnd(md)
		}
	})
}

// Release cancels any snap and returns both axes to free.
func (md *MoveDetector) Release() {
	h, v := md.analyzer.Phase()
	active := md.Animating() || h != PhaseFree || v != PhaseFree
	md.stop()
	md.dx, md.dy = 0, 0
	md.analyzer.Reset()
	if active {
		md.emit(gesture.EventAdsorptionRelease)
	}
}
