package adsorption

import (
	"errors"
	"testing"

	"github.com/phanxgames/gesture"
	"github.com/tanema/gween/ease"
)

// moveScene is an object whose right edge starts 38px from a wall's left
// edge, dragged by one finger.
type moveScene struct {
	obj, wall *gesture.Frame
	magnet    *Magnet
	sched     *TweenScheduler
	md        *MoveDetector
	drag      *drag
	events    *recorder

	refuse       bool
	immediate    bool
	began, ended int
	ticks        float64
}

func newMoveScene(t *testing.T, setup func(s *moveScene)) *moveScene {
	t.Helper()
	s := &moveScene{
		obj:    gesture.NewFrame("object", 0, 0, 100, 100),
		wall:   gesture.NewFrame("wall", 138, -100, 50, 300),
		sched:  NewTweenScheduler(),
		events: &recorder{},
	}
	s.sched.Ease = ease.Linear
	s.magnet = NewMagnet("wall", s.wall.Geometry(), EdgeLeft)
	if setup != nil {
		setup(s)
	}
	opts := Options{Scheduler: s.sched}
	if s.immediate {
		opts.Scheduler = immediateScheduler{}
	}
	var err error
	s.md, err = NewMoveDetector(
		Magnetic{Target: s.obj.Geometry(), Alignments: []Alignment{RightToLeft}},
		[]*Magnet{s.magnet},
		MoveListener{
			OnBeginAdsorption: func(*MoveDetector) bool {
				s.began++
				return !s.refuse
			},
			OnAdsorption: func(md *MoveDetector) {
				s.ticks += md.AdsorptionX()
				s.obj.Translate(md.AdsorptionX(), md.AdsorptionY())
			},
			OnAdsorptionEnd: func(*MoveDetector) { s.ended++ },
		},
		opts,
	)
	if err != nil {
		t.Fatalf("NewMoveDetector: %v", err)
	}
	s.drag = newDrag(t, func(d *gesture.Detector) {
		s.md.OnMove(d)
		s.obj.Translate(d.MoveX(), d.MoveY())
	})
	s.drag.det.SetEventSink(s.events)
	return s
}

func (s *moveScene) right() float64 { return s.obj.Bounds().Right() }

func (s *moveScene) phaseX() Phase {
	h, _ := s.md.Analyzer().Phase()
	return h
}

// capture drags the object onto the wall and lets the snap finish.
func (s *moveScene) capture(t *testing.T) {
	t.Helper()
	s.drag.down(50, 50)
	s.drag.move(15, 0)
	s.drag.move(3, 0)
	s.drag.move(2, 0)
	settle(t, s.sched)
	if s.phaseX() != PhaseMagnetized {
		t.Fatalf("phase after capture = %v, want magnetized", s.phaseX())
	}
}

// --- Capture ---

func TestMoveCaptureOnThirdFrame(t *testing.T) {
	s := newMoveScene(t, nil)
	s.drag.down(50, 50)

	s.drag.move(15, 0)
	assertNear(t, "right after +15", s.right(), 115)
	s.drag.move(3, 0)
	assertNear(t, "right after +3", s.right(), 118)
	if s.began != 0 {
		t.Fatalf("began after two frames = %d, want 0", s.began)
	}

	s.drag.move(2, 0)
	if s.began != 1 {
		t.Fatalf("began = %d, want 1", s.began)
	}
	if !s.md.Animating() {
		t.Fatal("snap should be animating")
	}
	// The frame that starts the snap still moves the object.
	assertNear(t, "right at capture", s.right(), 120)
	if s.phaseX() != PhaseFree {
		t.Errorf("phase while animating = %v, want free", s.phaseX())
	}

	settle(t, s.sched)
	assertNear(t, "snap total", s.ticks, 18)
	assertNear(t, "right after snap", s.right(), 138)
	if s.ended != 1 {
		t.Errorf("ended = %d, want 1", s.ended)
	}
	if s.phaseX() != PhaseMagnetized {
		t.Errorf("phase = %v, want magnetized", s.phaseX())
	}
	if s.md.Animating() {
		t.Error("snap should be done")
	}
	if s.events.count(gesture.EventAdsorptionBegin) != 1 || s.events.count(gesture.EventAdsorptionEnd) != 1 {
		t.Errorf("events = %v", s.events.types)
	}
}

func TestMoveCaptureWithImmediateScheduler(t *testing.T) {
	s := newMoveScene(t, func(s *moveScene) { s.immediate = true })
	s.drag.down(50, 50)
	s.drag.move(15, 0)
	s.drag.move(3, 0)
	s.drag.move(2, 0)

	assertNear(t, "right", s.right(), 138)
	if s.md.Animating() {
		t.Error("snap should be done")
	}
	if s.phaseX() != PhaseMagnetized {
		t.Fatalf("phase = %v, want magnetized", s.phaseX())
	}
	if s.md.analyzer.h.track != TrackForward {
		t.Errorf("track = %v, want forward", s.md.analyzer.h.track)
	}
	assertNear(t, "budget", s.md.analyzer.h.budget, 40)

	s.drag.move(-10, 0)
	if s.phaseX() != PhaseReleasing {
		t.Errorf("phase = %v, want releasing", s.phaseX())
	}
	assertNear(t, "budget after -10", s.md.analyzer.h.budget, 30)
	assertNear(t, "right while releasing", s.right(), 138)
}

func TestMoveDetectorAsInterceptor(t *testing.T) {
	s := newMoveScene(t, nil)
	r := newDrag(t, func(d *gesture.Detector) {
		s.obj.Translate(d.MoveX(), d.MoveY())
	})
	r.det.SetMoveInterceptor(s.md)

	r.down(50, 50)
	r.move(15, 0)
	r.move(3, 0)
	r.move(2, 0)
	settle(t, s.sched)
	assertNear(t, "right after snap", s.right(), 138)

	r.move(-10, 0)
	if !r.det.Intercepted() {
		t.Error("a held frame should be claimed")
	}
	assertNear(t, "right while releasing", s.right(), 138)
}

func TestMoveHoldsStillDuringSnap(t *testing.T) {
	s := newMoveScene(t, nil)
	s.drag.down(50, 50)
	s.drag.move(15, 0)
	s.drag.move(3, 0)
	s.drag.move(2, 0)
	s.drag.move(4, 0)
	assertNear(t, "right during snap", s.right(), 120)
	settle(t, s.sched)
	assertNear(t, "right after snap", s.right(), 138)
}

func TestMoveNoCaptureWhileHeld(t *testing.T) {
	s := newMoveScene(t, nil)
	s.capture(t)
	if _, _, okX, _ := s.md.Analyzer().Analyze(-1, 0); okX {
		t.Error("held axis should not search for candidates")
	}
	s.drag.move(-1, 0)
	if s.began != 1 {
		t.Errorf("began = %d, want 1", s.began)
	}
}

func TestMoveRefusedSnap(t *testing.T) {
	s := newMoveScene(t, func(s *moveScene) { s.refuse = true })
	s.drag.down(50, 50)
	s.drag.move(15, 0)
	s.drag.move(3, 0)
	s.drag.move(2, 0)
	if s.began != 1 {
		t.Fatalf("began = %d, want 1", s.began)
	}
	if s.md.Animating() || s.sched.Active() != 0 {
		t.Error("refused snap should not animate")
	}
	if h, _ := s.md.Analyzer().Held(); len(h) != 0 {
		t.Errorf("held = %v, want none", h)
	}
	assertNear(t, "right", s.right(), 120)
}

func TestMoveDetachedMagnetIgnored(t *testing.T) {
	s := newMoveScene(t, nil)
	s.wall.Detach()
	s.drag.down(50, 50)
	s.drag.move(15, 0)
	s.drag.move(3, 0)
	s.drag.move(2, 0)
	if s.began != 0 {
		t.Errorf("began = %d, want 0", s.began)
	}
}

// --- Release ---

func TestMoveReleaseThroughImmunity(t *testing.T) {
	s := newMoveScene(t, nil)
	s.capture(t)

	s.drag.move(-10, 0)
	if s.phaseX() != PhaseReleasing {
		t.Errorf("phase = %v, want releasing", s.phaseX())
	}
	assertNear(t, "right while releasing", s.right(), 138)

	s.drag.move(-31, 0)
	if s.phaseX() != PhaseImmune {
		t.Errorf("phase = %v, want immune", s.phaseX())
	}
	assertNear(t, "right after release", s.right(), 107)
	if s.events.count(gesture.EventAdsorptionRelease) != 1 {
		t.Errorf("release events = %d, want 1", s.events.count(gesture.EventAdsorptionRelease))
	}

	s.drag.move(-5, 0)
	if s.phaseX() != PhaseFree {
		t.Errorf("phase = %v, want free", s.phaseX())
	}
	assertNear(t, "right when free", s.right(), 102)
}

func TestMoveReleaseWithoutImmunity(t *testing.T) {
	s := newMoveScene(t, func(s *moveScene) {
		s.magnet.Horizontal.Immunity = 0
	})
	s.capture(t)
	s.drag.move(-41, 0)
	if s.phaseX() != PhaseFree {
		t.Errorf("phase = %v, want free", s.phaseX())
	}
	assertNear(t, "right", s.right(), 97)
}

func TestMoveReversalResetsBudget(t *testing.T) {
	s := newMoveScene(t, nil)
	s.capture(t)

	s.drag.move(-30, 0)
	assertNear(t, "budget after -30", s.md.analyzer.h.budget, 10)

	s.drag.move(5, 0)
	if s.phaseX() != PhaseMagnetized {
		t.Errorf("phase after reversal = %v, want magnetized", s.phaseX())
	}
	assertNear(t, "budget after reversal", s.md.analyzer.h.budget, 40)
	if s.md.analyzer.h.track != TrackBackward {
		t.Errorf("track = %v, want backward", s.md.analyzer.h.track)
	}

	// The reversed track resists movement to the right now.
	s.drag.move(30, 0)
	if s.phaseX() != PhaseReleasing {
		t.Errorf("phase = %v, want releasing", s.phaseX())
	}
	assertNear(t, "right", s.right(), 138)
}

func TestMoveDetachedObjectReleases(t *testing.T) {
	s := newMoveScene(t, nil)
	s.capture(t)
	s.obj.Detach()
	s.drag.move(-1, 0)
	if s.phaseX() != PhaseFree {
		t.Errorf("phase = %v, want free", s.phaseX())
	}
	if s.events.count(gesture.EventAdsorptionRelease) != 1 {
		t.Errorf("release events = %d, want 1", s.events.count(gesture.EventAdsorptionRelease))
	}
	s.drag.move(-1, 0)
	if s.events.count(gesture.EventAdsorptionRelease) != 1 {
		t.Error("a free detector should not emit release again")
	}
}

func TestMoveNewGestureInterruptsSnap(t *testing.T) {
	s := newMoveScene(t, nil)
	s.drag.down(50, 50)
	s.drag.move(15, 0)
	s.drag.move(3, 0)
	s.drag.move(2, 0)
	s.drag.up()

	s.drag.down(70, 50)
	s.drag.move(1, 0)
	if s.began != 2 {
		t.Errorf("began = %d, want 2", s.began)
	}
	if s.sched.Active() != 1 {
		t.Errorf("active = %d, want 1", s.sched.Active())
	}
	settle(t, s.sched)
	assertNear(t, "right", s.right(), 138)
}

// --- Analyzer ---

func TestMoveAnalyzeDirection(t *testing.T) {
	obj := gesture.NewFrame("object", 30, 0, 100, 100)
	wall := gesture.NewFrame("wall", 138, 0, 50, 100)
	a, err := NewMoveAnalyzer(Magnetic{Target: obj.Geometry(), Alignments: FrameAlignments},
		NewMagnet("wall", wall.Geometry(), EdgeLeft))
	if err != nil {
		t.Fatalf("NewMoveAnalyzer: %v", err)
	}
	if _, _, okX, _ := a.Analyze(-1, 0); okX {
		t.Error("moving away should not find the wall")
	}
	ox, _, okX, _ := a.Analyze(1, 0)
	if !okX {
		t.Fatal("moving toward the wall should find it")
	}
	assertNear(t, "offset", ox, 7)
}

func TestMoveAnalyzeClosestAndStrongest(t *testing.T) {
	obj := gesture.NewFrame("object", 0, 0, 100, 100)
	near := NewMagnet("near", gesture.NewFrame("near", 138, 0, 10, 10).Geometry(), EdgeLeft)
	far := NewMagnet("far", gesture.NewFrame("far", 139, 0, 10, 10).Geometry(), EdgeLeft)
	strong := NewMagnet("strong", gesture.NewFrame("strong", 138, 0, 10, 10).Geometry(), EdgeLeft)
	strong.Horizontal = Thresholds{Magnetism: 30}

	a, err := NewMoveAnalyzer(Magnetic{Target: obj.Geometry(), Alignments: []Alignment{RightToLeft}}, far, near, strong)
	if err != nil {
		t.Fatalf("NewMoveAnalyzer: %v", err)
	}
	ox, _, okX, _ := a.Analyze(20, 0)
	if !okX {
		t.Fatal("expected a candidate")
	}
	assertNear(t, "offset", ox, 18)
	held, _ := a.Held()
	if len(held) != 2 {
		t.Fatalf("held = %d candidates, want 2", len(held))
	}
	for _, r := range held {
		if r.Magnet == far {
			t.Error("farther magnet should not be held")
		}
	}

	a.capture(true, false, TrackForward, TrackNone)
	assertNear(t, "release", a.h.budget, 60)
}

func TestMoveAnalyzeVertical(t *testing.T) {
	obj := gesture.NewFrame("object", 0, 0, 100, 100)
	floor := gesture.NewFrame("floor", 0, 110, 300, 20)
	a, err := NewMoveAnalyzer(Magnetic{Target: obj.Geometry(), Alignments: FrameAlignments},
		NewMagnet("floor", floor.Geometry(), FrameEdges...))
	if err != nil {
		t.Fatalf("NewMoveAnalyzer: %v", err)
	}
	_, oy, okX, okY := a.Analyze(0, 5)
	if okX || !okY {
		t.Fatalf("okX, okY = %v, %v, want false, true", okX, okY)
	}
	assertNear(t, "offset", oy, 5)
	_, v := a.Held()
	if len(v) != 1 || v[0].Alignment != BottomToTop {
		t.Errorf("held = %v, want bottom->top", v)
	}
}

func TestMoveAdsorptionIn(t *testing.T) {
	parent := gesture.NewFrame("parent", 0, 0, 100, 100)
	parent.SetScale(2)
	md := &MoveDetector{dx: 10, dy: -4}
	x, y := md.AdsorptionIn(parent)
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, -2)
}

func TestNewMoveAnalyzerErrors(t *testing.T) {
	obj := gesture.NewFrame("object", 0, 0, 10, 10).Geometry()
	wall := gesture.NewFrame("wall", 0, 0, 10, 10).Geometry()
	bad := NewMagnet("bad", wall, EdgeLeft)
	bad.Vertical.Magnetism = 0

	tests := []struct {
		name     string
		magnetic Magnetic
		magnets  []*Magnet
	}{
		{"no target", Magnetic{}, nil},
		{"nil magnet", Magnetic{Target: obj}, []*Magnet{nil}},
		{"magnet without target", Magnetic{Target: obj}, []*Magnet{{Name: "x"}}},
		{"zero magnetism", Magnetic{Target: obj}, []*Magnet{bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMoveAnalyzer(tt.magnetic, tt.magnets...)
			if !errors.Is(err, ErrInvalidMagnet) {
				t.Errorf("err = %v, want ErrInvalidMagnet", err)
			}
		})
	}
}

func TestMagnetDefaultRelease(t *testing.T) {
	m := &Magnet{Name: "m", Target: gesture.NewFrame("m", 0, 0, 1, 1).Geometry(),
		Horizontal: Thresholds{Magnetism: 15}, Vertical: Thresholds{Magnetism: 10, Release: 12}}
	if err := m.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	assertNear(t, "horizontal release", m.Horizontal.Release, 30)
	assertNear(t, "vertical release", m.Vertical.Release, 12)
}
