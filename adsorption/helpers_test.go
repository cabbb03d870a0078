package adsorption

import (
	"math"
	"testing"
	"time"

	"github.com/phanxgames/gesture"
)

const epsilon = 1e-6

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// drag feeds single-finger events into a detector that forwards every move
// frame to onMove.
type drag struct {
	det  *gesture.Detector
	x, y float64
	now  time.Time
}

func newDrag(t *testing.T, onMove func(d *gesture.Detector)) *drag {
	t.Helper()
	det, err := gesture.NewDetector(gesture.Config{NoTapClassifier: true})
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	det.SetTouchListener(&gesture.TouchListener{
		OnTouchMove: func(d *gesture.Detector) bool {
			onMove(d)
			return true
		},
	})
	return &drag{det: det, now: time.Unix(0, 0)}
}

func (r *drag) event(a gesture.Action) gesture.PointerEvent {
	r.now = r.now.Add(16 * time.Millisecond)
	return gesture.PointerEvent{
		Action:   a,
		Pointers: []gesture.Pointer{{X: r.x, Y: r.y, AbsX: r.x, AbsY: r.y}},
		Time:     r.now,
	}
}

func (r *drag) down(x, y float64) {
	r.x, r.y = x, y
	r.det.Process(r.event(gesture.ActionDown))
}

func (r *drag) move(dx, dy float64) {
	r.x += dx
	r.y += dy
	r.det.Process(r.event(gesture.ActionMove))
}

func (r *drag) up() { r.det.Process(r.event(gesture.ActionUp)) }

// settle advances s until no animation is running.
func settle(t *testing.T, s *TweenScheduler) {
	t.Helper()
	for i := 0; s.Active() > 0; i++ {
		if i > 100 {
			t.Fatal("animation did not finish")
		}
		s.Update(0.01)
	}
}

// recorder collects the event types emitted to a sink.
type recorder struct{ types []gesture.EventType }

func (r *recorder) EmitEvent(e gesture.Event) { r.types = append(r.types, e.Type) }

func (r *recorder) count(t gesture.EventType) int {
	n := 0
	for _, got := range r.types {
		if got == t {
			n++
		}
	}
	return n
}

// pinch feeds two-finger events into a detector.
type pinch struct {
	det *gesture.Detector
	now time.Time
}

func newPinch(t *testing.T, setup func(det *gesture.Detector)) *pinch {
	t.Helper()
	det, err := gesture.NewDetector(gesture.Config{NoTapClassifier: true})
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	det.SetTouchListener(&gesture.TouchListener{})
	setup(det)
	return &pinch{det: det, now: time.Unix(0, 0)}
}

func (p *pinch) process(a gesture.Action, index int, pts ...gesture.Vec2) {
	p.now = p.now.Add(16 * time.Millisecond)
	ev := gesture.PointerEvent{Action: a, ActionIndex: index, Time: p.now}
	for i, v := range pts {
		ev.Pointers = append(ev.Pointers, gesture.Pointer{ID: i, X: v.X, Y: v.Y, AbsX: v.X, AbsY: v.Y})
	}
	p.det.Process(ev)
}

func (p *pinch) down(a, b gesture.Vec2) {
	p.process(gesture.ActionDown, 0, a)
	p.process(gesture.ActionPointerDown, 1, a, b)
}

func (p *pinch) move(a, b gesture.Vec2) { p.process(gesture.ActionMove, 0, a, b) }

// twist returns two points 100px apart on a line turned deg clockwise
// around (50, 0).
func twist(deg float64) (gesture.Vec2, gesture.Vec2) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return gesture.Vec2{X: 50 - 50*cos, Y: -50 * sin}, gesture.Vec2{X: 50 + 50*cos, Y: 50 * sin}
}

// immediateScheduler finishes every animation inside Animate.
type immediateScheduler struct{}

func (immediateScheduler) Animate(from, to []float64, d time.Duration, step func([]float64), done func()) func() {
	step(to)
	done()
	return func() {}
}
