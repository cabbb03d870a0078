package gesture

import (
	"math"
	"time"
)

const epsilon = 1e-9

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// at returns t0 plus ms milliseconds.
func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func pt(id int, x, y float64) Pointer {
	return Pointer{ID: id, X: x, Y: y, AbsX: x, AbsY: y}
}

func ev(a Action, index, ms int, pts ...Pointer) PointerEvent {
	return PointerEvent{Action: a, ActionIndex: index, Pointers: pts, Time: at(ms)}
}

func near(a, b float64) bool { return math.Abs(a-b) <= epsilon }

// calls records listener callbacks by name.
type calls struct{ names []string }

func (c *calls) add(name string) func(*Detector) {
	return func(*Detector) { c.names = append(c.names, name) }
}

// touch returns a TouchListener recording every terminal callback and
// OnPress.
func (c *calls) touch() *TouchListener {
	return &TouchListener{
		OnTouchEnd:    c.add("touch end"),
		OnTouchCancel: c.add("cancel"),
		OnPress:       c.add("press"),
		OnClick:       c.add("click"),
		OnDoubleClick: c.add("double click"),
		OnLongClick:   c.add("long click"),
	}
}

func (c *calls) count(name string) int {
	n := 0
	for _, got := range c.names {
		if got == name {
			n++
		}
	}
	return n
}

// sinkLog records every event emitted to it.
type sinkLog struct{ events []Event }

func (s *sinkLog) EmitEvent(e Event) { s.events = append(s.events, e) }

func (s *sinkLog) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}
