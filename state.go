package gesture

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the mutable record of the gesture in progress. It is owned by a
// single Detector and exposed read-only to listeners through accessors.
type State struct {
	start, previous, current *snapshot

	pivot   Vec2
	track   PointerTrack
	acc     Accumulator
	session uuid.UUID

	singleFinger         bool
	multiFinger          bool
	scaling              bool
	rotating             bool
	moving               bool
	longPressed          bool
	singleTapScrolled    bool
	doubleTapScrolled    bool
	usedMultiFinger      bool
	doubleClickTriggered bool
	completed            bool
}

func newState() State {
	return State{completed: true}
}

// --- Snapshots ---

func (s *State) rememberCurrent(ev PointerEvent) {
	swap(&s.current, newSnapshot(ev))
}

func (s *State) rememberStart() {
	swap(&s.start, s.current.retain())
}

func (s *State) rememberPrevious() {
	swap(&s.previous, s.current.retain())
	s.track.remember()
}

// rememberPointerID updates the down set from the current action.
func (s *State) rememberPointerID() {
	if s.current == nil {
		return
	}
	p, ok := s.current.actionPointer()
	if !ok {
		return
	}
	switch s.current.action {
	case ActionDown:
		// A down is the only pointer on the surface.
		s.track.ids = s.track.ids[:0]
		s.track.add(p.ID)
	case ActionPointerDown:
		s.track.add(p.ID)
	case ActionPointerUp, ActionUp, ActionCancel:
		s.track.remove(p.ID)
	}
}

// StartEvent returns the event that opened the gesture.
func (s *State) StartEvent() (PointerEvent, error) {
	return recorded("start", s.start)
}

// PreviousEvent returns the event of the previous frame.
func (s *State) PreviousEvent() (PointerEvent, error) {
	return recorded("previous", s.previous)
}

// CurrentEvent returns the event being processed.
func (s *State) CurrentEvent() (PointerEvent, error) {
	return recorded("current", s.current)
}

func recorded(name string, snap *snapshot) (PointerEvent, error) {
	if snap == nil {
		return PointerEvent{}, fmt.Errorf("%s event: %w", name, ErrNotRecorded)
	}
	return snap.event(), nil
}

// --- Finger mode ---

func (s *State) useSingleFinger(on bool) {
	s.singleFinger = on
	s.multiFinger = !on && !s.completed
}

func (s *State) useMultiFinger(on bool) {
	s.multiFinger = on
	s.singleFinger = !on && !s.completed
}

// recycle releases the retained snapshots and closes the gesture.
func (s *State) recycle() {
	swap(&s.start, nil)
	swap(&s.previous, nil)
	swap(&s.current, nil)
	limit := s.track.limit
	s.track.reset()
	s.track.limit = limit
	s.acc.reset()
	*s = State{
		track:     s.track,
		completed: true,
	}
}

// --- Accessors ---

// Pivot returns the screen-space point single-finger rotate and scale turn
// around.
func (s *State) Pivot() Vec2 { return s.pivot }

// Pointers returns the pointer track.
func (s *State) Pointers() *PointerTrack { return &s.track }

// Accumulator returns the accumulation registers of the gesture.
func (s *State) Accumulator() *Accumulator { return &s.acc }

// Session returns the id of the open gesture, or uuid.Nil when none is open.
func (s *State) Session() uuid.UUID { return s.session }

// SingleFinger reports whether the gesture is in its single-finger phase.
func (s *State) SingleFinger() bool { return s.singleFinger }

// MultiFinger reports whether the gesture is in its multi-finger phase.
func (s *State) MultiFinger() bool { return s.multiFinger }

// Moving reports whether a multi-finger move is active.
func (s *State) Moving() bool { return s.moving }

// Rotating reports whether a multi-finger rotate is active.
func (s *State) Rotating() bool { return s.rotating }

// Scaling reports whether a multi-finger scale is active.
func (s *State) Scaling() bool { return s.scaling }

// LongPressed reports whether a declined long press is holding the gesture.
func (s *State) LongPressed() bool { return s.longPressed }

// Scrolled reports whether the single finger moved far enough to give up the
// click.
func (s *State) Scrolled() bool { return s.singleTapScrolled }

// UsedMultiFinger reports whether more than one pointer has been down during
// the gesture.
func (s *State) UsedMultiFinger() bool { return s.usedMultiFinger }

// Completed reports whether no gesture is open.
func (s *State) Completed() bool { return s.completed }
