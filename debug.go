package gesture

import "fmt"

// SetDebugMode enables invariant checks after every processed event. A
// broken invariant panics with a descriptive message. In release mode the
// checks are skipped entirely.
func (d *Detector) SetDebugMode(on bool) { d.debug = on }

// debugCheckState panics when the finger modes or the completed flag
// disagree.
func debugCheckState(s *State) {
	if s.singleFinger && s.multiFinger {
		panic(fmt.Sprintf("gesture debug: single and multi finger both active (session %s)", s.session))
	}
	if s.completed && (s.singleFinger || s.multiFinger) {
		panic(fmt.Sprintf("gesture debug: completed gesture still in a finger mode (single=%v multi=%v)",
			s.singleFinger, s.multiFinger))
	}
	if !s.completed && !s.singleFinger && !s.multiFinger {
		panic(fmt.Sprintf("gesture debug: open gesture %s has no finger mode", s.session))
	}
	if !s.multiFinger && (s.scaling || s.rotating || s.moving) {
		panic(fmt.Sprintf("gesture debug: sub-gesture active outside multi finger (scale=%v rotate=%v move=%v)",
			s.scaling, s.rotating, s.moving))
	}
	if s.completed && (s.start != nil || s.previous != nil || s.current != nil) {
		panic("gesture debug: completed gesture retains snapshots")
	}
}
