// Package gesture recognizes multi-pointer manipulation gestures from a raw
// pointer-event stream: single- and multi-finger move, rotate and scale,
// plus tap, long press and double tap.
//
// A [Detector] consumes [PointerEvent] values through [Detector.Process],
// keeps the gesture's [State], computes per-frame deltas and dispatches them
// to listener structs whose fields are optional callbacks.
//
// # Quick start
//
// With Ebitengine, [PointerInput] polls the mouse and touch screen and feeds
// the detector once per frame:
//
//	d, _ := gesture.NewDetector(gesture.Config{})
//	d.SetTouchListener(&gesture.TouchListener{
//		OnTouchMove: func(d *gesture.Detector) bool {
//			box.Translate(d.MoveX(), d.MoveY())
//			return true
//		},
//		OnClick: func(d *gesture.Detector) { fmt.Println("click") },
//	})
//	in := gesture.NewPointerInput(nil)
//
//	func (g *Game) Update() error {
//		in.Update(d, time.Now())
//		return nil
//	}
//
// Any other source works too: build PointerEvent values and call Process.
//
// # Gesture lifecycle
//
// The first pointer down asks [TouchListener.OnBeginTouch]. While one finger
// is down, deltas go to OnTouchMove. A second finger asks the move, rotate
// and scale listeners whether to begin; each accepted sub-gesture then
// receives its own deltas until its callback returns false or fingers lift.
// Exactly one terminal callback ends every accepted gesture: OnClick,
// OnDoubleClick, OnLongClick, OnTouchEnd or OnTouchCancel.
//
// Taps are resolved by a [TapDisambiguator]; the built-in [TapClassifier]
// is timer driven. Call [Detector.Tick] every frame so long presses and
// delayed clicks resolve between events.
//
// # Accumulation and consumption
//
// [Detector.AccumulateMoveX] and friends hold back a channel until a target
// magnitude has built up, then fire once per crossed target. Collaborators
// such as the adsorption package absorb part of a frame's delta with
// [Detector.ConsumeMove], [Detector.ConsumeRotation] and
// [Detector.ConsumeScale]; consumption resets every event.
//
// # Geometry
//
// Manipulated objects implement [Geometry]. [Frame] is a small transform
// tree implementing both Geometry and [Space], enough to compare rectangles
// that live under different parents.
//
// Events can also be forwarded to an [EventSink]; ECS
// integration lives in gesture/ecs (via [Donburi]).
//
// [Donburi]: https://github.com/yohamta/donburi
package gesture
