package gesture

import "github.com/google/uuid"

// EventSink is the interface for optional event forwarding, for example into
// an ECS world. When set on a Detector, gesture transitions are emitted to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Event carries a gesture transition for an EventSink.
type Event struct {
	Type EventType
	// Session identifies the gesture that produced the event. Every event
	// from touch-down to the terminal callback shares one session.
	Session uuid.UUID
	// Pointer position in screen space, when the event has one.
	X, Y float64
	// Frame deltas at the time of the event.
	MoveX, MoveY float64
	Rotation     float64
	Scale        float64
}

// EventSinkFunc adapts a plain function to the EventSink interface.
type EventSinkFunc func(Event)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event Event) { f(event) }
