// Package ecs provides ECS adapters for gesture.
package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive lifecycle and snapping
// events.
var GestureEventType = events.NewEventType[gesture.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) gesture.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event gesture.Event) {
	GestureEventType.Publish(s.world, event)
}
