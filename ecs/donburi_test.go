package ecs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []gesture.Event
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		received = append(received, e)
	})

	session := uuid.New()
	sink.EmitEvent(gesture.Event{
		Type:    gesture.EventTouchBegin,
		Session: session,
		X:       100,
		Y:       200,
	})

	sink.EmitEvent(gesture.Event{
		Type:    gesture.EventScaleBegin,
		Session: session,
		Scale:   1.5,
	})

	// Events are queued until ProcessEvents.
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != gesture.EventTouchBegin || e0.Session != session {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}

	e1 := received[1]
	if e1.Type != gesture.EventScaleBegin || e1.Scale != 1.5 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_FromDetector(t *testing.T) {
	world := donburi.NewWorld()
	d, err := gesture.NewDetector(gesture.Config{NoTapClassifier: true})
	if err != nil {
		t.Fatal(err)
	}
	d.SetEventSink(NewDonburiSink(world))
	d.SetTouchListener(&gesture.TouchListener{})

	var types []gesture.EventType
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		types = append(types, e.Type)
	})

	now := time.Unix(0, 0)
	d.Process(gesture.PointerEvent{Action: gesture.ActionDown, Pointers: []gesture.Pointer{{ID: 0, X: 10, Y: 10, AbsX: 10, AbsY: 10}}, Time: now})
	d.Process(gesture.PointerEvent{Action: gesture.ActionUp, Pointers: []gesture.Pointer{{ID: 0, X: 10, Y: 10, AbsX: 10, AbsY: 10}}, Time: now})
	events.ProcessAllEvents(world)

	if len(types) != 2 || types[0] != gesture.EventTouchBegin || types[1] != gesture.EventClick {
		t.Errorf("events = %v, want [touch-begin click]", types)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count2++
	})

	sink.EmitEvent(gesture.Event{Type: gesture.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
