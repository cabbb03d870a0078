// Package ecs provides ECS adapters for gesture's event stream.
//
// The primary adapter is [NewDonburiSink], which bridges gesture events
// (touch, click, move, rotate, scale and adsorption) into a [Donburi] world
// as typed events. Subscribe to [GestureEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	detector.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
