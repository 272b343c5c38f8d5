// Package ecs bridges sprig's semantic UI events into an ECS world.
//
// The primary adapter is [NewDonburiSink], which publishes every event a
// Display emits (taps, holds, drags, gestures, keys, selection) into a
// [Donburi] world as typed events. Subscribe to [UIEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	display.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
