// Package ecs provides ECS adapters for gesture recognition events.
//
// The primary adapter is [NewDonburiStore], which bridges recognized gestures
// (long press, short tap, double tap) into a [Donburi] world as typed events.
// Subscribe to [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
