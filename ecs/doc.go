// Package ecs provides ECS adapters for grove's registry and animation
// events.
//
// [NewDonburiStore] bridges grove lifecycle events (registered, cloned,
// removed, tween completed, tween canceled) into a [Donburi] world as typed
// events. Subscribe to [ObjectEventType] in your ECS systems to receive them.
//
// [Mirror] keeps one Donburi entity per live handle with a [Transform]
// component, so ECS systems can query scene transforms without touching the
// registry.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.Registry.SetEntityStore(store)
//
//	mirror := ecs.NewMirror(world)
//	mirror.Sync(stage.Registry) // once per frame, after Stage.Frame
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
