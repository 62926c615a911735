// Package grove is an interactive 3D scene controller for [Ebitengine]: a
// registry of lightweight scene objects, a tween director that animates their
// transforms, and an input dispatcher that turns keys and on-screen button
// holds into camera movement.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	stage := grove.NewStage(grove.DefaultConfig())
//	stage.PopulateDemo()
//	grove.StandardActions(stage)
//	grove.Run(stage, grove.RunConfigFrom(stage.Config))
//
// Headless programs drive the stage directly and attach any [Renderer]:
//
//	stage := grove.NewStage(cfg, grove.WithRenderer(r))
//	for i := 0; i < 60; i++ {
//		stage.Frame(time.Second / 60)
//	}
//
// # Objects
//
// A [SceneObject] is a transform plus pointers to a shared [Geometry] and
// [Material]. Register objects with a [Registry] and address them by
// [Handle]. [Registry.Clone] copies only the transform, so thousands of
// clones cost one geometry.
//
// # Animation
//
// The [Director] owns every running [Tween]. A tween targets one transform
// [Path] such as "position.y", captures its start value on the first
// update, and writes the exact target value on the frame the stage clock
// reaches its duration. Removing an object
// cancels its tweens before Remove returns. [Director.ScatterClones] spawns
// many clones around the camera and settles each with a falling tween.
//
// # Input
//
// The [Dispatcher] merges held keys (0.1 units per frame) and on-screen
// button holds (0.01 units every 10ms) into [MovementCommand] values, which
// the [Stage] applies to the [Camera] each frame before tweens advance. Pointer
// orbiting goes through an [OrbitControl] such as [DampedOrbit].
//
// # Frame order
//
// [Stage.Frame] runs queued commands, input, camera movement, tweens, the
// orbit control and the renderer, always in that order.
//
// ECS integration (via a [Donburi] adapter) lives in grove/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package grove
