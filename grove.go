package grove

import (
	"errors"
	"image/color"
	"math"
)

// ErrNotFound is returned when a Handle does not refer to a live SceneObject.
var ErrNotFound = errors.New("grove: object not found")

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to an 8-bit premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Range is a general-purpose min/max range. Used for jittered durations and
// sampler bounds.
type Range struct {
	Min, Max float64
}

// Lerp returns Min + (Max-Min)*t.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Direction is one of the six axis-aligned camera movement directions.
type Direction uint8

const (
	DirUp    Direction = iota // toward -Z
	DirDown                   // toward +Z
	DirLeft                   // toward -X
	DirRight                  // toward +X
	DirRaise                  // toward +Y
	DirSink                   // toward -Y

	numDirections
)

var directionNames = [numDirections]string{"up", "down", "left", "right", "raise", "sink"}

// String returns the lowercase direction name, or "unknown".
func (d Direction) String() string {
	if d >= numDirections {
		return "unknown"
	}
	return directionNames[d]
}

// Valid reports whether d is one of the six known directions.
func (d Direction) Valid() bool {
	return d < numDirections
}

// ParseDirection maps a direction name back to its Direction.
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return 0, false
}

// EventType identifies a registry or animation lifecycle event.
type EventType uint8

const (
	EventObjectRegistered EventType = iota // object added with Register
	EventObjectCloned                      // object added with Clone
	EventObjectRemoved                     // object removed, handle invalidated
	EventTweenCompleted                    // tween reached its target
	EventTweenCanceled                     // tween dropped before completion
)

// EntityStore is the interface for optional ECS integration.
// When set on a Registry, lifecycle events are forwarded to it.
type EntityStore interface {
	EmitEvent(event ObjectEvent)
}

// ObjectEvent carries lifecycle data for the ECS bridge.
type ObjectEvent struct {
	Type   EventType
	Handle Handle
	// Source is the cloned-from handle for EventObjectCloned.
	Source Handle
	// Path is set for tween events.
	Path Path
}
