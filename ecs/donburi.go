package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ObjectEventType is the Donburi event type for grove lifecycle events.
var ObjectEventType = events.NewEventType[grove.ObjectEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are published to ObjectEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) grove.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event grove.ObjectEvent) {
	ObjectEventType.Publish(s.world, event)
}
