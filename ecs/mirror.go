package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// TransformData is the Donburi component mirrored from a live SceneObject.
type TransformData struct {
	Handle   grove.Handle
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Visible  bool
}

// Transform is the component type Mirror maintains.
var Transform = donburi.NewComponentType[TransformData]()

// transformQuery matches every mirrored entity.
var transformQuery = donburi.NewQuery(filter.Contains(Transform))

// Mirror keeps one entity per live registry handle.
type Mirror struct {
	world    donburi.World
	entities map[grove.Handle]donburi.Entity
}

// NewMirror creates an empty mirror writing into world.
func NewMirror(world donburi.World) *Mirror {
	return &Mirror{world: world, entities: make(map[grove.Handle]donburi.Entity)}
}

// Sync creates entities for new handles, copies every live transform and
// removes entities whose handle is no longer live.
func (m *Mirror) Sync(reg *grove.Registry) {
	reg.Each(func(obj *grove.SceneObject) {
		h := obj.Handle()
		e, ok := m.entities[h]
		if !ok || !m.world.Valid(e) {
			e = m.world.Create(Transform)
			m.entities[h] = e
		}
		Transform.SetValue(m.world.Entry(e), TransformData{
			Handle:   h,
			Name:     obj.Name,
			Position: obj.Position,
			Rotation: obj.Rotation,
			Scale:    obj.Scale,
			Visible:  obj.Visible,
		})
	})
	for h, e := range m.entities {
		if !reg.Contains(h) {
			if m.world.Valid(e) {
				m.world.Remove(e)
			}
			delete(m.entities, h)
		}
	}
}

// Entity returns the entity mirroring h.
func (m *Mirror) Entity(h grove.Handle) (donburi.Entity, bool) {
	e, ok := m.entities[h]
	return e, ok
}

// Len returns the number of mirrored handles.
func (m *Mirror) Len() int {
	return len(m.entities)
}

// Count returns the number of entities in world carrying Transform.
func Count(world donburi.World) int {
	return transformQuery.Count(world)
}

// Each calls fn with every mirrored transform in world.
func Each(world donburi.World, fn func(*TransformData)) {
	transformQuery.Each(world, func(entry *donburi.Entry) {
		fn(Transform.Get(entry))
	})
}
