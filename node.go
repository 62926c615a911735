package grove

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
)

// Handle is an opaque reference to a registered SceneObject. The zero Handle
// is never issued and never resolves.
type Handle uint32

// Material is the shared appearance of one or more objects. Clones point at
// the same Material; mutate it to recolor every object that uses it.
type Material struct {
	Color     Color
	Wireframe bool
	// Texture is filled in by the texture loader on success. Renderers that
	// cannot sample textures ignore it.
	Texture image.Image
}

// SceneObject is a renderable object: a transform plus references to shared
// geometry and material. A single flat struct is used for all object kinds.
type SceneObject struct {
	Name string

	// Transform (local, Euler XYZ rotation in radians)
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3

	Visible bool

	// Shared, never copied by Clone.
	Geometry *Geometry
	Material *Material

	// Metadata
	UserData any

	handle  Handle
	removed bool
}

// NewObject creates an unregistered object with unit scale at the origin.
// A nil material is replaced with a white wireframe material.
func NewObject(name string, geom *Geometry, mat *Material) *SceneObject {
	if mat == nil {
		mat = &Material{Color: ColorWhite, Wireframe: true}
	}
	return &SceneObject{
		Name:     name,
		Scale:    mgl64.Vec3{1, 1, 1},
		Visible:  true,
		Geometry: geom,
		Material: mat,
	}
}

// Handle returns the object's registry handle, or 0 if it is not registered.
func (o *SceneObject) Handle() Handle {
	return o.handle
}

// IsRemoved reports whether the object has been removed from its registry.
func (o *SceneObject) IsRemoved() bool {
	return o.removed
}

// clone copies the transform and shares geometry/material. The copy has no
// handle until it is registered.
func (o *SceneObject) clone() *SceneObject {
	return &SceneObject{
		Name:     o.Name,
		Position: o.Position,
		Rotation: o.Rotation,
		Scale:    o.Scale,
		Visible:  o.Visible,
		Geometry: o.Geometry,
		Material: o.Material,
		UserData: o.UserData,
	}
}

// vec returns a pointer to the transform vector named by p.
func (o *SceneObject) vec(p Property) *mgl64.Vec3 {
	switch p {
	case PropPosition:
		return &o.Position
	case PropRotation:
		return &o.Rotation
	case PropScale:
		return &o.Scale
	}
	return nil
}
