package grove

import "github.com/go-gl/mathgl/mgl64"

// Matrix returns the object's local-to-world matrix.
//
// Composition order matches the usual Euler XYZ convention:
//
//	Translate(Position) * RotateX * RotateY * RotateZ * Scale
func (o *SceneObject) Matrix() mgl64.Mat4 {
	return composeMatrix(o.Position, o.Rotation, o.Scale)
}

func composeMatrix(pos, rot, scale mgl64.Vec3) mgl64.Mat4 {
	m := mgl64.Translate3D(pos[0], pos[1], pos[2])
	if rot[0] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(rot[0]))
	}
	if rot[1] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(rot[1]))
	}
	if rot[2] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(rot[2]))
	}
	return m.Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
}

// WorldVertices appends the object's geometry vertices, transformed to world
// space, to dst and returns the extended slice.
func (o *SceneObject) WorldVertices(dst []mgl64.Vec3) []mgl64.Vec3 {
	if o.Geometry == nil {
		return dst
	}
	m := o.Matrix()
	for _, v := range o.Geometry.Vertices {
		w := m.Mul4x1(v.Vec4(1))
		dst = append(dst, w.Vec3())
	}
	return dst
}
