package grove

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed triangle list shared by every object that uses it.
// Vertices are in local space; every three Indices form one triangle.
type Geometry struct {
	Name     string
	Vertices []mgl64.Vec3
	Indices  []uint32

	edges      [][2]uint32 // cached unique edges for wireframe drawing
	edgesDirty bool
}

// NewGeometry creates a geometry from vertices and triangle indices. If
// indices is nil, vertices are taken as a non-indexed triangle list.
func NewGeometry(name string, vertices []mgl64.Vec3, indices []uint32) *Geometry {
	if indices == nil {
		indices = make([]uint32, len(vertices)-len(vertices)%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	return &Geometry{Name: name, Vertices: vertices, Indices: indices, edgesDirty: true}
}

// Invalidate marks cached derived data as stale. Call this after modifying
// Vertices or Indices.
func (g *Geometry) Invalidate() {
	g.edgesDirty = true
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Edges returns the unique triangle edges as index pairs. The returned slice
// MUST NOT be mutated by the caller.
func (g *Geometry) Edges() [][2]uint32 {
	if !g.edgesDirty && g.edges != nil {
		return g.edges
	}
	seen := make(map[[2]uint32]struct{}, len(g.Indices))
	g.edges = g.edges[:0]
	for i := 0; i+2 < len(g.Indices); i += 3 {
		tri := [3]uint32{g.Indices[i], g.Indices[i+1], g.Indices[i+2]}
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			g.edges = append(g.edges, key)
		}
	}
	g.edgesDirty = false
	return g.edges
}

// Bounds returns the local-space axis-aligned bounding box.
func (g *Geometry) Bounds() (lo, hi mgl64.Vec3) {
	if len(g.Vertices) == 0 {
		return
	}
	lo, hi = g.Vertices[0], g.Vertices[0]
	for _, v := range g.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], v[k])
			hi[k] = math.Max(hi[k], v[k])
		}
	}
	return
}

// --- Builders ---

// NewTriangleSoup creates count unconnected triangles whose vertex coordinates
// are uniformly random in (-spread/2, spread/2) on every axis.
func NewTriangleSoup(count int, spread float64, rng *rand.Rand) *Geometry {
	if count < 0 {
		count = 0
	}
	verts := make([]mgl64.Vec3, count*3)
	for i := range verts {
		verts[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
		}
	}
	return NewGeometry("soup", verts, nil)
}

// NewBox creates an axis-aligned box centered on the origin.
func NewBox(width, height, depth float64) *Geometry {
	x, y, z := width/2, height/2, depth/2
	verts := []mgl64.Vec3{
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}, // front
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, // back
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3, // front
		5, 4, 7, 5, 7, 6, // back
		4, 0, 3, 4, 3, 7, // left
		1, 5, 6, 1, 6, 2, // right
		3, 2, 6, 3, 6, 7, // top
		4, 5, 1, 4, 1, 0, // bottom
	}
	return NewGeometry("box", verts, indices)
}

// NewSphere creates a UV sphere. widthSegments is clamped to at least 3 and
// heightSegments to at least 2.
func NewSphere(radius float64, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	verts := make([]mgl64.Vec3, 0, (widthSegments+1)*(heightSegments+1))
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			verts = append(verts, mgl64.Vec3{
				-radius * math.Cos(phi) * math.Sin(theta),
				radius * math.Cos(theta),
				radius * math.Sin(phi) * math.Sin(theta),
			})
		}
	}

	row := uint32(widthSegments + 1)
	var indices []uint32
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			// Pole rows collapse to a single triangle.
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return NewGeometry("sphere", verts, indices)
}
