package grove

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Segment is one projected wireframe edge in pixel coordinates.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Color          Color
}

// Triangle is one projected solid triangle in pixel coordinates. Depth is the
// mean clip-space w of its corners; larger is farther.
type Triangle struct {
	X, Y  [3]float64
	Depth float64
	Color Color
}

// DrawList is the renderer-independent result of projecting a registry
// through a camera. Wireframe materials produce Segments; solid materials
// produce Triangles sorted back to front.
type DrawList struct {
	Segments  []Segment
	Triangles []Triangle

	world []mgl64.Vec3
	clip  []mgl64.Vec4
}

// Reset empties the list, keeping its storage.
func (l *DrawList) Reset() {
	l.Segments = l.Segments[:0]
	l.Triangles = l.Triangles[:0]
}

// Build replaces the list contents with the visible objects of reg as seen by
// cam in a width×height viewport. Edges and triangles with a corner behind
// the camera are dropped.
func (l *DrawList) Build(reg *Registry, cam *Camera, width, height float64) {
	l.Reset()
	vp := cam.ViewProjection()
	reg.Each(func(obj *SceneObject) {
		if !obj.Visible || obj.Geometry == nil || len(obj.Geometry.Vertices) == 0 {
			return
		}
		l.world = obj.WorldVertices(l.world[:0])
		l.clip = l.clip[:0]
		for _, v := range l.world {
			l.clip = append(l.clip, vp.Mul4x1(v.Vec4(1)))
		}
		col := ColorWhite
		wire := true
		if obj.Material != nil {
			col = obj.Material.Color
			wire = obj.Material.Wireframe
		}
		if wire {
			l.appendEdges(obj.Geometry, col, width, height)
		} else {
			l.appendTriangles(obj.Geometry, col, width, height)
		}
	})
	sort.SliceStable(l.Triangles, func(i, j int) bool {
		return l.Triangles[i].Depth > l.Triangles[j].Depth
	})
}

func (l *DrawList) appendEdges(g *Geometry, col Color, w, h float64) {
	for _, e := range g.Edges() {
		x0, y0, ok0 := toScreen(l.clip[e[0]], w, h)
		x1, y1, ok1 := toScreen(l.clip[e[1]], w, h)
		if !ok0 || !ok1 {
			continue
		}
		l.Segments = append(l.Segments, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Color: col})
	}
}

func (l *DrawList) appendTriangles(g *Geometry, col Color, w, h float64) {
	for i := 0; i+2 < len(g.Indices); i += 3 {
		var t Triangle
		visible := true
		for k := 0; k < 3; k++ {
			c := l.clip[g.Indices[i+k]]
			x, y, ok := toScreen(c, w, h)
			if !ok {
				visible = false
				break
			}
			t.X[k], t.Y[k] = x, y
			t.Depth += c[3] / 3
		}
		if visible {
			t.Color = col
			l.Triangles = append(l.Triangles, t)
		}
	}
}

func toScreen(clip mgl64.Vec4, width, height float64) (x, y float64, ok bool) {
	if clip[3] <= 1e-9 {
		return 0, 0, false
	}
	x = (clip[0]/clip[3] + 1) * 0.5 * width
	y = (1 - clip[1]/clip[3]) * 0.5 * height
	return x, y, true
}
