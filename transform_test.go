package grove

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

// --- Matrix ---

func TestMatrixIdentity(t *testing.T) {
	o := NewObject("test", nil, nil)
	got := o.Matrix()
	if !got.ApproxEqual(mgl64.Ident4()) {
		t.Errorf("identity = %v", got)
	}
}

func TestMatrixTranslation(t *testing.T) {
	o := NewObject("test", nil, nil)
	o.Position = mgl64.Vec3{10, 20, 30}
	p := o.Matrix().Mul4x1(mgl64.Vec4{1, 1, 1, 1}).Vec3()
	assertVec(t, "translated", p, mgl64.Vec3{11, 21, 31})
}

func TestMatrixScale(t *testing.T) {
	o := NewObject("test", nil, nil)
	o.Scale = mgl64.Vec3{2, 3, 4}
	p := o.Matrix().Mul4x1(mgl64.Vec4{1, 1, 1, 1}).Vec3()
	assertVec(t, "scaled", p, mgl64.Vec3{2, 3, 4})
}

func TestMatrixRotationY90(t *testing.T) {
	o := NewObject("test", nil, nil)
	o.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}
	// +X rotates onto -Z around +Y.
	p := o.Matrix().Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	assertVec(t, "rotY90", p, mgl64.Vec3{0, 0, -1})
}

func TestMatrixOrderScaleRotateTranslate(t *testing.T) {
	o := NewObject("test", nil, nil)
	o.Position = mgl64.Vec3{5, 0, 0}
	o.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}
	o.Scale = mgl64.Vec3{2, 2, 2}
	// (1,0,0) → scale (2,0,0) → rotZ90 (0,2,0) → translate (5,2,0)
	p := o.Matrix().Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	assertVec(t, "srt", p, mgl64.Vec3{5, 2, 0})
}

// --- WorldVertices ---

func TestWorldVertices(t *testing.T) {
	g := NewGeometry("tri", []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil)
	o := NewObject("tri", g, nil)
	o.Position = mgl64.Vec3{0, 0, -2}

	got := o.WorldVertices(nil)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	assertVec(t, "v0", got[0], mgl64.Vec3{0, 0, -2})
	assertVec(t, "v1", got[1], mgl64.Vec3{1, 0, -2})
	assertVec(t, "v2", got[2], mgl64.Vec3{0, 1, -2})
}

func TestWorldVerticesAppends(t *testing.T) {
	g := NewGeometry("tri", []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil)
	o := NewObject("tri", g, nil)
	dst := []mgl64.Vec3{{9, 9, 9}}
	dst = o.WorldVertices(dst)
	if len(dst) != 4 || dst[0] != (mgl64.Vec3{9, 9, 9}) {
		t.Errorf("WorldVertices did not append: %v", dst)
	}
}

func TestWorldVerticesNoGeometry(t *testing.T) {
	o := NewObject("empty", nil, nil)
	if got := o.WorldVertices(nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
