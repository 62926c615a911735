package grove

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchScatter creates a registry with one triangle soup and n scattered
// clones of it, each with a pending settle tween.
func setupBenchScatter(n int) (*Registry, *Director) {
	reg := NewRegistry()
	d := NewDirector(reg)
	rng := rand.New(rand.NewPCG(1, 2))
	d.Settle.Rand = rng
	d.Settle.Duration = Range{Min: 1000, Max: 1000} // never completes during a benchmark
	h := reg.Register(NewObject("soup", NewTriangleSoup(60, 4, rng), nil))
	d.ScatterClones(h, n, BoxSampler{Offset: mgl64.Vec3{0, 0, -10}, Extent: mgl64.Vec3{10, 2, 10}, Rand: rng})
	return reg, d
}

// --- Scatter ---

func BenchmarkScatterClones_1000(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	geom := NewTriangleSoup(60, 4, rng)
	sampler := BoxSampler{Extent: mgl64.Vec3{10, 2, 10}, Rand: rng}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		reg := NewRegistry()
		d := NewDirector(reg)
		h := reg.Register(NewObject("soup", geom, nil))
		d.ScatterClones(h, 1000, sampler)
	}
}

// --- Tweens ---

func BenchmarkDirectorUpdate_1000Tweens(b *testing.B) {
	_, d := setupBenchScatter(1000)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Update(16 * time.Millisecond)
	}
}

func BenchmarkDirectorUpdate_10000Tweens(b *testing.B) {
	_, d := setupBenchScatter(10000)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Update(16 * time.Millisecond)
	}
}

// --- Input ---

func BenchmarkDispatcherPoll(b *testing.B) {
	d := NewDispatcher()
	d.KeyDown(ebiten.KeyW)
	d.KeyDown(ebiten.KeyD)
	d.PressButton(DirRaise, 0)
	now := time.Duration(0)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		now += 16 * time.Millisecond
		ApplyMovement(d.Poll(now))
	}
}

// --- Projection ---

func BenchmarkDrawListBuild_1000Objects(b *testing.B) {
	reg, _ := setupBenchScatter(1000)
	cam := NewCamera(16.0 / 9)
	cam.Position = mgl64.Vec3{0, 1, 5}
	var l DrawList
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Build(reg, cam, 1280, 720)
	}
}

func BenchmarkDrawListBuild_SolidSort(b *testing.B) {
	reg := NewRegistry()
	geom := NewSphere(1, 32, 16)
	mat := &Material{Color: ColorWhite}
	for i := 0; i < 100; i++ {
		o := NewObject("s", geom, mat)
		o.Position = mgl64.Vec3{float64(i%10) - 5, 0, -float64(i / 10)}
		reg.Register(o)
	}
	cam := NewCamera(16.0 / 9)
	cam.Position = mgl64.Vec3{0, 2, 8}
	var l DrawList
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Build(reg, cam, 1280, 720)
	}
}

// --- Frame ---

func BenchmarkStageFrame_Rain(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Scene.Seed = 1
	s := NewStage(cfg, WithRenderer(NewEbitenRenderer()))
	s.PopulateDemo()
	StandardActions(s)
	s.Director.Settle.Duration = Range{Min: 1000, Max: 1000}
	s.Trigger(ActionRain)
	s.Frame(frame16)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Frame(frame16)
	}
}
