package grove

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func TestBoxSamplerBounds(t *testing.T) {
	s := BoxSampler{
		Offset: mgl64.Vec3{0, 8, -5},
		Extent: mgl64.Vec3{10, 2, 10},
		Rand:   rand.New(rand.NewPCG(1, 1)),
	}
	ref := mgl64.Vec3{3, 1, 0}
	for i := 0; i < 1000; i++ {
		p := s.Sample(ref)
		if !s.Contains(ref, p) {
			t.Fatalf("sample %v outside box", p)
		}
	}
	if s.Contains(ref, mgl64.Vec3{3, 1, 0}) {
		t.Error("reference point inside offset box")
	}
}

func TestBoxSamplerZeroExtent(t *testing.T) {
	s := BoxSampler{Offset: mgl64.Vec3{1, 2, 3}}
	if p := s.Sample(mgl64.Vec3{1, 1, 1}); p != (mgl64.Vec3{2, 3, 4}) {
		t.Errorf("Sample = %v, want (2,3,4)", p)
	}
}

func TestSettleDurationInRange(t *testing.T) {
	c := SettleConfig{Duration: Range{Min: 1, Max: 3}, Rand: rand.New(rand.NewPCG(2, 2))}
	for i := 0; i < 500; i++ {
		if d := c.duration(); d < 1 || d > 3 {
			t.Fatalf("duration %v outside [1, 3]", d)
		}
	}
}

func TestScatterClonesShareGeometry(t *testing.T) {
	reg, d := newTestDirector()
	rng := rand.New(rand.NewPCG(5, 6))
	d.Settle.Rand = rng
	ref := mgl64.Vec3{0, 1, 0}
	d.Reference = func() mgl64.Vec3 { return ref }

	src := NewObject("src", NewBox(1, 1, 1), nil)
	h := reg.Register(src)
	sampler := BoxSampler{Offset: mgl64.Vec3{0, 8, -5}, Extent: mgl64.Vec3{10, 2, 10}, Rand: rng}

	handles := d.ScatterClones(h, 1000, sampler)
	if len(handles) != 1000 {
		t.Fatalf("clones = %d, want 1000", len(handles))
	}
	if reg.Len() != 1001 {
		t.Errorf("registry = %d, want 1001", reg.Len())
	}
	if d.Active() != 1000 {
		t.Errorf("tweens = %d, want 1000", d.Active())
	}
	for _, ch := range handles {
		obj, err := reg.Get(ch)
		if err != nil {
			t.Fatal(err)
		}
		if obj.Geometry != src.Geometry || obj.Material != src.Material {
			t.Fatal("clone does not share geometry and material")
		}
		if !sampler.Contains(ref, obj.Position) {
			t.Fatalf("clone at %v outside sampler box", obj.Position)
		}
		if tw := d.TweensFor(ch); len(tw) != 1 || tw[0].Path != PositionY {
			t.Fatalf("clone tweens = %v", tw)
		}
	}
}

func TestScatterClonesSettle(t *testing.T) {
	reg, d := newTestDirector()
	d.Settle = SettleConfig{FallDistance: 4, Duration: Range{Min: 0.5, Max: 0.5}, Easing: ease.OutBounce}
	h := reg.Register(NewObject("src", nil, nil))
	sampler := SamplerFunc(func(mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{1, 10, 2} })

	handles := d.ScatterClones(h, 3, sampler)
	d.Update(500 * time.Millisecond)
	for _, ch := range handles {
		obj, _ := reg.Get(ch)
		if obj.Position != (mgl64.Vec3{1, 6, 2}) {
			t.Errorf("settled at %v, want (1,6,2)", obj.Position)
		}
	}
	if d.Active() != 0 {
		t.Errorf("tweens = %d after settle", d.Active())
	}
}

func TestScatterClonesInvalidSource(t *testing.T) {
	_, d := newTestDirector()
	if hs := d.ScatterClones(77, 10, BoxSampler{}); hs != nil {
		t.Errorf("handles = %v, want nil", hs)
	}
}

func TestScatterClonesZeroCount(t *testing.T) {
	reg, d := newTestDirector()
	h := reg.Register(NewObject("src", nil, nil))
	if hs := d.ScatterClones(h, 0, BoxSampler{}); hs != nil {
		t.Errorf("handles = %v", hs)
	}
	if reg.Len() != 1 {
		t.Errorf("registry = %d", reg.Len())
	}
}

func TestScatterClonesRemovedMidFlight(t *testing.T) {
	reg, d := newTestDirector()
	h := reg.Register(NewObject("src", nil, nil))
	handles := d.ScatterClones(h, 10, BoxSampler{Extent: mgl64.Vec3{1, 1, 1}})
	for _, ch := range handles[:5] {
		reg.Remove(ch)
	}
	if d.Active() != 5 {
		t.Errorf("tweens = %d, want 5", d.Active())
	}
}

func TestMultiplyClonesEachLiveObject(t *testing.T) {
	reg, d := newTestDirector()
	a := NewObject("a", nil, nil)
	a.Position = mgl64.Vec3{1, 0, 0}
	reg.Register(a)
	reg.Register(NewObject("b", nil, nil))

	off := SamplerFunc(func(ref mgl64.Vec3) mgl64.Vec3 { return ref.Add(mgl64.Vec3{0, 0, 2}) })
	hs := d.Multiply(off)
	if len(hs) != 2 || reg.Len() != 4 {
		t.Fatalf("clones = %d, registry = %d", len(hs), reg.Len())
	}
	first, _ := reg.Get(hs[0])
	if first.Position != (mgl64.Vec3{1, 0, 2}) {
		t.Errorf("clone of a at %v, want (1,0,2)", first.Position)
	}
	// A second Multiply doubles again.
	d.Multiply(off)
	if reg.Len() != 8 {
		t.Errorf("registry = %d, want 8", reg.Len())
	}
}
