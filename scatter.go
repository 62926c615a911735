package grove

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// PositionSampler picks a spawn position relative to a reference point.
type PositionSampler interface {
	Sample(ref mgl64.Vec3) mgl64.Vec3
}

// SamplerFunc adapts a function to PositionSampler.
type SamplerFunc func(ref mgl64.Vec3) mgl64.Vec3

// Sample calls f(ref).
func (f SamplerFunc) Sample(ref mgl64.Vec3) mgl64.Vec3 {
	return f(ref)
}

// BoxSampler samples uniformly inside the box ref+Offset ± Extent.
type BoxSampler struct {
	Offset mgl64.Vec3
	Extent mgl64.Vec3
	Rand   *rand.Rand
}

// Sample returns a uniformly random point inside the box around ref.
func (s BoxSampler) Sample(ref mgl64.Vec3) mgl64.Vec3 {
	c := ref.Add(s.Offset)
	var p mgl64.Vec3
	for k := 0; k < 3; k++ {
		p[k] = c[k] + (s.float()*2-1)*s.Extent[k]
	}
	return p
}

// Contains reports whether p lies inside the box around ref, edges included.
func (s BoxSampler) Contains(ref, p mgl64.Vec3) bool {
	c := ref.Add(s.Offset)
	for k := 0; k < 3; k++ {
		if p[k] < c[k]-s.Extent[k] || p[k] > c[k]+s.Extent[k] {
			return false
		}
	}
	return true
}

func (s BoxSampler) float() float64 {
	if s.Rand != nil {
		return s.Rand.Float64()
	}
	return rand.Float64()
}

// SettleConfig describes the falling tween every scattered clone receives:
// position.y moves down by FallDistance over a duration drawn from Duration,
// in seconds.
type SettleConfig struct {
	FallDistance float64
	Duration     Range
	Easing       ease.TweenFunc
	Rand         *rand.Rand
}

// DefaultSettleConfig returns a short bouncing drop.
func DefaultSettleConfig() SettleConfig {
	return SettleConfig{
		FallDistance: 5,
		Duration:     Range{Min: 1, Max: 3},
		Easing:       ease.OutBounce,
	}
}

func (c SettleConfig) duration() time.Duration {
	var t float64
	if c.Rand != nil {
		t = c.Rand.Float64()
	} else {
		t = rand.Float64()
	}
	return time.Duration(c.Duration.Lerp(t) * float64(time.Second))
}

// ScatterClones creates count clones of the object behind source, places each
// at sampler.Sample(reference) and schedules a settle tween for it. Clones
// share the source's geometry and material, so spawning is O(count) in
// transforms only. Returns nil if source is not live.
func (d *Director) ScatterClones(source Handle, count int, sampler PositionSampler) []Handle {
	if !d.reg.Contains(source) || count <= 0 {
		return nil
	}
	var ref mgl64.Vec3
	if d.Reference != nil {
		ref = d.Reference()
	}

	handles := make([]Handle, 0, count)
	for i := 0; i < count; i++ {
		h, err := d.reg.Clone(source)
		if err != nil {
			break
		}
		obj, _ := d.reg.Get(h)
		obj.Position = sampler.Sample(ref)
		handles = append(handles, h)
		d.TweenValue(h, PositionY, obj.Position[1]-d.Settle.FallDistance, d.Settle.duration(), d.Settle.Easing)
	}
	return handles
}

// Multiply clones every object live at call time once, offsetting each clone
// from its source by sampler.Sample of the zero vector. Returns the new handles.
func (d *Director) Multiply(sampler PositionSampler) []Handle {
	sources := d.reg.Handles()
	handles := make([]Handle, 0, len(sources))
	for _, src := range sources {
		h, err := d.reg.Clone(src)
		if err != nil {
			continue
		}
		obj, _ := d.reg.Get(h)
		obj.Position = obj.Position.Add(sampler.Sample(mgl64.Vec3{}))
		handles = append(handles, h)
	}
	return handles
}
