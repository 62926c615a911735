package grove

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Names of the panel actions installed by StandardActions, in panel order.
const (
	ActionSpin     = "spin"
	ActionFlyAway  = "fly-away"
	ActionComeBack = "come-back"
	ActionMultiply = "multiply"
	ActionRain     = "rain"
	ActionDrop     = "drop"
	ActionRecenter = "recenter"
	ActionClear    = "clear"
)

// Action targets and timing.
const (
	FlyAwayZ        = -200
	FlyAwayDuration = 3 * time.Second
	SpinDuration    = time.Second
	RecenterTime    = time.Second
)

// PopulateDemo registers the point-cloud object: a triangle soup in a random
// palette color, spinning every frame. It becomes the stage's Primary.
func (s *Stage) PopulateDemo() Handle {
	sc := s.Config.Scene
	geom := NewTriangleSoup(sc.TriangleCount, sc.Spread, s.rng)
	obj := NewObject("triangles", geom, &Material{Color: RandomColor(s.rng), Wireframe: true})
	h := s.Registry.Register(obj)
	s.Director.Spin(h, vec3(sc.Spin))
	s.Primary = h
	s.SetHome(h, obj.Position)
	return h
}

// SetHome records where the come-back action returns h to.
func (s *Stage) SetHome(h Handle, pos mgl64.Vec3) {
	s.home[h] = pos
}

// Home returns the recorded home of h, or the origin.
func (s *Stage) Home(h Handle) mgl64.Vec3 {
	return s.home[h]
}

// StandardActions installs the demo panel: the scene actions plus live
// movement, orbit, camera and primary material fields.
func StandardActions(s *Stage) {
	p := s.Panel

	p.AddAction(ActionSpin, func() {
		obj, err := s.Registry.Get(s.Primary)
		if err != nil {
			return
		}
		s.Director.TweenValue(s.Primary, RotationY, obj.Rotation[1]+2*math.Pi, SpinDuration, ease.InOutQuad)
	})
	p.AddAction(ActionFlyAway, func() {
		s.Director.TweenValue(s.Primary, PositionZ, FlyAwayZ, FlyAwayDuration, ease.InOutCubic)
	})
	p.AddAction(ActionComeBack, func() {
		s.Director.Tween(s.Primary, Position, s.Home(s.Primary), FlyAwayDuration, ease.InOutCubic)
	})
	p.AddAction(ActionMultiply, func() {
		spread := s.Config.Scene.Spread
		hs := s.Director.Multiply(BoxSampler{Extent: mgl64.Vec3{spread, spread, spread}, Rand: s.rng})
		Logger().Info("multiply", "clones", len(hs), "objects", s.Registry.Len())
	})
	p.AddAction(ActionRain, func() {
		sc := s.Config.Scatter
		sampler := BoxSampler{Offset: vec3(sc.Offset), Extent: vec3(sc.Extent), Rand: s.rng}
		hs := s.Director.ScatterClones(s.Primary, sc.Count, sampler)
		Logger().Info("rain", "clones", len(hs), "objects", s.Registry.Len())
	})
	p.AddAction(ActionDrop, func() {
		floor := s.Config.Scatter.Floor
		settle := s.Director.Settle
		s.Director.TweenAll(PositionY,
			func(*SceneObject) mgl64.Vec3 { return mgl64.Vec3{floor, floor, floor} },
			func(*SceneObject) time.Duration { return settle.duration() },
			settle.Easing)
	})
	p.AddAction(ActionRecenter, func() {
		s.Camera.MoveTo(vec3(s.Config.Camera.Position), RecenterTime, ease.InOutQuad)
	})
	p.AddAction(ActionClear, func() {
		n := 0
		for _, h := range s.Registry.Handles() {
			if h != s.Primary && s.Registry.Remove(h) {
				delete(s.home, h)
				n++
			}
		}
		Logger().Info("clear", "removed", n)
	})

	p.AddNumber("button factor", &s.Input.ButtonFactor, 0, 10, 0.1)
	p.AddNumber("key factor", &s.Input.KeyFactor, 0, 10, 0.1)
	p.AddNumber("fov", &s.Camera.FOV, 10, 170, 1)
	if o, ok := s.Orbit.(*DampedOrbit); ok {
		p.AddBool("damping", &o.EnableDamping)
		p.AddNumber("damping factor", &o.DampingFactor, 0, 1, 0.01)
	}
	if obj, err := s.Registry.Get(s.Primary); err == nil {
		p.AddBool("visible", &obj.Visible)
		if obj.Material != nil {
			p.AddColor("color", &obj.Material.Color)
			p.AddBool("wireframe", &obj.Material.Wireframe)
		}
	}
}
