package grove

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// moveAnim eases the camera position from from to to. Translations applied
// while it runs shift both ends, so direct movement is kept.
type moveAnim struct {
	from, to mgl64.Vec3
	curve    *gween.Tween // eases a 0..1 fraction
	duration time.Duration
	elapsed  time.Duration
}

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64

	move *moveAnim
}

// NewCamera creates a camera with a 75° field of view looking at the origin.
func NewCamera(aspect float64) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		Up:     mgl64.Vec3{0, 1, 0},
		FOV:    75,
		Aspect: aspect,
		Near:   0.1,
		Far:    100,
	}
}

// Resize recomputes the aspect ratio from a viewport size. Zero or negative
// sizes are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// Translate moves the camera without moving its target. A running MoveTo
// keeps the offset.
func (c *Camera) Translate(delta mgl64.Vec3) {
	c.Position = c.Position.Add(delta)
	if c.move != nil {
		c.move.from = c.move.from.Add(delta)
		c.move.to = c.move.to.Add(delta)
	}
}

// MoveTo animates the camera position to pos over duration.
func (c *Camera) MoveTo(pos mgl64.Vec3, duration time.Duration, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.move = &moveAnim{
		from:     c.Position,
		to:       pos,
		curve:    gween.New(0, 1, float32(duration.Seconds()), easeFn),
		duration: duration,
	}
}

// Moving reports whether a MoveTo animation is running.
func (c *Camera) Moving() bool {
	return c.move != nil
}

// update advances a running MoveTo. Called from Stage.Frame.
func (c *Camera) update(dt time.Duration) {
	m := c.move
	if m == nil {
		return
	}
	m.elapsed += dt
	if m.elapsed >= m.duration {
		c.Position = m.to
		c.move = nil
		return
	}
	frac, _ := m.curve.Set(float32(m.elapsed.Seconds()))
	c.Position = m.from.Add(m.to.Sub(m.from).Mul(float64(frac)))
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	up := c.Up
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	target := c.Target
	dir := target.Sub(c.Position)
	if dir.Len() < 1e-12 {
		dir = mgl64.Vec3{0, 0, -1}
		target = c.Position.Add(dir)
	}
	// Looking straight along up: pick a horizon that keeps LookAt defined.
	if up.Cross(dir).Len() < 1e-9 {
		up = mgl64.Vec3{0, 0, -1}
	}
	return mgl64.LookAtV(c.Position, target, up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns ProjectionMatrix * ViewMatrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Project maps a world-space point to pixel coordinates in a width×height
// viewport, origin top-left. ok is false for points behind the camera.
func Project(vp mgl64.Mat4, p mgl64.Vec3, width, height float64) (x, y float64, ok bool) {
	return toScreen(vp.Mul4x1(p.Vec4(1)), width, height)
}

// --- Orbit control ---

// OrbitControl is a pointer-driven camera rig updated once per frame, after
// direct translation has been applied.
type OrbitControl interface {
	Update(cam *Camera)
}

const orbitEPS = 1e-6

// DampedOrbit orbits and zooms the camera around its Target. Pointer deltas
// accumulate into a spherical delta that decays by DampingFactor every frame
// when damping is enabled.
type DampedOrbit struct {
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64
	// MinPolar and MaxPolar clamp the angle from +Y, in radians.
	MinPolar float64
	MaxPolar float64

	// ViewportHeight converts pointer pixels to angles. Zero means 1.
	ViewportHeight float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
}

// NewDampedOrbit returns an orbit rig with damping enabled at factor 0.05.
func NewDampedOrbit() *DampedOrbit {
	return &DampedOrbit{
		EnableDamping: true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MaxDistance:   math.Inf(1),
		MaxPolar:      math.Pi,
		scale:         1,
	}
}

// Rotate feeds a pointer drag of (dx, dy) pixels.
func (o *DampedOrbit) Rotate(dx, dy float64) {
	h := o.ViewportHeight
	if h <= 0 {
		h = 1
	}
	o.deltaTheta -= 2 * math.Pi * dx / h * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * dy / h * o.RotateSpeed
}

// Zoom feeds wheel steps; positive values move the camera toward the target.
func (o *DampedOrbit) Zoom(steps float64) {
	if steps == 0 {
		return
	}
	dolly := math.Pow(0.95, o.ZoomSpeed*math.Abs(steps))
	if o.scale == 0 {
		o.scale = 1
	}
	if steps > 0 {
		o.scale *= dolly
	} else {
		o.scale /= dolly
	}
}

// Settled reports whether no rotation remains to be applied.
func (o *DampedOrbit) Settled() bool {
	return math.Abs(o.deltaTheta) < orbitEPS && math.Abs(o.deltaPhi) < orbitEPS && (o.scale == 0 || o.scale == 1)
}

// Update re-derives the camera's spherical coordinates around Target from its
// current position, applies the pending rotation and zoom, and writes the
// position back.
func (o *DampedOrbit) Update(cam *Camera) {
	offset := cam.Position.Sub(cam.Target)
	radius := offset.Len()
	if o.Settled() && radius >= o.MinDistance && radius <= o.MaxDistance {
		o.deltaTheta, o.deltaPhi = 0, 0
		return
	}
	var theta, phi float64
	if radius > 0 {
		theta = math.Atan2(offset[0], offset[2])
		phi = math.Acos(math.Max(-1, math.Min(1, offset[1]/radius)))
	}

	factor := 1.0
	if o.EnableDamping {
		factor = o.DampingFactor
	}
	theta += o.deltaTheta * factor
	phi += o.deltaPhi * factor
	phi = math.Max(o.MinPolar, math.Min(o.MaxPolar, phi))
	phi = math.Max(orbitEPS, math.Min(math.Pi-orbitEPS, phi))

	if o.scale != 0 {
		radius *= o.scale
	}
	radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, radius))

	sinPhi := math.Sin(phi)
	offset = mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
	cam.Position = cam.Target.Add(offset)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
	}
	o.scale = 1
}
