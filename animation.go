package grove

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenState is the lifecycle state of a Tween.
type TweenState uint8

const (
	TweenPending   TweenState = iota // registered, not yet ticked
	TweenActive                      // interpolating
	TweenCompleted                   // reached its target; final value written exactly
	TweenCanceled                    // target removed or Cancel called; never writes again
)

func (s TweenState) String() string {
	switch s {
	case TweenPending:
		return "pending"
	case TweenActive:
		return "active"
	case TweenCompleted:
		return "completed"
	case TweenCanceled:
		return "canceled"
	}
	return "unknown"
}

// Tween animates one transform property of one object toward a target value.
// The start value is captured on the first Director.Update after the tween is
// created, so tweens queued in the same frame chain naturally. Time is kept as
// a time.Duration so a tween finishes on the same frame the stage clock
// reaches its duration.
type Tween struct {
	Target   Handle
	Path     Path
	To       mgl64.Vec3
	Duration time.Duration

	// OnComplete runs once when the tween reaches its target. It is not
	// called for canceled tweens.
	OnComplete func()

	obj     *SceneObject
	curve   *gween.Tween // eases a 0..1 fraction
	from    mgl64.Vec3
	elapsed time.Duration
	state   TweenState
}

// State returns the tween's lifecycle state.
func (t *Tween) State() TweenState {
	return t.state
}

// Done reports whether the tween has completed or been canceled.
func (t *Tween) Done() bool {
	return t.state == TweenCompleted || t.state == TweenCanceled
}

// Elapsed returns how long the tween has been active.
func (t *Tween) Elapsed() time.Duration {
	return t.elapsed
}

// advance moves the tween forward by dt and writes the interpolated value.
// Returns true when the tween has finished.
func (t *Tween) advance(dt time.Duration) bool {
	v := t.obj.vec(t.Path.Property)
	if t.state == TweenPending {
		t.from = *v
		t.state = TweenActive
	}
	t.elapsed += dt

	if t.elapsed >= t.Duration {
		for _, k := range t.Path.components() {
			v[k] = t.To[k]
		}
		t.state = TweenCompleted
		return true
	}

	frac, _ := t.curve.Set(float32(t.elapsed.Seconds()))
	f := float64(frac)
	for _, k := range t.Path.components() {
		v[k] = t.from[k] + (t.To[k]-t.from[k])*f
	}
	return false
}

// spinner applies a fixed rotation increment every frame.
type spinner struct {
	target   Handle
	obj      *SceneObject
	perFrame mgl64.Vec3
}

// Director schedules and advances tweens against a Registry. There is no
// global animation manager; the owner calls Update once per frame.
type Director struct {
	reg    *Registry
	active []*Tween
	spins  []spinner

	// Reference returns the point scatter offsets are sampled around,
	// typically the camera position. Nil means the origin.
	Reference func() mgl64.Vec3
	// Settle configures the tween given to every scattered clone.
	Settle SettleConfig

	updating bool
	stale    bool // canceled tweens waiting to be compacted

	// rotation components under a running tween, per object; spins skip them
	tweening map[Handle][3]bool
}

// NewDirector creates a Director bound to reg. Removing an object from reg
// cancels its tweens and spinners immediately.
func NewDirector(reg *Registry) *Director {
	d := &Director{
		reg:      reg,
		Settle:   DefaultSettleConfig(),
		tweening: make(map[Handle][3]bool),
	}
	reg.OnRemove(d.cancelTarget)
	return d
}

// Tween schedules an animation of path on the object behind h toward to over
// duration. For a single-axis path only that component of to is used.
// Returns nil without scheduling anything if h is not live.
func (d *Director) Tween(h Handle, path Path, to mgl64.Vec3, duration time.Duration, fn ease.TweenFunc) *Tween {
	obj, err := d.reg.Get(h)
	if err != nil {
		return nil
	}
	if fn == nil {
		fn = ease.Linear
	}
	t := &Tween{
		Target:   h,
		Path:     path,
		To:       to,
		Duration: duration,
		obj:      obj,
		curve:    gween.New(0, 1, float32(duration.Seconds()), fn),
	}
	d.active = append(d.active, t)
	return t
}

// TweenValue is Tween for a scalar target. For a whole-vector path the value
// is applied to all three components.
func (d *Director) TweenValue(h Handle, path Path, to float64, duration time.Duration, fn ease.TweenFunc) *Tween {
	return d.Tween(h, path, mgl64.Vec3{to, to, to}, duration, fn)
}

// TweenAll schedules one tween per object live at call time. valueFn and
// durationFn receive each object and may jitter per object. Objects registered
// afterwards are not affected.
func (d *Director) TweenAll(path Path, valueFn func(*SceneObject) mgl64.Vec3, durationFn func(*SceneObject) time.Duration, fn ease.TweenFunc) []*Tween {
	tweens := make([]*Tween, 0, d.reg.Len())
	for _, h := range d.reg.Handles() {
		obj, err := d.reg.Get(h)
		if err != nil {
			continue
		}
		if t := d.Tween(h, path, valueFn(obj), durationFn(obj), fn); t != nil {
			tweens = append(tweens, t)
		}
	}
	return tweens
}

// Spin rotates the object behind h by perFrame radians on every Update,
// replacing any previous spin on the same object. Rotation components driven
// by an unfinished tween are held until the tween ends. Ignored if h is not
// live.
func (d *Director) Spin(h Handle, perFrame mgl64.Vec3) {
	obj, err := d.reg.Get(h)
	if err != nil {
		return
	}
	for i := range d.spins {
		if d.spins[i].target == h {
			d.spins[i].perFrame = perFrame
			return
		}
	}
	d.spins = append(d.spins, spinner{target: h, obj: obj, perFrame: perFrame})
}

// StopSpin stops a spin started with Spin.
func (d *Director) StopSpin(h Handle) {
	for i := range d.spins {
		if d.spins[i].target == h {
			d.spins = append(d.spins[:i], d.spins[i+1:]...)
			return
		}
	}
}

// Cancel stops t without applying further values. No-op if t already finished.
func (d *Director) Cancel(t *Tween) {
	if t == nil || t.Done() {
		return
	}
	d.cancel(t)
	d.compact()
}

// Active returns the number of tweens that are pending or active.
func (d *Director) Active() int {
	n := 0
	for _, t := range d.active {
		if !t.Done() {
			n++
		}
	}
	return n
}

// TweensFor returns the unfinished tweens targeting h.
func (d *Director) TweensFor(h Handle) []*Tween {
	var out []*Tween
	for _, t := range d.active {
		if t.Target == h && !t.Done() {
			out = append(out, t)
		}
	}
	return out
}

// Update applies spins, then advances every tween by dt. Tweens created
// during Update (e.g. from OnComplete) start on the next call.
func (d *Director) Update(dt time.Duration) {
	d.applySpins()

	d.updating = true
	n := len(d.active)
	for i := 0; i < n; i++ {
		t := d.active[i]
		if t.Done() {
			continue
		}
		if t.obj.IsRemoved() {
			d.cancel(t)
			continue
		}
		if t.advance(dt) {
			d.stale = true
			d.reg.emit(ObjectEvent{Type: EventTweenCompleted, Handle: t.Target, Path: t.Path})
			if t.OnComplete != nil {
				t.OnComplete()
			}
		}
	}
	d.updating = false
	d.compact()
}

func (d *Director) applySpins() {
	if len(d.spins) == 0 {
		return
	}
	clear(d.tweening)
	for _, t := range d.active {
		if t.Done() || t.Path.Property != PropRotation {
			continue
		}
		held := d.tweening[t.Target]
		for _, k := range t.Path.components() {
			held[k] = true
		}
		d.tweening[t.Target] = held
	}
	for i := range d.spins {
		s := &d.spins[i]
		held := d.tweening[s.target]
		for k := 0; k < 3; k++ {
			if !held[k] {
				s.obj.Rotation[k] += s.perFrame[k]
			}
		}
	}
}

// cancelTarget is the registry remove hook.
func (d *Director) cancelTarget(h Handle) {
	for _, t := range d.active {
		if t.Target == h && !t.Done() {
			d.cancel(t)
		}
	}
	d.StopSpin(h)
	d.compact()
}

func (d *Director) cancel(t *Tween) {
	t.state = TweenCanceled
	d.stale = true
	d.reg.emit(ObjectEvent{Type: EventTweenCanceled, Handle: t.Target, Path: t.Path})
}

// compact drops finished tweens from the active set. Deferred while Update is
// iterating.
func (d *Director) compact() {
	if d.updating || !d.stale {
		return
	}
	kept := d.active[:0]
	for _, t := range d.active {
		if !t.Done() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(d.active); i++ {
		d.active[i] = nil
	}
	d.active = kept
	d.stale = false
}
