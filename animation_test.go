package grove

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func newTestDirector() (*Registry, *Director) {
	reg := NewRegistry()
	return reg, NewDirector(reg)
}

func TestTweenReachesExactTarget(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	o.Position = mgl64.Vec3{0.1, 0.2, 0.3}
	h := reg.Register(o)

	to := mgl64.Vec3{1.0 / 3, -2.0 / 7, 1e-7}
	tw := d.Tween(h, Position, to, time.Second, ease.OutBounce)

	// Steps that overshoot the duration.
	const step = 300 * time.Millisecond
	for _, dt := range []time.Duration{step, step, step, step} {
		d.Update(dt)
	}

	if tw.State() != TweenCompleted {
		t.Fatalf("state = %v, want completed", tw.State())
	}
	if o.Position != to {
		t.Errorf("position = %v, want exactly %v", o.Position, to)
	}
}

func TestTweenSingleAxisLeavesOthers(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	o.Position = mgl64.Vec3{1, 2, 3}
	h := reg.Register(o)

	d.TweenValue(h, PositionZ, -200, time.Second, nil)
	d.Update(500 * time.Millisecond)
	if o.Position[0] != 1 || o.Position[1] != 2 {
		t.Errorf("x,y = %v,%v, want 1,2", o.Position[0], o.Position[1])
	}
	assertNear(t, "z at half", o.Position[2], 3+(-200-3)*0.5)

	d.Update(500 * time.Millisecond)
	if o.Position != (mgl64.Vec3{1, 2, -200}) {
		t.Errorf("position = %v", o.Position)
	}
}

func TestTweenCapturesStartOnFirstUpdate(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	h := reg.Register(o)

	tw := d.TweenValue(h, PositionX, 10, time.Second, nil)
	if tw.State() != TweenPending {
		t.Fatalf("state = %v, want pending", tw.State())
	}
	o.Position[0] = 4 // moved after scheduling, before first update
	d.Update(500 * time.Millisecond)
	if tw.State() != TweenActive {
		t.Fatalf("state = %v, want active", tw.State())
	}
	assertNear(t, "x", o.Position[0], 7)
}

func TestTweenInvalidHandleReturnsNil(t *testing.T) {
	_, d := newTestDirector()
	if tw := d.TweenValue(99, PositionX, 1, time.Second, nil); tw != nil {
		t.Error("expected nil tween for unknown handle")
	}
	if d.Active() != 0 {
		t.Errorf("Active = %d, want 0", d.Active())
	}
}

func TestTweenOnCompleteCalledOnce(t *testing.T) {
	reg, d := newTestDirector()
	h := reg.Register(NewObject("a", nil, nil))
	calls := 0
	tw := d.TweenValue(h, Scale, 2, 500*time.Millisecond, nil)
	tw.OnComplete = func() { calls++ }

	for i := 0; i < 5; i++ {
		d.Update(250 * time.Millisecond)
	}
	if calls != 1 {
		t.Errorf("OnComplete calls = %d, want 1", calls)
	}
}

func TestTweenChainedFromOnComplete(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	h := reg.Register(o)

	first := d.TweenValue(h, PositionX, 1, 500*time.Millisecond, nil)
	var second *Tween
	first.OnComplete = func() {
		second = d.TweenValue(h, PositionX, 0, 500*time.Millisecond, nil)
	}

	d.Update(500 * time.Millisecond)
	if second == nil || second.State() != TweenPending {
		t.Fatal("chained tween not scheduled as pending")
	}
	d.Update(500 * time.Millisecond)
	if second.State() != TweenCompleted || o.Position[0] != 0 {
		t.Errorf("chained tween state %v, x %v", second.State(), o.Position[0])
	}
}

func TestRemoveCancelsTweens(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	h := reg.Register(o)

	tw := d.TweenValue(h, PositionY, 5, time.Second, nil)
	d.Update(250 * time.Millisecond)
	y := o.Position[1]

	reg.Remove(h)
	if tw.State() != TweenCanceled {
		t.Fatalf("state = %v, want canceled", tw.State())
	}
	if d.Active() != 0 {
		t.Errorf("Active = %d, want 0", d.Active())
	}
	d.Update(250 * time.Millisecond)
	if o.Position[1] != y {
		t.Errorf("canceled tween wrote y = %v (was %v)", o.Position[1], y)
	}
}

func TestRemoveFromOnCompleteCancelsOthers(t *testing.T) {
	reg, d := newTestDirector()
	a := reg.Register(NewObject("a", nil, nil))
	bObj := NewObject("b", nil, nil)
	b := reg.Register(bObj)

	first := d.TweenValue(a, PositionX, 1, 100*time.Millisecond, nil)
	other := d.TweenValue(b, PositionX, 1, time.Second, nil)
	first.OnComplete = func() { reg.Remove(b) }

	d.Update(200 * time.Millisecond)
	if other.State() != TweenCanceled {
		t.Errorf("other state = %v, want canceled", other.State())
	}
	if bObj.Position[0] != 0 {
		t.Errorf("removed object moved to %v", bObj.Position[0])
	}
	if d.Active() != 0 {
		t.Errorf("Active = %d, want 0", d.Active())
	}
}

func TestCancel(t *testing.T) {
	reg, d := newTestDirector()
	h := reg.Register(NewObject("a", nil, nil))
	tw := d.TweenValue(h, PositionX, 1, time.Second, nil)
	d.Cancel(tw)
	if tw.State() != TweenCanceled || d.Active() != 0 {
		t.Errorf("state %v, active %d", tw.State(), d.Active())
	}
	d.Cancel(tw) // no-op
	d.Cancel(nil)
}

func TestTweensFor(t *testing.T) {
	reg, d := newTestDirector()
	a := reg.Register(NewObject("a", nil, nil))
	b := reg.Register(NewObject("b", nil, nil))
	d.TweenValue(a, PositionX, 1, time.Second, nil)
	d.TweenValue(a, RotationY, 1, time.Second, nil)
	d.TweenValue(b, PositionX, 1, time.Second, nil)
	if n := len(d.TweensFor(a)); n != 2 {
		t.Errorf("TweensFor(a) = %d, want 2", n)
	}
	if n := len(d.TweensFor(b)); n != 1 {
		t.Errorf("TweensFor(b) = %d, want 1", n)
	}
}

func TestTweenAllOnlyLiveAtCallTime(t *testing.T) {
	reg, d := newTestDirector()
	for i := 0; i < 3; i++ {
		reg.Register(NewObject("a", nil, nil))
	}
	tweens := d.TweenAll(PositionY,
		func(*SceneObject) mgl64.Vec3 { return mgl64.Vec3{0, -1, 0} },
		func(*SceneObject) time.Duration { return time.Second },
		nil)
	late := NewObject("late", nil, nil)
	reg.Register(late)

	if len(tweens) != 3 {
		t.Fatalf("tweens = %d, want 3", len(tweens))
	}
	d.Update(time.Second)
	if late.Position[1] != 0 {
		t.Errorf("late object moved to %v", late.Position[1])
	}
	reg.Each(func(o *SceneObject) {
		if o != late && o.Position[1] != -1 {
			t.Errorf("%s y = %v, want -1", o.Name, o.Position[1])
		}
	})
}

func TestSpinAppliesPerFrame(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	h := reg.Register(o)
	d.Spin(h, mgl64.Vec3{0.001, 0.002, 0.003})
	for i := 0; i < 10; i++ {
		d.Update(16 * time.Millisecond)
	}
	assertVec(t, "rotation", o.Rotation, mgl64.Vec3{0.01, 0.02, 0.03})

	d.StopSpin(h)
	d.Update(16 * time.Millisecond)
	assertVec(t, "rotation after stop", o.Rotation, mgl64.Vec3{0.01, 0.02, 0.03})
}

func TestSpinStopsOnRemove(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	h := reg.Register(o)
	d.Spin(h, mgl64.Vec3{1, 0, 0})
	reg.Remove(h)
	d.Update(time.Second)
	if o.Rotation[0] != 0 {
		t.Errorf("removed object spun to %v", o.Rotation[0])
	}
}

func TestTweenEasedMidpoint(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	h := reg.Register(o)
	d.TweenValue(h, PositionX, 1, time.Second, ease.InQuad)
	d.Update(500 * time.Millisecond)
	// InQuad at t=0.5 is 0.25.
	if math.Abs(o.Position[0]-0.25) > 1e-6 {
		t.Errorf("x = %v, want 0.25", o.Position[0])
	}
}

func TestTweenStateString(t *testing.T) {
	for s, want := range map[TweenState]string{
		TweenPending: "pending", TweenActive: "active",
		TweenCompleted: "completed", TweenCanceled: "canceled",
	} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestTweenCompletesOnExactDuration(t *testing.T) {
	for _, dt := range []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, frame16} {
		t.Run(dt.String(), func(t *testing.T) {
			reg, d := newTestDirector()
			o := NewObject("a", nil, nil)
			h := reg.Register(o)
			tw := d.TweenValue(h, PositionZ, -200, 3*time.Second, nil)

			var clock time.Duration
			for clock+dt < tw.Duration {
				d.Update(dt)
				clock += dt
			}
			if tw.State() != TweenActive {
				t.Fatalf("state = %v one frame early, want active", tw.State())
			}
			d.Update(dt)
			clock += dt
			if tw.State() != TweenCompleted || d.Active() != 0 {
				t.Fatalf("state = %v at %v, want completed", tw.State(), clock)
			}
			if o.Position[2] != -200 {
				t.Errorf("z = %v, want exactly -200", o.Position[2])
			}
			if tw.Elapsed() != clock {
				t.Errorf("elapsed = %v, want %v", tw.Elapsed(), clock)
			}
		})
	}
}

func TestSpinHoldsTweenedRotationAxis(t *testing.T) {
	reg, d := newTestDirector()
	o := NewObject("a", nil, nil)
	h := reg.Register(o)
	d.Spin(h, mgl64.Vec3{0.1, 0.1, 0.1})
	d.TweenValue(h, RotationY, 1, 100*time.Millisecond, nil)

	d.Update(50 * time.Millisecond)
	assertVec(t, "rotation mid tween", o.Rotation, mgl64.Vec3{0.1, 0.5, 0.1})
	d.Update(50 * time.Millisecond)
	assertVec(t, "rotation at end", o.Rotation, mgl64.Vec3{0.2, 1, 0.2})
	d.Update(50 * time.Millisecond)
	assertVec(t, "rotation after", o.Rotation, mgl64.Vec3{0.3, 1.1, 0.3})
}
