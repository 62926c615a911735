package grove

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	// ButtonStep is the base distance of one on-screen button firing.
	ButtonStep = 0.01
	// KeyStep is the base distance of one keyboard poll per pressed key.
	KeyStep = 0.1
	// RepeatInterval is the firing period of a held on-screen button.
	RepeatInterval = 10 * time.Millisecond
)

// --- Movement commands ---

// MovementCommand moves the camera one step in a direction.
type MovementCommand struct {
	Direction Direction
	Magnitude float64
}

// Delta returns the translation the command applies. Unknown directions
// return the zero vector.
func (c MovementCommand) Delta() mgl64.Vec3 {
	switch c.Direction {
	case DirUp:
		return mgl64.Vec3{0, 0, -c.Magnitude}
	case DirDown:
		return mgl64.Vec3{0, 0, c.Magnitude}
	case DirLeft:
		return mgl64.Vec3{-c.Magnitude, 0, 0}
	case DirRight:
		return mgl64.Vec3{c.Magnitude, 0, 0}
	case DirRaise:
		return mgl64.Vec3{0, c.Magnitude, 0}
	case DirSink:
		return mgl64.Vec3{0, -c.Magnitude, 0}
	}
	return mgl64.Vec3{}
}

// --- Key bindings ---

// KeyBinding maps one key to one direction.
type KeyBinding struct {
	Key       ebiten.Key
	Direction Direction
}

// DefaultKeyBindings maps WASD to the horizontal plane and E/Q to raise/sink.
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{ebiten.KeyW, DirUp},
		{ebiten.KeyS, DirDown},
		{ebiten.KeyA, DirLeft},
		{ebiten.KeyD, DirRight},
		{ebiten.KeyE, DirRaise},
		{ebiten.KeyQ, DirSink},
	}
}

// InputState tracks which keys are held. It is mutated only by key-down and
// key-up events.
type InputState struct {
	pressed map[ebiten.Key]bool
}

// Pressed reports whether k is held.
func (s *InputState) Pressed(k ebiten.Key) bool {
	return s.pressed[k]
}

func (s *InputState) set(k ebiten.Key, down bool) {
	if s.pressed == nil {
		s.pressed = make(map[ebiten.Key]bool)
	}
	if down {
		s.pressed[k] = true
	} else {
		delete(s.pressed, k)
	}
}

// --- Button holds ---

// buttonHold is the repeat schedule of one on-screen button. A hold fires at
// pressedAt, then every interval until released.
type buttonHold struct {
	held      bool
	pressedAt time.Duration
	fired     int // firings already emitted for the current hold
	pending   int // firings owed from a finished hold, not yet polled
}

// due returns how many firings a hold started at pressedAt owes by now.
func (b *buttonHold) due(now, interval time.Duration) int {
	if now < b.pressedAt {
		return 1
	}
	return 1 + int((now-b.pressedAt)/interval)
}

// --- Dispatcher ---

// Dispatcher turns keyboard state and on-screen button holds into one stream
// of MovementCommands, drained once per frame by Poll. Pointer orbit is not
// handled here; see OrbitControl.
type Dispatcher struct {
	// ButtonFactor scales every button firing (0.01 × ButtonFactor).
	ButtonFactor float64
	// KeyFactor scales every keyboard poll (0.1 × KeyFactor).
	KeyFactor float64
	// Interval is the button repeat period. Zero means RepeatInterval.
	Interval time.Duration

	bindings []KeyBinding
	keys     InputState
	buttons  [numDirections]buttonHold

	cmdBuf []MovementCommand
}

// NewDispatcher creates a dispatcher with the default key bindings and unit
// move factors.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		ButtonFactor: 1,
		KeyFactor:    1,
		Interval:     RepeatInterval,
		bindings:     DefaultKeyBindings(),
	}
}

// SetKeyBindings replaces the key map. Keys held under the old map stay held.
func (d *Dispatcher) SetKeyBindings(bindings []KeyBinding) {
	d.bindings = append(d.bindings[:0:0], bindings...)
}

// KeyBindings returns the current key map. The returned slice MUST NOT be
// mutated.
func (d *Dispatcher) KeyBindings() []KeyBinding {
	return d.bindings
}

// Keys returns the keyboard state.
func (d *Dispatcher) Keys() *InputState {
	return &d.keys
}

// KeyDown records k as held.
func (d *Dispatcher) KeyDown(k ebiten.Key) {
	d.keys.set(k, true)
}

// KeyUp records k as released.
func (d *Dispatcher) KeyUp(k ebiten.Key) {
	d.keys.set(k, false)
}

// PressButton starts a hold on the button for dir at time at. The first
// firing is due immediately. A press while the button is already held is
// ignored, so a button never has two repeat schedules.
func (d *Dispatcher) PressButton(dir Direction, at time.Duration) {
	if !dir.Valid() {
		return
	}
	b := &d.buttons[dir]
	if b.held {
		return
	}
	b.held = true
	b.pressedAt = at
	b.fired = 0
}

// ReleaseButton ends the hold on dir at time at. Firings due up to and
// including at are still delivered by the next Poll; none after.
func (d *Dispatcher) ReleaseButton(dir Direction, at time.Duration) {
	if !dir.Valid() {
		return
	}
	b := &d.buttons[dir]
	if !b.held {
		return
	}
	if due := b.due(at, d.interval()); due > b.fired {
		b.pending += due - b.fired
	}
	b.held = false
	b.fired = 0
}

// Holding reports whether the button for dir is held.
func (d *Dispatcher) Holding(dir Direction) bool {
	return dir.Valid() && d.buttons[dir].held
}

// Poll returns the commands due at now: every button firing owed since the
// last poll, then one command per held mapped key. The returned slice is
// reused by the next call.
func (d *Dispatcher) Poll(now time.Duration) []MovementCommand {
	d.cmdBuf = d.cmdBuf[:0]
	interval := d.interval()
	btnMag := ButtonStep * d.ButtonFactor
	for dir := range d.buttons {
		b := &d.buttons[dir]
		n := b.pending
		b.pending = 0
		if b.held {
			if due := b.due(now, interval); due > b.fired {
				n += due - b.fired
				b.fired = due
			}
		}
		for ; n > 0; n-- {
			d.cmdBuf = append(d.cmdBuf, MovementCommand{Direction: Direction(dir), Magnitude: btnMag})
		}
	}

	keyMag := KeyStep * d.KeyFactor
	for _, kb := range d.bindings {
		if d.keys.Pressed(kb.Key) {
			d.cmdBuf = append(d.cmdBuf, MovementCommand{Direction: kb.Direction, Magnitude: keyMag})
		}
	}
	return d.cmdBuf
}

func (d *Dispatcher) interval() time.Duration {
	if d.Interval <= 0 {
		return RepeatInterval
	}
	return d.Interval
}

// ApplyMovement sums the deltas of cmds.
func ApplyMovement(cmds []MovementCommand) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, c := range cmds {
		sum = sum.Add(c.Delta())
	}
	return sum
}
