package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/grove"
)

// orbitStep is the drag distance, in stage pixels, of one arrow key press.
const orbitStep = 8

// Viewer runs a stage in a terminal. Terminals report key presses but not
// releases, so every movement key is injected as a one-frame hold.
type Viewer struct {
	Stage    *grove.Stage
	Screen   tcell.Screen
	Renderer *Renderer
	// FrameTime is the tick period. Zero means 16ms.
	FrameTime time.Duration
}

// NewViewer attaches a terminal renderer to a stage built with it. Use
// grove.WithRenderer(renderer) when constructing the stage.
func NewViewer(stage *grove.Stage, screen tcell.Screen, renderer *Renderer) *Viewer {
	renderer.Panel = stage.Panel
	cols, rows := screen.Size()
	stage.Resize(cols, rows*2)
	return &Viewer{Stage: stage, Screen: screen, Renderer: renderer}
}

// Run ticks the stage until ctx is done or the user presses Escape or Ctrl-C.
func (v *Viewer) Run(ctx context.Context) error {
	frame := v.FrameTime
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev, frame) {
				return nil
			}
		case <-ticker.C:
			v.Stage.Frame(frame)
		}
	}
}

// HandleEvent applies one terminal event to the stage. Returns false when the
// viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event, hold time.Duration) bool {
	s := v.Stage
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		s.Resize(cols, rows*2)
		v.Screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.rotate(-orbitStep, 0)
		case tcell.KeyRight:
			v.rotate(orbitStep, 0)
		case tcell.KeyUp:
			v.rotate(0, -orbitStep)
		case tcell.KeyDown:
			v.rotate(0, orbitStep)
		case tcell.KeyTab:
			v.Renderer.ShowPanel = !v.Renderer.ShowPanel
		case tcell.KeyRune:
			v.handleRune(ev.Rune(), hold)
		}
	}
	return true
}

func (v *Viewer) handleRune(ch rune, hold time.Duration) {
	s := v.Stage
	switch {
	case ch >= '1' && ch <= '9':
		actions := s.Panel.Actions()
		if i := int(ch - '1'); i < len(actions) {
			s.Trigger(actions[i])
		}
		return
	case ch == '+' || ch == '=':
		v.zoom(1)
		return
	case ch == '-':
		v.zoom(-1)
		return
	}
	if k, err := grove.ParseKey(string(ch)); err == nil {
		s.InjectKey(k, hold)
	}
}

func (v *Viewer) rotate(dx, dy float64) {
	if o, ok := v.Stage.Orbit.(*grove.DampedOrbit); ok {
		o.Rotate(dx, dy)
	}
}

func (v *Viewer) zoom(steps float64) {
	if o, ok := v.Stage.Orbit.(*grove.DampedOrbit); ok {
		o.Zoom(steps)
	}
}
