package grove

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Command is a typed event applied to a Stage at the start of the next frame,
// in the order it was enqueued.
type Command interface {
	Apply(s *Stage)
}

// KeyDownCommand marks a key as held.
type KeyDownCommand struct{ Key ebiten.Key }

// KeyUpCommand marks a key as released.
type KeyUpCommand struct{ Key ebiten.Key }

// ButtonPressCommand starts an on-screen button hold at At.
type ButtonPressCommand struct {
	Direction Direction
	At        time.Duration
}

// ButtonReleaseCommand ends an on-screen button hold at At.
type ButtonReleaseCommand struct {
	Direction Direction
	At        time.Duration
}

// ResizeCommand reports a new surface size in device-independent pixels.
type ResizeCommand struct{ Width, Height int }

// FullscreenCommand toggles fullscreen on the stage surface.
type FullscreenCommand struct{}

// ActionCommand runs a panel action by name.
type ActionCommand struct{ Name string }

// FuncCommand runs an arbitrary function inside the frame.
type FuncCommand func(s *Stage)

func (c KeyDownCommand) Apply(s *Stage) { s.Input.KeyDown(c.Key) }

func (c KeyUpCommand) Apply(s *Stage) { s.Input.KeyUp(c.Key) }

func (c ButtonPressCommand) Apply(s *Stage) { s.Input.PressButton(c.Direction, c.At) }

func (c ButtonReleaseCommand) Apply(s *Stage) { s.Input.ReleaseButton(c.Direction, c.At) }

func (c ResizeCommand) Apply(s *Stage) { s.resize(c.Width, c.Height) }

func (FullscreenCommand) Apply(s *Stage) { s.toggleFullscreen() }

func (c ActionCommand) Apply(s *Stage) {
	if !s.Panel.Trigger(c.Name) {
		Logger().Warn("unknown panel action", "name", c.Name)
	}
}

func (f FuncCommand) Apply(s *Stage) { f(s) }
