package grove

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// doubleClickTicks is the longest gap between two clicks that still counts as
// a double click, at the default 60 TPS.
const doubleClickTicks = 18

// RunConfig holds window options for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS displays the overlay's FPS/TPS line.
	ShowFPS bool
	// ShowPad displays the on-screen movement buttons.
	ShowPad bool
	// TPS is the tick rate. Zero means ebiten.DefaultTPS.
	TPS int
}

// RunConfigFrom derives window options from a stage Config.
func RunConfigFrom(cfg Config) RunConfig {
	return RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: true,
		ShowFPS:   true,
		ShowPad:   true,
	}
}

// ebitenSurface is the Ebitengine window as a Surface.
type ebitenSurface struct{}

func (ebitenSurface) IsFullscreen() bool    { return ebiten.IsFullscreen() }
func (ebitenSurface) SetFullscreen(on bool) { ebiten.SetFullscreen(on) }

func (ebitenSurface) DevicePixelRatio() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// pointerHold tracks which pad button a mouse or touch pointer is holding.
type pointerHold struct {
	dir  Direction
	held bool
}

// Game adapts a Stage to ebiten.Game. Update translates Ebitengine input into
// stage commands and runs one Stage.Frame; Draw replays the renderer's draw
// list and the overlays.
type Game struct {
	Stage    *Stage
	Renderer *EbitenRenderer
	Overlay  *Overlay
	Pad      *ButtonPad

	keys    []ebiten.Key
	touches []ebiten.TouchID

	mouse      pointerHold
	touchHolds map[ebiten.TouchID]pointerHold

	dragging     bool
	lastX, lastY int
	tick         int
	lastClick    int

	outsideW, outsideH int
}

// NewGame attaches an EbitenRenderer and the window surface to s.
func NewGame(s *Stage) *Game {
	r := NewEbitenRenderer()
	s.renderer = r
	s.surface = ebitenSurface{}
	r.Resize(s.width, s.height)
	r.SetPixelRatio(s.pixelRatio())
	return &Game{
		Stage:      s,
		Renderer:   r,
		Overlay:    NewOverlay(),
		Pad:        NewButtonPad(),
		touchHolds: make(map[ebiten.TouchID]pointerHold),
		lastClick:  -doubleClickTicks - 1,
	}
}

// Run opens a window and runs s until the window is closed.
func Run(s *Stage, cfg RunConfig) error {
	g := NewGame(s)
	g.Overlay.ShowFPS = cfg.ShowFPS
	g.Pad.Visible = cfg.ShowPad
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	Logger().Info("run", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.tick++
	s := g.Stage
	g.updateKeys()
	g.updateMouse()
	g.updateTouches()
	if _, wy := ebiten.Wheel(); wy != 0 {
		if o, ok := s.Orbit.(*DampedOrbit); ok {
			o.Zoom(wy)
		}
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	s.Frame(dt)
	g.Overlay.Update(dt.Seconds(), s)
	return nil
}

func (g *Game) updateKeys() {
	s := g.Stage
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if k >= ebiten.KeyDigit1 && k <= ebiten.KeyDigit9 {
			actions := s.Panel.Actions()
			if i := int(k - ebiten.KeyDigit1); i < len(actions) {
				s.Trigger(actions[i])
			}
			continue
		}
		switch k {
		case ebiten.KeyTab:
			s.Panel.Visible = !s.Panel.Visible
		case ebiten.KeyF11:
			s.ToggleFullscreen()
		case ebiten.KeyF12:
			s.Screenshot("manual")
		default:
			s.KeyDown(k)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		s.KeyUp(k)
	}
}

func (g *Game) updateMouse() {
	s := g.Stage
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if dir, ok := g.Pad.HitTest(x, y); ok {
			g.mouse = pointerHold{dir: dir, held: true}
			s.PressButton(dir)
		} else {
			if g.tick-g.lastClick <= doubleClickTicks {
				s.ToggleFullscreen()
				g.lastClick = -doubleClickTicks - 1
			} else {
				g.lastClick = g.tick
			}
			g.dragging = true
			g.lastX, g.lastY = x, y
		}
	}
	if g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.rotate(x-g.lastX, y-g.lastY)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.mouse.held {
			dir := g.mouse.dir
			g.mouse = pointerHold{}
			g.releasePointer(dir)
		}
		g.dragging = false
	}
}

func (g *Game) updateTouches() {
	s := g.Stage
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		if dir, ok := g.Pad.HitTest(x, y); ok {
			g.touchHolds[id] = pointerHold{dir: dir, held: true}
			s.PressButton(dir)
		}
	}
	for id, h := range g.touchHolds {
		if inpututil.IsTouchJustReleased(id) {
			delete(g.touchHolds, id)
			g.releasePointer(h.dir)
		}
	}
}

// releasePointer releases the pad button for dir unless the mouse or another
// touch still holds it.
func (g *Game) releasePointer(dir Direction) {
	if pointersHolding(dir, g.mouse, g.touchHolds) == 0 {
		g.Stage.ReleaseButton(dir)
	}
}

// pointersHolding counts the pointers holding the pad button for dir.
func pointersHolding(dir Direction, mouse pointerHold, touches map[ebiten.TouchID]pointerHold) int {
	n := 0
	if mouse.held && mouse.dir == dir {
		n++
	}
	for _, h := range touches {
		if h.held && h.dir == dir {
			n++
		}
	}
	return n
}

// rotate feeds a drag in screen pixels to the orbit in logical pixels.
func (g *Game) rotate(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	o, ok := g.Stage.Orbit.(*DampedOrbit)
	if !ok {
		return
	}
	r := g.Renderer.PixelRatio()
	o.Rotate(float64(dx)/r, float64(dy)/r)
}

// holding reports pad state for drawing.
func (g *Game) holding(dir Direction) bool {
	return g.Stage.Input.Holding(dir)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Renderer.Draw(screen)
	g.Pad.Draw(screen, g.holding)
	g.Overlay.Draw(screen)
	if g.Stage.PendingScreenshots() {
		g.Stage.FlushScreenshots(screenImage(screen))
	}
}

// Layout implements ebiten.Game. A size change is forwarded to the stage as a
// ResizeCommand; the returned buffer is scaled by the device pixel ratio.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH {
		g.outsideW, g.outsideH = outsideWidth, outsideHeight
		g.Stage.Resize(outsideWidth, outsideHeight)
	}
	w, h := g.Renderer.ScreenSize()
	if w <= 0 || h <= 0 {
		w, h = outsideWidth, outsideHeight
	}
	g.Pad.Layout(w, h, g.Renderer.PixelRatio())
	return w, h
}
