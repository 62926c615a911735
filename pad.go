package grove

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// padButton is one on-screen direction button.
type padButton struct {
	Direction Direction
	Rect      image.Rectangle
	Label     string
}

// ButtonPad lays out the six on-screen movement buttons: a cross for
// up/down/left/right in the bottom-left corner and a raise/sink column in the
// bottom-right corner.
type ButtonPad struct {
	Visible bool
	// Size is the button edge length in device-independent pixels.
	Size   int
	Margin int

	buttons [numDirections]padButton
}

// NewButtonPad creates a visible pad with 48px buttons.
func NewButtonPad() *ButtonPad {
	p := &ButtonPad{Visible: true, Size: 48, Margin: 16}
	for d := Direction(0); d < numDirections; d++ {
		p.buttons[d] = padButton{Direction: d, Label: d.String()}
	}
	return p
}

// Layout positions the buttons for a width×height screen at the given pixel
// ratio.
func (p *ButtonPad) Layout(width, height int, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	s := int(float64(p.Size) * ratio)
	m := int(float64(p.Margin) * ratio)
	rect := func(col, row int, x0, y0 int) image.Rectangle {
		x := x0 + col*s
		y := y0 + row*s
		return image.Rect(x, y, x+s, y+s)
	}
	// Cross: 3x3 grid, bottom-left.
	cx, cy := m, height-m-3*s
	p.buttons[DirUp].Rect = rect(1, 0, cx, cy)
	p.buttons[DirLeft].Rect = rect(0, 1, cx, cy)
	p.buttons[DirRight].Rect = rect(2, 1, cx, cy)
	p.buttons[DirDown].Rect = rect(1, 2, cx, cy)
	// Column: bottom-right.
	rx, ry := width-m-s, height-m-2*s
	p.buttons[DirRaise].Rect = rect(0, 0, rx, ry)
	p.buttons[DirSink].Rect = rect(0, 1, rx, ry)
}

// HitTest returns the button under (x, y).
func (p *ButtonPad) HitTest(x, y int) (Direction, bool) {
	if !p.Visible {
		return 0, false
	}
	pt := image.Pt(x, y)
	for _, b := range p.buttons {
		if pt.In(b.Rect) {
			return b.Direction, true
		}
	}
	return 0, false
}

// Draw paints the pad. holding reports which buttons are currently held.
func (p *ButtonPad) Draw(screen *ebiten.Image, holding func(Direction) bool) {
	if !p.Visible {
		return
	}
	idle := color.RGBA{255, 255, 255, 48}
	held := color.RGBA{255, 255, 255, 128}
	for _, b := range p.buttons {
		r := b.Rect
		clr := idle
		if holding != nil && holding(b.Direction) {
			clr = held
		}
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y),
			float32(r.Dx()), float32(r.Dy()), clr, false)
		ebitenutil.DebugPrintAt(screen, b.Label, r.Min.X+4, r.Min.Y+r.Dy()/2-8)
	}
}
