// Package term shows a grove stage in a terminal with tcell. Edges are
// rasterized at half-block resolution: every cell holds two vertical
// subpixels drawn with '▀', '▄' and '█'.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/grove"
)

// Renderer implements grove.Renderer on a tcell screen. The stage should be
// sized in subpixels: columns × (rows * 2).
type Renderer struct {
	// ShowPanel draws the stage panel lines in the top-left corner.
	ShowPanel bool
	Panel     *grove.Panel

	screen tcell.Screen
	cols   int
	rows   int
	list   grove.DrawList
	grid   []tcell.Color // cols × rows*2 subpixels; ColorDefault is empty
}

// NewRenderer creates a renderer drawing to screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	cols, rows := screen.Size()
	r.Resize(cols, rows*2)
	return r
}

// Resize implements grove.Renderer. height is in subpixels.
func (r *Renderer) Resize(width, height int) {
	r.cols = max(width, 1)
	r.rows = max((height+1)/2, 1)
	r.grid = make([]tcell.Color, r.cols*r.rows*2)
}

// SetPixelRatio implements grove.Renderer. Terminals have no pixel ratio.
func (r *Renderer) SetPixelRatio(float64) {}

// DrawList returns the list built by the last Render.
func (r *Renderer) DrawList() *grove.DrawList {
	return &r.list
}

// Render implements grove.Renderer: it rasterizes the stage and shows it.
func (r *Renderer) Render(reg *grove.Registry, cam *grove.Camera) {
	h := r.rows * 2
	r.list.Build(reg, cam, float64(r.cols), float64(h))
	for i := range r.grid {
		r.grid[i] = tcell.ColorDefault
	}
	for i := range r.list.Triangles {
		t := &r.list.Triangles[i]
		c := toTcell(t.Color)
		r.line(t.X[0], t.Y[0], t.X[1], t.Y[1], c)
		r.line(t.X[1], t.Y[1], t.X[2], t.Y[2], c)
		r.line(t.X[2], t.Y[2], t.X[0], t.Y[0], c)
	}
	for i := range r.list.Segments {
		s := &r.list.Segments[i]
		r.line(s.X0, s.Y0, s.X1, s.Y1, toTcell(s.Color))
	}

	r.screen.Clear()
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			top := r.grid[(2*y)*r.cols+x]
			bottom := r.grid[(2*y+1)*r.cols+x]
			ch, style := cell(top, bottom)
			if ch != ' ' {
				r.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}
	if r.ShowPanel && r.Panel != nil {
		r.drawText(r.Panel.Lines())
	}
	r.screen.Show()
}

func cell(top, bottom tcell.Color) (rune, tcell.Style) {
	switch {
	case top != tcell.ColorDefault && bottom != tcell.ColorDefault:
		if top == bottom {
			return '█', tcell.StyleDefault.Foreground(top)
		}
		return '▀', tcell.StyleDefault.Foreground(top).Background(bottom)
	case top != tcell.ColorDefault:
		return '▀', tcell.StyleDefault.Foreground(top)
	case bottom != tcell.ColorDefault:
		return '▄', tcell.StyleDefault.Foreground(bottom)
	}
	return ' ', tcell.StyleDefault
}

func (r *Renderer) drawText(lines []string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for y, line := range lines {
		if y >= r.rows {
			return
		}
		x := 0
		for _, ch := range line {
			if x >= r.cols {
				break
			}
			r.screen.SetContent(x, y, ch, nil, style)
			x++
		}
	}
}

// line plots a segment into the subpixel grid with Bresenham's algorithm
// after clipping it to the grid.
func (r *Renderer) line(fx0, fy0, fx1, fy1 float64, c tcell.Color) {
	w, h := r.cols, r.rows*2
	fx0, fy0, fx1, fy1, ok := clip(fx0, fy0, fx1, fy1, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	x0, y0, x1, y1 := int(fx0), int(fy0), int(fx1), int(fy1)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			r.grid[y0*w+x0] = c
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip cuts a segment to [0, maxX]×[0, maxY] (Liang-Barsky).
func clip(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func toTcell(c grove.Color) tcell.Color {
	rgba := c.RGBA()
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}
