// Package snapshot renders a grove stage to an image without a window, using
// the gg software rasterizer. It backs headless tools and screenshot tests.
package snapshot

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/phanxgames/grove"
)

// Renderer implements grove.Renderer by rasterizing every frame into an
// offscreen gg context.
type Renderer struct {
	Background grove.Color
	LineWidth  float64

	width, height int
	ratio         float64
	list          grove.DrawList
	dc            *gg.Context
	err           error
}

// New creates a renderer for a width×height surface.
func New(width, height int) *Renderer {
	r := &Renderer{
		Background: grove.Color{A: 1},
		LineWidth:  1,
		ratio:      1,
	}
	r.Resize(width, height)
	return r
}

// Render implements grove.Renderer.
func (r *Renderer) Render(reg *grove.Registry, cam *grove.Camera) {
	w, h := r.Size()
	if r.dc == nil || r.dc.Width() != w || r.dc.Height() != h {
		if r.dc != nil {
			_ = r.dc.Close()
		}
		r.dc = gg.NewContext(w, h)
	}
	r.list.Build(reg, cam, float64(w), float64(h))
	r.err = r.draw()
}

// Resize implements grove.Renderer.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
}

// SetPixelRatio implements grove.Renderer.
func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	r.ratio = ratio
}

// Size returns the output image size in pixels.
func (r *Renderer) Size() (int, int) {
	return int(math.Ceil(float64(r.width) * r.ratio)), int(math.Ceil(float64(r.height) * r.ratio))
}

// DrawList returns the list built by the last Render.
func (r *Renderer) DrawList() *grove.DrawList {
	return &r.list
}

// Err returns the rasterizer error from the last Render, if any.
func (r *Renderer) Err() error {
	return r.err
}

// Image returns the last rendered frame, or nil before the first Render.
func (r *Renderer) Image() image.Image {
	if r.dc == nil {
		return nil
	}
	return r.dc.Image()
}

// SavePNG writes the last rendered frame to path.
func (r *Renderer) SavePNG(path string) error {
	if r.dc == nil {
		return fmt.Errorf("snapshot: nothing rendered")
	}
	return r.dc.SavePNG(path)
}

// Close releases the drawing context.
func (r *Renderer) Close() error {
	if r.dc == nil {
		return nil
	}
	err := r.dc.Close()
	r.dc = nil
	return err
}

func (r *Renderer) draw() error {
	bg := r.Background
	r.dc.ClearWithColor(gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A})

	for i := range r.list.Triangles {
		t := &r.list.Triangles[i]
		r.dc.SetRGBA(t.Color.R, t.Color.G, t.Color.B, t.Color.A)
		r.dc.MoveTo(t.X[0], t.Y[0])
		r.dc.LineTo(t.X[1], t.Y[1])
		r.dc.LineTo(t.X[2], t.Y[2])
		r.dc.ClosePath()
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("snapshot: fill: %w", err)
		}
	}

	// Stroke runs of same-colored segments as one path.
	r.dc.SetLineWidth(r.LineWidth * r.ratio)
	segs := r.list.Segments
	for start := 0; start < len(segs); {
		c := segs[start].Color
		end := start
		for end < len(segs) && segs[end].Color == c {
			s := &segs[end]
			r.dc.DrawLine(s.X0, s.Y0, s.X1, s.Y1)
			end++
		}
		r.dc.SetRGBA(c.R, c.G, c.B, c.A)
		if err := r.dc.Stroke(); err != nil {
			return fmt.Errorf("snapshot: stroke: %w", err)
		}
		start = end
	}
	return nil
}
