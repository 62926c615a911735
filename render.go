package grove

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices keeps DrawTriangles indices within uint16.
const maxBatchVertices = math.MaxUint16 - 2

// whiteSubImage is a 1x1 white source for untextured triangles. The 3x3 image
// with an inset sub-image avoids sampling edge pixels.
var whiteSubImage *ebiten.Image

func ensureWhiteSubImage() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite.RGBA())
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// EbitenRenderer draws a Stage with Ebitengine: wireframe edges as stroked
// lines, solid triangles with DrawTriangles. Render rebuilds the draw list
// during Update; Draw replays it onto the screen.
type EbitenRenderer struct {
	LineWidth  float32
	Background Color
	Antialias  bool

	list          DrawList
	width, height int
	ratio         float64

	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenRenderer creates a renderer with 1px antialiased lines on black.
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{
		LineWidth:  1,
		Background: Color{0, 0, 0, 1},
		Antialias:  true,
		ratio:      1,
	}
}

// Render implements Renderer.
func (r *EbitenRenderer) Render(reg *Registry, cam *Camera) {
	w, h := r.ScreenSize()
	r.list.Build(reg, cam, float64(w), float64(h))
}

// Resize implements Renderer. Sizes are in device-independent pixels.
func (r *EbitenRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// SetPixelRatio implements Renderer.
func (r *EbitenRenderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	r.ratio = ratio
}

// PixelRatio returns the current device pixel ratio.
func (r *EbitenRenderer) PixelRatio() float64 {
	return r.ratio
}

// ScreenSize returns the backing buffer size in device pixels.
func (r *EbitenRenderer) ScreenSize() (int, int) {
	return int(math.Ceil(float64(r.width) * r.ratio)), int(math.Ceil(float64(r.height) * r.ratio))
}

// DrawList returns the list built by the last Render.
func (r *EbitenRenderer) DrawList() *DrawList {
	return &r.list
}

// Draw clears screen and replays the current draw list.
func (r *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.Background.RGBA())
	r.drawTriangles(screen)
	width := r.LineWidth * float32(r.ratio)
	for i := range r.list.Segments {
		seg := &r.list.Segments[i]
		vector.StrokeLine(screen,
			float32(seg.X0), float32(seg.Y0), float32(seg.X1), float32(seg.Y1),
			width, seg.Color.RGBA(), r.Antialias)
	}
}

func (r *EbitenRenderer) drawTriangles(screen *ebiten.Image) {
	if len(r.list.Triangles) == 0 {
		return
	}
	src := ensureWhiteSubImage()
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for i := range r.list.Triangles {
		if len(r.verts)+3 > maxBatchVertices {
			screen.DrawTriangles(r.verts, r.inds, src, nil)
			r.verts = r.verts[:0]
			r.inds = r.inds[:0]
		}
		t := &r.list.Triangles[i]
		base := uint16(len(r.verts))
		for k := 0; k < 3; k++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   float32(t.X[k]),
				DstY:   float32(t.Y[k]),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(t.Color.R),
				ColorG: float32(t.Color.G),
				ColorB: float32(t.Color.B),
				ColorA: float32(t.Color.A),
			})
		}
		r.inds = append(r.inds, base, base+1, base+2)
	}
	screen.DrawTriangles(r.verts, r.inds, src, nil)
}
