package grove

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay prints FPS/TPS, scene counts and the panel in the top-left corner.
// The text is recomposed every ~0.5 seconds.
type Overlay struct {
	Visible bool
	ShowFPS bool

	sinceRefresh float64
	text         string
	lines        int
	width        int
}

// NewOverlay creates a visible overlay showing FPS.
func NewOverlay() *Overlay {
	return &Overlay{Visible: true, ShowFPS: true, sinceRefresh: 1}
}

// Update refreshes the overlay text from s.
func (o *Overlay) Update(dt float64, s *Stage) {
	o.sinceRefresh += dt
	if o.sinceRefresh < 0.5 {
		return
	}
	o.sinceRefresh = 0
	fps, tps := -1.0, -1.0
	if o.ShowFPS {
		fps, tps = ebiten.ActualFPS(), ebiten.ActualTPS()
	}
	o.text = overlayText(fps, tps, s)
	o.lines = strings.Count(o.text, "\n") + 1
	o.width = 0
	for _, l := range strings.Split(o.text, "\n") {
		o.width = max(o.width, len(l))
	}
}

// Draw prints the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.Visible || o.text == "" {
		return
	}
	// Semi-transparent background for readability
	const charW, lineH = 6, 16
	vector.DrawFilledRect(screen, 0, 0, float32(o.width*charW+8), float32(o.lines*lineH+4),
		color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, o.text, 4, 2)
}

// overlayText composes the overlay. Negative fps hides the rate line. Panel
// actions are numbered for the 1-9 shortcuts.
func overlayText(fps, tps float64, s *Stage) string {
	var b strings.Builder
	if fps >= 0 {
		fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", fps, tps)
	}
	p := s.Camera.Position
	fmt.Fprintf(&b, "objects: %d  tweens: %d  edges: %d\n",
		s.Registry.Len(), s.Director.Active(), countSegments(s.Registry))
	fmt.Fprintf(&b, "camera: %.2f %.2f %.2f\n", p[0], p[1], p[2])
	if s.Panel.Visible {
		b.WriteString(strings.Join(panelLines(s.Panel), "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// panelLines renders the panel with shortcut numbers on the first nine
// actions.
func panelLines(p *Panel) []string {
	var lines []string
	if p.Title != "" {
		lines = append(lines, p.Title)
	}
	n := 0
	for _, e := range p.Entries() {
		prefix := "   "
		if e.Kind == FieldAction {
			n++
			if n <= 9 {
				prefix = fmt.Sprintf("%d. ", n)
			}
		}
		lines = append(lines, fmt.Sprintf("%s%-14s %s", prefix, e.Name, e.Value()))
	}
	return lines
}
