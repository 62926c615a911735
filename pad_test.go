package grove

import (
	"image"
	"testing"
)

func TestButtonPadLayout(t *testing.T) {
	p := NewButtonPad()
	p.Layout(800, 600, 1)

	// Cross at bottom-left: 3x48 grid starting at (16, 600-16-144).
	tests := []struct {
		dir  Direction
		want image.Rectangle
	}{
		{DirUp, image.Rect(64, 440, 112, 488)},
		{DirLeft, image.Rect(16, 488, 64, 536)},
		{DirRight, image.Rect(112, 488, 160, 536)},
		{DirDown, image.Rect(64, 536, 112, 584)},
		{DirRaise, image.Rect(736, 488, 784, 536)},
		{DirSink, image.Rect(736, 536, 784, 584)},
	}
	for _, tt := range tests {
		if got := p.buttons[tt.dir].Rect; got != tt.want {
			t.Errorf("%v rect = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestButtonPadLayoutScalesWithRatio(t *testing.T) {
	p := NewButtonPad()
	p.Layout(1600, 1200, 2)
	if r := p.buttons[DirUp].Rect; r.Dx() != 96 || r.Dy() != 96 {
		t.Errorf("button size = %dx%d, want 96x96", r.Dx(), r.Dy())
	}
}

func TestButtonPadHitTest(t *testing.T) {
	p := NewButtonPad()
	p.Layout(800, 600, 1)

	tests := []struct {
		name   string
		x, y   int
		dir    Direction
		wantOK bool
	}{
		{"up", 80, 460, DirUp, true},
		{"right", 120, 500, DirRight, true},
		{"sink", 750, 560, DirSink, true},
		{"center of cross", 80, 500, 0, false},
		{"middle of screen", 400, 300, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := p.HitTest(tt.x, tt.y)
			if ok != tt.wantOK || (ok && dir != tt.dir) {
				t.Errorf("HitTest(%d, %d) = %v, %v", tt.x, tt.y, dir, ok)
			}
		})
	}
}

func TestButtonPadHiddenNoHits(t *testing.T) {
	p := NewButtonPad()
	p.Layout(800, 600, 1)
	p.Visible = false
	if _, ok := p.HitTest(80, 460); ok {
		t.Error("hidden pad reported a hit")
	}
}
