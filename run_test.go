package grove

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPointersHolding(t *testing.T) {
	touches := map[ebiten.TouchID]pointerHold{
		1: {dir: DirRight, held: true},
		2: {dir: DirRight, held: true},
		3: {dir: DirUp, held: true},
	}
	mouse := pointerHold{dir: DirRight, held: true}
	if n := pointersHolding(DirRight, mouse, touches); n != 3 {
		t.Errorf("right = %d, want 3", n)
	}
	if n := pointersHolding(DirUp, pointerHold{}, touches); n != 1 {
		t.Errorf("up = %d, want 1", n)
	}
	if n := pointersHolding(DirSink, mouse, touches); n != 0 {
		t.Errorf("sink = %d, want 0", n)
	}
}

func TestReleasePointerWaitsForLastTouch(t *testing.T) {
	s := testStage(t)
	g := &Game{
		Stage: s,
		touchHolds: map[ebiten.TouchID]pointerHold{
			1: {dir: DirRight, held: true},
			2: {dir: DirRight, held: true},
		},
	}
	s.PressButton(DirRight)
	s.Frame(frame16)

	delete(g.touchHolds, 1)
	g.releasePointer(DirRight)
	s.Frame(frame16)
	if !s.Input.Holding(DirRight) {
		t.Fatal("button released while a second touch still holds it")
	}

	delete(g.touchHolds, 2)
	g.releasePointer(DirRight)
	s.Frame(frame16)
	if s.Input.Holding(DirRight) {
		t.Error("button still held after the last touch lifted")
	}
}

func TestReleasePointerMouseAndTouch(t *testing.T) {
	s := testStage(t)
	g := &Game{
		Stage:      s,
		touchHolds: map[ebiten.TouchID]pointerHold{7: {dir: DirLeft, held: true}},
	}
	s.PressButton(DirLeft)
	s.Frame(frame16)

	g.releasePointer(DirLeft) // mouse let go, touch 7 remains
	s.Frame(frame16)
	if !s.Input.Holding(DirLeft) {
		t.Error("mouse release dropped a touch hold")
	}
}
