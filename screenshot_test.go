package grove

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-rain", "after-rain"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := testStage(t)
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if len(s.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(s.screenshotQueue))
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" || s.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", s.screenshotQueue)
	}
	if !s.PendingScreenshots() {
		t.Error("PendingScreenshots = false")
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := testStage(t)
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestFlushScreenshots(t *testing.T) {
	s := testStage(t)
	s.ScreenshotDir = filepath.Join(t.TempDir(), "shots")

	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.Set(2, 2, color.NRGBA{0, 255, 0, 255})

	s.Screenshot("first one")
	s.Screenshot("second")
	paths := s.FlushScreenshots(img)
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	if !strings.HasSuffix(paths[0], "_000_first_one.png") || !strings.HasSuffix(paths[1], "_001_second.png") {
		t.Errorf("paths = %v", paths)
	}
	if s.PendingScreenshots() {
		t.Error("queue not cleared")
	}

	f, err := os.Open(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, g, _, _ := got.At(2, 2).RGBA(); g != 0xffff {
		t.Errorf("pixel (2,2) green = %#x, want 0xffff", g)
	}
}

func TestFlushScreenshotsEmpty(t *testing.T) {
	s := testStage(t)
	s.ScreenshotDir = filepath.Join(t.TempDir(), "never")
	if paths := s.FlushScreenshots(image.NewNRGBA(image.Rect(0, 0, 1, 1))); paths != nil {
		t.Errorf("paths = %v", paths)
	}
	if _, err := os.Stat(s.ScreenshotDir); !os.IsNotExist(err) {
		t.Error("directory created with nothing to write")
	}
}
