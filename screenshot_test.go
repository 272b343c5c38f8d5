package sprig

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-tap", "after-tap"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"  padded  ", "padded"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	d, _, _ := newTestDisplay(t)
	d.Screenshot("a")
	d.Screenshot("b")
	d.Screenshot("c")
	if want := []string{"a", "b", "c"}; !equalStrings(d.screenshotQueue, want) {
		t.Errorf("queue = %v, want %v", d.screenshotQueue, want)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	d, _, _ := newTestDisplay(t)
	if d.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", d.ScreenshotDir, "screenshots")
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.NRGBA{R: 200, G: 10, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "shot.png")

	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	r, g, b, a := got.At(1, 2).RGBA()
	if r>>8 != 200 || g>>8 != 10 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("pixel = (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "shot.png")
	if err := writePNG(path, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error for a missing directory")
	}
}
