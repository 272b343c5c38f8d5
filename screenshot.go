package sprig

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot of the front buffer, captured at
// the end of the next Draw. The PNG is written to ScreenshotDir with a
// timestamped file name.
func (d *Display) Screenshot(label string) {
	d.screenshotQueue = append(d.screenshotQueue, label)
}

// flushScreenshots writes every queued screenshot. Called at the end of Draw.
func (d *Display) flushScreenshots(screen *ebiten.Image) {
	if len(d.screenshotQueue) == 0 {
		return
	}
	defer func() { d.screenshotQueue = d.screenshotQueue[:0] }()

	if err := os.MkdirAll(d.ScreenshotDir, 0o755); err != nil {
		d.errorf("screenshot: mkdir %s: %v", d.ScreenshotDir, err)
		return
	}
	img := readNRGBA(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range d.screenshotQueue {
		path := filepath.Join(d.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			d.errorf("screenshot: %v", err)
			continue
		}
		d.debugf("screenshot: wrote %s", path)
	}
}

// readNRGBA copies an ebiten image into a straight-alpha NRGBA image.
func readNRGBA(src *ebiten.Image) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	src.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

// writePNG encodes img to a PNG file at path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
