package sprig

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title string
	// Scale multiplies the window size relative to the surface. Zero means 1.
	Scale int
	// Resizable lets the user resize the window; the surface stays fixed
	// and is scaled to fit.
	Resizable bool
}

// Draw blits the front buffer onto screen and captures queued screenshots.
func (d *Display) Draw(screen *ebiten.Image) {
	if es, ok := d.surface.(*EbitenSurface); ok {
		d.surfaceMu.Lock()
		screen.DrawImage(es.Front(), nil)
		d.surfaceMu.Unlock()
	}
	d.flushScreenshots(screen)
}

// Layout implements ebiten.Game with the surface's fixed size.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.surface.Size()
}

// Run opens a window and drives d until the window closes. d must draw into
// an EbitenSurface.
func Run(d *Display, cfg RunConfig) error {
	if _, ok := d.surface.(*EbitenSurface); !ok {
		return errors.New("sprig: Run requires an EbitenSurface")
	}
	defer d.Close()
	scale := max(cfg.Scale, 1)
	w, h := d.surface.Size()
	ebiten.SetWindowSize(w*scale, h*scale)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if s := d.Screen(); s != nil {
		s.Invalidate()
	}
	return ebiten.RunGame(d)
}
