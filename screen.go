package sprig

import (
	"image"
	"sync"
)

// Screen is a top-level surface: a fixed container covering the whole
// display. Create one with Display.NewScreen.
type Screen struct {
	*Control

	mu         sync.Mutex
	background Color
	image      imageFill
}

type imageFill struct {
	img  image.Image
	mode ImageMode
}

func newScreen(name string) *Screen {
	s := &Screen{}
	s.Control = NewContainer(name, s)
	return s
}

// SetBackground sets a solid background. The zero Color uses the theme.
func (s *Screen) SetBackground(c Color) {
	s.mu.Lock()
	s.background = c
	s.mu.Unlock()
	s.Invalidate()
}

// SetBackgroundImage draws img over the background fill.
func (s *Screen) SetBackgroundImage(img image.Image, mode ImageMode) {
	s.mu.Lock()
	s.image = imageFill{img: img, mode: mode}
	s.mu.Unlock()
	s.Invalidate()
}

// Paint implements Painter.
func (s *Screen) Paint(c *Control, dst Surface, clip Rect) {
	s.mu.Lock()
	bg, fill := s.background, s.image
	s.mu.Unlock()
	if bg == (Color{}) {
		bg = c.config().Theme.Background
	}
	b := c.Bounds()
	dst.FillRect(b, bg)
	if fill.img != nil {
		dst.DrawImage(fill.img, b, fill.mode)
	}
}
