package sprig

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// defaultFace is the fixed 7x13 bitmap font used when no face is given.
var defaultFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// EbitenSurface is a double-buffered Surface backed by two Ebitengine
// images. Paint calls draw into the back buffer; Flush copies the flushed
// region into the front buffer, which Display.Draw blits to the screen.
type EbitenSurface struct {
	back  *ebiten.Image
	front *ebiten.Image
	clip  Rect
	face  text.Face

	lineHeight float64
	images     map[image.Image]*ebiten.Image
}

// NewEbitenSurface allocates both buffers. The error wraps ErrSurfaceAlloc.
func NewEbitenSurface(width, height int) (s *EbitenSurface, err error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrSurfaceAlloc, width, height)
	}
	defer func() {
		// ebiten panics when the graphics driver cannot allocate.
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrSurfaceAlloc, r)
		}
	}()
	s = &EbitenSurface{
		back:   ebiten.NewImage(width, height),
		front:  ebiten.NewImage(width, height),
		clip:   Rect{0, 0, width, height},
		images: make(map[image.Image]*ebiten.Image),
	}
	s.SetFace(defaultFace)
	return s, nil
}

// SetFace changes the font used by DrawText and TextSize.
func (s *EbitenSurface) SetFace(f text.Face) {
	s.face = f
	s.lineHeight = math.Ceil(f.Metrics().HAscent + f.Metrics().HDescent)
}

// Front returns the visible buffer.
func (s *EbitenSurface) Front() *ebiten.Image { return s.front }

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	b := s.back.Bounds()
	return b.Dx(), b.Dy()
}

// SetClip implements Surface.
func (s *EbitenSurface) SetClip(r Rect) {
	w, h := s.Size()
	s.clip = r.Intersect(Rect{0, 0, w, h})
}

// target returns the clipped view of the back buffer. SubImage keeps
// absolute coordinates, so callers draw in screen space.
func (s *EbitenSurface) target() (*ebiten.Image, bool) {
	if s.clip.Empty() {
		return nil, false
	}
	return s.back.SubImage(s.clip.Image()).(*ebiten.Image), true
}

// FillRect implements Surface.
func (s *EbitenSurface) FillRect(r Rect, c Color) {
	dst, ok := s.target()
	if !ok || r.Empty() {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

// GradientRect implements Surface with one-pixel bands.
func (s *EbitenSurface) GradientRect(r Rect, from, to Color, vertical bool) {
	dst, ok := s.target()
	if !ok || r.Empty() {
		return
	}
	steps := r.Width
	if vertical {
		steps = r.Height
	}
	for i := 0; i < steps; i++ {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		c := from.Lerp(to, t)
		if vertical {
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y+i), float32(r.Width), 1, c, false)
		} else {
			vector.DrawFilledRect(dst, float32(r.X+i), float32(r.Y), 1, float32(r.Height), c, false)
		}
	}
}

// StrokeRect implements Surface.
func (s *EbitenSurface) StrokeRect(r Rect, c Color) {
	dst, ok := s.target()
	if !ok || r.Empty() {
		return
	}
	vector.StrokeRect(dst, float32(r.X)+0.5, float32(r.Y)+0.5, float32(r.Width-1), float32(r.Height-1), 1, c, false)
}

// Line implements Surface.
func (s *EbitenSurface) Line(x0, y0, x1, y1 int, c Color) {
	dst, ok := s.target()
	if !ok {
		return
	}
	vector.StrokeLine(dst, float32(x0)+0.5, float32(y0)+0.5, float32(x1)+0.5, float32(y1)+0.5, 1, c, false)
}

func (s *EbitenSurface) ebitenImage(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.images[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	s.images[img] = e
	return e
}

// DrawImage implements Surface. Converted images are cached by identity,
// so callers must not mutate a bitmap after first drawing it.
func (s *EbitenSurface) DrawImage(img image.Image, dst Rect, mode ImageMode) {
	target, ok := s.target()
	if !ok || img == nil || dst.Empty() {
		return
	}
	src := s.ebitenImage(img)
	b := src.Bounds()
	iw, ih := b.Dx(), b.Dy()
	if iw == 0 || ih == 0 {
		return
	}
	area := target.SubImage(dst.Intersect(s.clip).Image()).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	switch mode {
	case ImageStretch:
		op.GeoM.Scale(float64(dst.Width)/float64(iw), float64(dst.Height)/float64(ih))
		op.GeoM.Translate(float64(dst.X), float64(dst.Y))
		area.DrawImage(src, op)
	case ImageTile:
		for y := dst.Y; y < dst.Bottom(); y += ih {
			for x := dst.X; x < dst.Right(); x += iw {
				op.GeoM.Reset()
				op.GeoM.Translate(float64(x), float64(y))
				area.DrawImage(src, op)
			}
		}
	default:
		op.GeoM.Translate(float64(dst.X), float64(dst.Y))
		area.DrawImage(src, op)
	}
}

// DrawText implements Surface. Text is a single line, vertically centered.
func (s *EbitenSurface) DrawText(str string, r Rect, c Color, align Align) {
	dst, ok := s.target()
	if !ok || str == "" {
		return
	}
	area := dst.SubImage(r.Intersect(s.clip).Image()).(*ebiten.Image)
	tw, th := s.TextSize(str)
	x, y := textOrigin(r, tw, th, align)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(area, str, s.face, op)
}

// TextSize implements Surface.
func (s *EbitenSurface) TextSize(str string) (int, int) {
	w, h := text.Measure(str, s.face, s.lineHeight)
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// Flush implements Surface by copying r from the back to the front buffer.
func (s *EbitenSurface) Flush(r Rect) error {
	w, h := s.Size()
	r = r.Intersect(Rect{0, 0, w, h})
	if r.Empty() {
		return nil
	}
	region := s.back.SubImage(r.Image()).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy}
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	s.front.DrawImage(region, op)
	return nil
}
