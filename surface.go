package sprig

import "image"

// Surface is the drawing target a Display paints into. Implementations keep
// a back buffer; drawing calls land in the back buffer, clipped to the last
// SetClip rectangle, and Flush copies a region of it to the visible front.
// All coordinates are screen coordinates.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)
	// SetClip restricts subsequent drawing to r.
	SetClip(r Rect)
	FillRect(r Rect, c Color)
	// GradientRect fills r blending from one color to the other, top to
	// bottom when vertical, else left to right.
	GradientRect(r Rect, from, to Color, vertical bool)
	// StrokeRect outlines r with a one-pixel border.
	StrokeRect(r Rect, c Color)
	Line(x0, y0, x1, y1 int, c Color)
	DrawImage(img image.Image, dst Rect, mode ImageMode)
	DrawText(s string, r Rect, c Color, align Align)
	// TextSize measures s in the surface's font.
	TextSize(s string) (width, height int)
	// Flush makes the back-buffer contents of r visible.
	Flush(r Rect) error
}

// textOrigin returns where a line of text of size (tw, th) starts inside r.
func textOrigin(r Rect, tw, th int, align Align) (int, int) {
	y := r.Y + (r.Height-th)/2
	switch align {
	case AlignCenter:
		return r.X + (r.Width-tw)/2, y
	case AlignRight:
		return r.Right() - tw, y
	default:
		return r.X, y
	}
}
