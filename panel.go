package sprig

import "sync"

// Panel is a container with a background fill and an optional one-pixel
// border.
type Panel struct {
	*Control

	mu         sync.Mutex
	background Color
	border     Color
	gradient   *[2]Color
}

// NewPanel creates an empty panel.
func NewPanel(name string) *Panel {
	p := &Panel{}
	p.Control = NewContainer(name, p)
	return p
}

// SetBackground sets the fill color. The zero Color uses the theme.
func (p *Panel) SetBackground(c Color) {
	p.mu.Lock()
	p.background, p.gradient = c, nil
	p.mu.Unlock()
	p.Invalidate()
}

// SetGradient fills the panel top to bottom from one color to the other.
func (p *Panel) SetGradient(from, to Color) {
	p.mu.Lock()
	p.gradient = &[2]Color{from, to}
	p.mu.Unlock()
	p.Invalidate()
}

// SetBorder sets the border color. Transparent disables the border.
func (p *Panel) SetBorder(c Color) {
	p.mu.Lock()
	p.border = c
	p.mu.Unlock()
	p.Invalidate()
}

// Paint implements Painter.
func (p *Panel) Paint(c *Control, s Surface, clip Rect) {
	p.mu.Lock()
	bg, border, grad := p.background, p.border, p.gradient
	p.mu.Unlock()
	b := c.Bounds()
	switch {
	case grad != nil:
		s.GradientRect(b, grad[0], grad[1], true)
	default:
		if bg == (Color{}) {
			bg = c.config().Theme.Background
		}
		s.FillRect(b, bg)
	}
	if border.A != 0 {
		s.StrokeRect(b, border)
	}
}

// ScrollPanel is a Panel whose content can be larger than its bounds. Its
// required extent tracks the bounding box of its children in local
// coordinates; dragging the background pans the content.
type ScrollPanel struct {
	*Panel
}

// NewScrollPanel creates an empty scrollable panel.
func NewScrollPanel(name string) *ScrollPanel {
	p := &Panel{}
	sp := &ScrollPanel{Panel: p}
	p.Control = NewContainer(name, sp)
	p.MakeScrollable()
	return sp
}

// Paint implements Painter.
func (sp *ScrollPanel) Paint(c *Control, s Surface, clip Rect) {
	sp.Panel.Paint(c, s, clip)
}

// ChildLayoutChanged implements ChildLayoutObserver by resizing the
// required extent to the children's bounding box.
func (sp *ScrollPanel) ChildLayoutChanged(c *Control) {
	var w, h int
	for _, child := range c.Children() {
		if !child.Visible() {
			continue
		}
		w = max(w, child.X()+child.Width())
		h = max(h, child.Y()+child.Height())
	}
	c.SetRequiredSize(w, h)
}
