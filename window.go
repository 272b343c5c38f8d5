package sprig

import "sync"

// TitleBarHeight is the height of a Window's title bar.
const TitleBarHeight = 18

// Window is a movable container with a title bar. Touching it brings it to
// the front of its parent; dragging the title bar moves it.
type Window struct {
	*Control

	mu           sync.Mutex
	title        string
	dragging     bool
	grabX, grabY int

	// OnMove, when set, is called after each drag step.
	OnMove func(w *Window)
}

// NewWindow creates a window with the given title.
func NewWindow(name, title string) *Window {
	w := &Window{title: title}
	w.Control = NewContainer(name, w)
	return w
}

// Title returns the title text.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// SetTitle changes the title text and repaints the title bar.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	b := w.Bounds()
	w.InvalidateRect(Rect{b.X, b.Y, b.Width, TitleBarHeight})
}

// ContentBounds returns the screen rectangle below the title bar.
func (w *Window) ContentBounds() Rect {
	b := w.Bounds()
	return Rect{b.X, b.Y + TitleBarHeight, b.Width, max(0, b.Height-TitleBarHeight)}
}

// Dragging reports whether the title bar is being dragged.
func (w *Window) Dragging() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dragging
}

// TouchDown implements TouchDownHandler.
func (w *Window) TouchDown(c *Control, e *Event) {
	if p := c.Parent(); p != nil {
		p.BringToFront(c)
	}
	b := c.Bounds()
	if e.Y >= b.Y+TitleBarHeight {
		return
	}
	w.mu.Lock()
	w.dragging = true
	w.grabX, w.grabY = e.X-c.X(), e.Y-c.Y()
	w.mu.Unlock()
	e.Handled = true
}

// TouchMove implements TouchMoveHandler.
func (w *Window) TouchMove(c *Control, e *Event) {
	w.mu.Lock()
	if !w.dragging {
		w.mu.Unlock()
		return
	}
	x, y := e.X-w.grabX, e.Y-w.grabY
	onMove := w.OnMove
	w.mu.Unlock()

	c.SetPosition(x, y)
	e.Handled = true
	if onMove != nil {
		onMove(w)
	}
}

// TouchUp implements TouchUpHandler.
func (w *Window) TouchUp(c *Control, e *Event) {
	w.mu.Lock()
	wasDragging := w.dragging
	w.dragging = false
	w.mu.Unlock()
	if wasDragging {
		e.Handled = true
	}
}

// Paint implements Painter.
func (w *Window) Paint(c *Control, s Surface, clip Rect) {
	theme := c.config().Theme
	title := w.Title()
	b := c.Bounds()
	s.FillRect(b, theme.Background)
	bar := Rect{b.X, b.Y, b.Width, min(TitleBarHeight, b.Height)}
	s.GradientRect(bar, theme.TitleBar, theme.TitleBar.Lerp(ColorBlack, 0.3), true)
	s.DrawText(title, Rect{bar.X + 4, bar.Y, bar.Width - 8, bar.Height}, theme.TitleText, AlignLeft)
	s.StrokeRect(b, theme.Border)
}
