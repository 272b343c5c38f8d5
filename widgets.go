package sprig

import (
	"fmt"
	"sync"
)

func outOfRange(i, n int) string {
	return fmt.Sprintf("sprig: index %d out of range [0,%d)", i, n)
}

// Label paints a single line of text.
type Label struct {
	*Control

	mu    sync.Mutex
	text  string
	color Color
	align Align
}

// NewLabel creates a label.
func NewLabel(name, text string) *Label {
	l := &Label{text: text}
	l.Control = NewControl(name, l)
	return l
}

// Text returns the label text.
func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// SetText changes the text and repaints.
func (l *Label) SetText(text string) {
	l.mu.Lock()
	changed := l.text != text
	l.text = text
	l.mu.Unlock()
	if changed {
		l.Invalidate()
	}
}

// SetColor sets the text color. The zero Color uses the theme.
func (l *Label) SetColor(c Color) {
	l.mu.Lock()
	l.color = c
	l.mu.Unlock()
	l.Invalidate()
}

// SetAlign sets horizontal alignment.
func (l *Label) SetAlign(a Align) {
	l.mu.Lock()
	l.align = a
	l.mu.Unlock()
	l.Invalidate()
}

// Paint implements Painter.
func (l *Label) Paint(c *Control, s Surface, clip Rect) {
	l.mu.Lock()
	text, col, align := l.text, l.color, l.align
	l.mu.Unlock()
	if col == (Color{}) {
		col = c.config().Theme.Foreground
	}
	s.DrawText(text, c.Bounds(), col, align)
}

// Button is a tappable label with a face that lights up while pressed.
type Button struct {
	*Control

	mu   sync.Mutex
	text string
}

// NewButton creates a button. onTap may be nil.
func NewButton(name, text string, onTap func(*Event)) *Button {
	b := &Button{text: text}
	b.Control = NewControl(name, b)
	b.On(EventTouchDown, func(*Event) { b.Invalidate() })
	b.On(EventTouchUp, func(*Event) { b.Invalidate() })
	if onTap != nil {
		b.OnTap(onTap)
	}
	return b
}

// Text returns the caption.
func (b *Button) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// SetText changes the caption.
func (b *Button) SetText(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
	b.Invalidate()
}

// Pressed reports whether the button is held down. A touch taken over by a
// scrolling parent no longer counts.
func (b *Button) Pressed() bool { return b.Touching() }

// Paint implements Painter.
func (b *Button) Paint(c *Control, s Surface, clip Rect) {
	theme := c.config().Theme
	text, pressed := b.Text(), c.Touching()

	r := c.Bounds()
	face := theme.KeyFace
	if pressed {
		face = theme.KeyPressed
	}
	if !c.Enabled() {
		face = face.Lerp(theme.Background, 0.5)
	}
	s.GradientRect(r, face.Lerp(ColorWhite, 0.1), face, true)
	s.StrokeRect(r, theme.Border)
	s.DrawText(text, r, theme.Foreground, AlignCenter)
}

// TextField is a single-line editable text box. It takes focus when
// touched and edits its text from Key events: printable runes append,
// KeyBackspace deletes the last rune, KeyEnter fires OnSubmit.
type TextField struct {
	*Control

	mu      sync.Mutex
	text    []rune
	focused bool

	// OnSubmit, when set, is called when Enter is pressed.
	OnSubmit func(f *TextField, text string)
	// OnChange, when set, is called after each edit.
	OnChange func(f *TextField, text string)
}

// NewTextField creates an empty text field.
func NewTextField(name string) *TextField {
	f := &TextField{}
	f.Control = NewControl(name, f)
	return f
}

// Text returns the current text.
func (f *TextField) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.text)
}

// SetText replaces the text.
func (f *TextField) SetText(text string) {
	f.mu.Lock()
	f.text = []rune(text)
	f.mu.Unlock()
	f.Invalidate()
}

// Focused reports whether the field is its container's active child.
func (f *TextField) Focused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused
}

// CanFocus implements Focuser.
func (f *TextField) CanFocus() bool { return true }

// Activate implements Focuser.
func (f *TextField) Activate(c *Control) {
	f.mu.Lock()
	f.focused = true
	f.mu.Unlock()
	c.Invalidate()
}

// Blur implements Focuser.
func (f *TextField) Blur(c *Control) {
	f.mu.Lock()
	f.focused = false
	f.mu.Unlock()
	c.Invalidate()
}

// Key implements KeyHandler.
func (f *TextField) Key(c *Control, e *Event) {
	f.mu.Lock()
	switch {
	case e.Key == KeyEnter:
		text, submit := string(f.text), f.OnSubmit
		f.mu.Unlock()
		e.Handled = true
		if submit != nil {
			submit(f, text)
		}
		return
	case e.Key == KeyBackspace:
		if len(f.text) > 0 {
			f.text = f.text[:len(f.text)-1]
		}
	case e.Key >= ' ':
		f.text = append(f.text, e.Key)
	default:
		f.mu.Unlock()
		return
	}
	text, change := string(f.text), f.OnChange
	f.mu.Unlock()
	e.Handled = true
	c.Invalidate()
	if change != nil {
		change(f, text)
	}
}

// Paint implements Painter.
func (f *TextField) Paint(c *Control, s Surface, clip Rect) {
	theme := c.config().Theme
	f.mu.Lock()
	text, focused := string(f.text), f.focused
	f.mu.Unlock()

	r := c.Bounds()
	s.FillRect(r, theme.Background.Lerp(ColorBlack, 0.3))
	border := theme.Border
	if focused {
		border = theme.Accent
	}
	s.StrokeRect(r, border)
	inner := Rect{r.X + 4, r.Y, r.Width - 8, r.Height}
	s.DrawText(text, inner, theme.Foreground, AlignLeft)
	if focused {
		tw, th := s.TextSize(text)
		x := inner.X + min(tw, inner.Width-1)
		y := r.Y + (r.Height-th)/2
		s.Line(x, y, x, y+th, theme.Foreground)
	}
}
