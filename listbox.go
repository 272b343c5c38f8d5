package sprig

import "sync"

// DefaultItemHeight is the row height of a new ListBox.
const DefaultItemHeight = 20

// ListBox is a scrollable list of text rows. Its required height is the
// number of items times the item height; tapping a row selects it.
type ListBox struct {
	*Control

	mu         sync.Mutex
	items      []string
	itemHeight int
	selected   int

	// OnSelect, when set, is called after the selection changes by touch.
	OnSelect func(l *ListBox, index int)
}

// NewListBox creates an empty list.
func NewListBox(name string) *ListBox {
	l := &ListBox{itemHeight: DefaultItemHeight, selected: -1}
	l.Control = NewControl(name, l)
	l.MakeScrollable()
	l.OnTap(l.tapped)
	return l
}

// SetItems replaces the rows and clears the selection.
func (l *ListBox) SetItems(items []string) {
	l.mu.Lock()
	l.items = append([]string(nil), items...)
	l.selected = -1
	n, ih := len(l.items), l.itemHeight
	l.mu.Unlock()
	l.SetRequiredHeight(n * ih)
	l.Invalidate()
}

// AddItem appends a row.
func (l *ListBox) AddItem(item string) {
	l.mu.Lock()
	l.items = append(l.items, item)
	n, ih := len(l.items), l.itemHeight
	l.mu.Unlock()
	l.SetRequiredHeight(n * ih)
	l.Invalidate()
}

// Items returns a copy of the rows.
func (l *ListBox) Items() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.items...)
}

// Len returns the number of rows.
func (l *ListBox) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// ItemHeight returns the row height.
func (l *ListBox) ItemHeight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.itemHeight
}

// SetItemHeight changes the row height. Panics if h is not positive.
func (l *ListBox) SetItemHeight(h int) {
	if h <= 0 {
		panic("sprig: item height must be positive")
	}
	l.mu.Lock()
	l.itemHeight = h
	n := len(l.items)
	l.mu.Unlock()
	l.SetRequiredHeight(n * h)
	l.Invalidate()
}

// Selected returns the selected index, or -1.
func (l *ListBox) Selected() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// SetSelected selects index, or clears the selection with -1. Panics when
// index is out of range.
func (l *ListBox) SetSelected(index int) {
	l.mu.Lock()
	if index < -1 || index >= len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		panic(outOfRange(index, n))
	}
	l.selected = index
	l.mu.Unlock()
	l.Invalidate()
}

// IndexAt returns the row under screen point y, accounting for the scroll
// offset, or -1 when y is past the last row.
func (l *ListBox) IndexAt(y int) int {
	top, sy := l.Top(), l.ScrollY()
	l.mu.Lock()
	defer l.mu.Unlock()
	rel := y - top + sy
	if rel < 0 {
		return -1
	}
	i := rel / l.itemHeight
	if i >= len(l.items) {
		return -1
	}
	return i
}

// ScrollToItem scrolls the least amount needed to show row index.
func (l *ListBox) ScrollToItem(index int) {
	ih := l.ItemHeight()
	top, h, sy := index*ih, l.Height(), l.ScrollY()
	switch {
	case top < sy:
		l.SetScrollY(top)
	case top+ih > sy+h:
		l.SetScrollY(top + ih - h)
	}
}

func (l *ListBox) tapped(e *Event) {
	i := l.IndexAt(e.Y)
	if i < 0 {
		return
	}
	l.mu.Lock()
	changed := l.selected != i
	l.selected = i
	onSelect := l.OnSelect
	l.mu.Unlock()
	if !changed {
		return
	}
	l.Invalidate()
	l.emit(EventSelect, &Event{Time: e.Time, X: e.X, Y: e.Y, Index: i})
	if onSelect != nil {
		onSelect(l, i)
	}
}

// Paint implements Painter.
func (l *ListBox) Paint(c *Control, s Surface, clip Rect) {
	theme := c.config().Theme
	b := c.Bounds()
	sy := c.ScrollY()
	l.mu.Lock()
	items, ih, sel := l.items, l.itemHeight, l.selected
	l.mu.Unlock()

	s.FillRect(b, theme.Background)
	first := max(0, (clip.Y-b.Y+sy)/ih)
	for i := first; i < len(items); i++ {
		row := Rect{b.X, b.Y + i*ih - sy, b.Width, ih}
		if row.Y >= clip.Bottom() {
			break
		}
		if i == sel {
			s.FillRect(row, theme.Accent)
		}
		s.DrawText(items[i], Rect{row.X + 4, row.Y, row.Width - 8, row.Height}, theme.Foreground, AlignLeft)
	}
	s.StrokeRect(b, theme.Border)
}
