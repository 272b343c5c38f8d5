package sprig

import (
	"sync"
	"sync/atomic"
	"unicode"
)

// KeyboardHeight is the default height of an opened Keyboard.
const KeyboardHeight = 160

type keyKind uint8

const (
	keyChar keyKind = iota
	keyShift
	keyBackspace
	keyEnter
	keySpace
)

type keyDef struct {
	label string
	r     rune
	kind  keyKind
	span  int // width in half-key units
}

var keyboardLayout = [][]keyDef{
	charRow("1234567890"),
	charRow("qwertyuiop"),
	charRow("asdfghjkl"),
	append(append([]keyDef{{label: "Shift", kind: keyShift, span: 3}},
		charRow("zxcvbnm")...), keyDef{label: "Del", r: KeyBackspace, kind: keyBackspace, span: 3}),
	{
		{label: ",", r: ',', span: 2},
		{label: "Space", r: ' ', kind: keySpace, span: 12},
		{label: ".", r: '.', span: 2},
		{label: "Enter", r: KeyEnter, kind: keyEnter, span: 4},
	},
}

func charRow(s string) []keyDef {
	row := make([]keyDef, 0, len(s))
	for _, r := range s {
		row = append(row, keyDef{label: string(r), r: r, span: 2})
	}
	return row
}

// Keyboard is an on-screen key grid. Tapping a key delivers a Key event to
// the target control. Key highlights are not painted immediately: they mark
// the keyboard dirty, and a poller task on the display's scheduler turns
// any number of requests per tick into one render and flush.
type Keyboard struct {
	*Control

	mu      sync.Mutex
	target  *Control
	pressed int // flat key index, -1 when none
	shifted bool
	poller  *Task

	pending atomic.Bool
}

// NewKeyboard creates a keyboard that types into target. target may be nil
// and set later.
func NewKeyboard(name string, target *Control) *Keyboard {
	k := &Keyboard{target: target, pressed: -1}
	k.Control = NewControl(name, k)
	return k
}

// SetTarget changes the control receiving keys.
func (k *Keyboard) SetTarget(target *Control) {
	k.mu.Lock()
	k.target = target
	k.mu.Unlock()
}

// Target returns the control receiving keys.
func (k *Keyboard) Target() *Control {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.target
}

// Shifted reports whether the next letter is upper case.
func (k *Keyboard) Shifted() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.shifted
}

// IsOpen reports whether the keyboard is attached to a parent.
func (k *Keyboard) IsOpen() bool { return k.Parent() != nil }

// Open docks the keyboard along the bottom of parent, on top of its other
// children, and starts the render poller.
func (k *Keyboard) Open(parent *Control) {
	h := min(KeyboardHeight, parent.Height())
	k.SetBounds(0, parent.Height()-h, parent.Width(), h)
	parent.AddChild(k.Control)

	sched := k.scheduler()
	if sched == nil {
		return
	}
	task := sched.Every(k.config().KeyboardPollInterval, k.poll)
	k.mu.Lock()
	old := k.poller
	k.poller = task
	k.mu.Unlock()
	if old != nil {
		old.Cancel()
	}
}

// Close stops the poller and detaches the keyboard.
func (k *Keyboard) Close() {
	k.mu.Lock()
	task := k.poller
	k.poller = nil
	k.pressed = -1
	k.mu.Unlock()
	if task != nil {
		task.Cancel()
	}
	k.pending.Store(false)
	k.RemoveFromParent()
}

// requestRender marks the keyboard dirty for the next poll.
func (k *Keyboard) requestRender() {
	k.pending.Store(true)
}

func (k *Keyboard) poll() {
	if k.pending.Swap(false) {
		k.Invalidate()
	}
}

type keyRect struct {
	def  keyDef
	rect Rect
}

// layout places every key inside b. Rows are centered; a half-key unit is
// sized so the widest row fills the width.
func layout(b Rect) []keyRect {
	widest := 0
	for _, row := range keyboardLayout {
		units := 0
		for _, kd := range row {
			units += kd.span
		}
		widest = max(widest, units)
	}
	unit := b.Width / widest
	rowH := b.Height / len(keyboardLayout)
	out := make([]keyRect, 0, 48)
	for ri, row := range keyboardLayout {
		units := 0
		for _, kd := range row {
			units += kd.span
		}
		x := b.X + (b.Width-units*unit)/2
		y := b.Y + ri*rowH
		for _, kd := range row {
			w := kd.span * unit
			out = append(out, keyRect{def: kd, rect: Rect{x, y, w, rowH}})
			x += w
		}
	}
	return out
}

func keyAt(keys []keyRect, x, y int) int {
	for i, kr := range keys {
		if kr.rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// TouchDown implements TouchDownHandler. It highlights the key under the
// finger; the base control still tracks the touch.
func (k *Keyboard) TouchDown(c *Control, e *Event) {
	idx := keyAt(layout(c.Bounds()), e.X, e.Y)
	k.mu.Lock()
	k.pressed = idx
	k.mu.Unlock()
	k.requestRender()
}

// TouchMove implements TouchMoveHandler. Sliding off the pressed key
// releases the highlight.
func (k *Keyboard) TouchMove(c *Control, e *Event) {
	keys := layout(c.Bounds())
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.pressed >= 0 && !keys[k.pressed].rect.Contains(e.X, e.Y) {
		k.pressed = -1
		k.requestRender()
	}
}

// TouchUp implements TouchUpHandler. Lifting on the highlighted key types it.
func (k *Keyboard) TouchUp(c *Control, e *Event) {
	keys := layout(c.Bounds())
	k.mu.Lock()
	idx := k.pressed
	k.pressed = -1
	target := k.target
	k.mu.Unlock()
	if idx < 0 {
		return
	}
	k.requestRender()
	if !keys[idx].rect.Contains(e.X, e.Y) {
		return
	}
	k.press(keys[idx].def, target)
}

func (k *Keyboard) press(kd keyDef, target *Control) {
	if kd.kind == keyShift {
		k.mu.Lock()
		k.shifted = !k.shifted
		k.mu.Unlock()
		return
	}
	r := kd.r
	k.mu.Lock()
	if k.shifted && unicode.IsLetter(r) {
		r = unicode.ToUpper(r)
		k.shifted = false
	}
	k.mu.Unlock()
	if target != nil {
		target.DispatchKey(&Event{Type: EventKey, Key: r})
	}
}

// Paint implements Painter.
func (k *Keyboard) Paint(c *Control, s Surface, clip Rect) {
	theme := c.config().Theme
	k.mu.Lock()
	pressed, shifted := k.pressed, k.shifted
	k.mu.Unlock()

	b := c.Bounds()
	s.FillRect(b, theme.Background.Lerp(ColorBlack, 0.4))
	for i, kr := range layout(b) {
		r := Rect{kr.rect.X + 1, kr.rect.Y + 1, kr.rect.Width - 2, kr.rect.Height - 2}
		if !r.Intersects(clip) {
			continue
		}
		face := theme.KeyFace
		if i == pressed || (kr.def.kind == keyShift && shifted) {
			face = theme.KeyPressed
		}
		s.FillRect(r, face)
		label := kr.def.label
		if shifted && kr.def.kind == keyChar {
			label = string(unicode.ToUpper(kr.def.r))
		}
		s.DrawText(label, r, theme.Foreground, AlignCenter)
	}
}
