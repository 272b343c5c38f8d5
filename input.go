package sprig

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// swipeMaxDuration is the longest press that can still count as a swipe.
const swipeMaxDuration = 300 * time.Millisecond

// pointerState tracks the single primary pointer fed from Update: the mouse
// or the first active touch.
type pointerState struct {
	down           bool
	touch          bool
	id             ebiten.TouchID
	startX, startY int
	lastX, lastY   int
	start          time.Time
}

// Update reads one frame of input from Ebitengine and feeds it to the
// screen. Injected events take precedence over real input; a frame that
// consumes an injected event ignores the mouse and touch screen.
func (d *Display) Update() error {
	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	if !d.processInjectedInput() {
		d.processPointerInput()
	}
	d.processKeys()
	return nil
}

// processPointerInput picks the primary pointer: an active touch wins over
// the mouse, and a touch keeps ownership until it is released.
func (d *Display) processPointerInput() {
	p := &d.ptr
	if p.down && p.touch {
		if inpututil.IsTouchJustReleased(p.id) {
			x, y := inpututil.TouchPositionInPreviousTick(p.id)
			d.feedPointer(x, y, false)
			return
		}
		x, y := ebiten.TouchPosition(p.id)
		d.feedPointer(x, y, true)
		return
	}
	if !p.down {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			p.touch = true
			p.id = ids[0]
			x, y := ebiten.TouchPosition(p.id)
			d.feedPointer(x, y, true)
			return
		}
	}
	p.touch = false
	x, y := ebiten.CursorPosition()
	d.feedPointer(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// feedPointer runs the primary pointer state machine: a press edge becomes
// TouchDown, movement while down becomes TouchMove, and the release edge
// becomes TouchUp followed by a Gesture when the press was a quick swipe.
func (d *Display) feedPointer(x, y int, pressed bool) {
	p := &d.ptr
	switch {
	case pressed && !p.down:
		p.down = true
		p.startX, p.startY = x, y
		p.lastX, p.lastY = x, y
		p.start = d.sched.Now()
		d.TouchDown(x, y)
	case pressed && p.down:
		if x != p.lastX || y != p.lastY {
			p.lastX, p.lastY = x, y
			d.TouchMove(x, y)
		}
	case !pressed && p.down:
		p.down = false
		if x != p.lastX || y != p.lastY {
			d.TouchMove(x, y)
		}
		d.TouchUp(x, y)
		if dir := classifySwipe(x-p.startX, y-p.startY, d.cfg.SwipeDistance); dir != GestureNone &&
			d.sched.Now().Sub(p.start) <= swipeMaxDuration {
			d.Gesture(dir)
		}
	}
}

// classifySwipe returns the dominant direction of a movement of at least
// minDist pixels, or GestureNone.
func classifySwipe(dx, dy, minDist int) GestureDirection {
	adx, ady := abs(dx), abs(dy)
	switch {
	case adx < minDist && ady < minDist:
		return GestureNone
	case adx >= ady && dx < 0:
		return GestureLeft
	case adx >= ady:
		return GestureRight
	case dy < 0:
		return GestureUp
	default:
		return GestureDown
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var specialKeys = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyEscape, KeyEscape},
}

// processKeys forwards typed characters and editing keys along the
// active-child chain.
func (d *Display) processKeys() {
	d.chars = ebiten.AppendInputChars(d.chars[:0])
	for _, r := range d.chars {
		d.Key(r)
	}
	for _, k := range specialKeys {
		if inpututil.IsKeyJustPressed(k.key) || repeating(k.key) {
			d.Key(k.r)
		}
	}
}

// repeating reports auto-repeat for a held key: after 30 ticks, every 3.
func repeating(k ebiten.Key) bool {
	n := inpututil.KeyPressDuration(k)
	return n >= 30 && (n-30)%3 == 0
}
