package sprig

import "time"

type tapHoldState uint8

const (
	tapHoldIdle tapHoldState = iota
	tapHoldWaiting
)

// touchState is the per-control touch state machine:
// Idle -> Down -> (TapHoldWaiting | cancelled).
type touchState struct {
	touching       bool
	startX, startY int
	lastX, lastY   int
	lastTap        time.Time
	dragging       bool

	hold         tapHoldState
	holdDeadline time.Time
	holdTask     *Task
	holdFired    bool
}

// Touching reports whether the control is tracking a touch.
func (c *Control) Touching() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.touch.touching
}

// LastTouch returns the last tracked touch point in screen coordinates.
func (c *Control) LastTouch() (int, int) {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.touch.lastX, c.touch.lastY
}

func (c *Control) acceptsInput() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.enabled && c.visible && !c.suspended && !c.disposed
}

// HitTest reports whether the screen point (x, y) hits this control.
func (c *Control) HitTest(x, y int) bool {
	if h, ok := c.behavior.(HitTester); ok {
		return h.HitTest(c, x, y)
	}
	return c.Bounds().Contains(x, y)
}

// --- TouchDown ---

// DispatchTouchDown runs the touch-down state machine. Containers give their
// children first refusal, topmost first; the first visible child that hits
// and accepts ends the pass. e.Handled reports whether anything accepted.
func (c *Control) DispatchTouchDown(e *Event) {
	if !c.acceptsInput() {
		return
	}
	parent := c.Parent()
	if h, ok := c.behavior.(TouchDownHandler); ok {
		h.TouchDown(c, e)
		if e.Handled {
			return
		}
	}
	if c.kids != nil {
		for _, child := range c.snapshotReversed() {
			if !child.ownedBy(c) || !child.Visible() {
				continue
			}
			if !child.HitTest(e.X, e.Y) {
				continue
			}
			child.DispatchTouchDown(e)
			if !child.ownedBy(c) {
				// Removed during its own dispatch: skipped for the rest of
				// the pass.
				e.Handled = false
				continue
			}
			if !e.Handled {
				continue
			}
			treeMu.Lock()
			c.kids.touchTarget = child
			treeMu.Unlock()
			// A container whose own active child changed joins the
			// focus chain so keys reach the focused descendant.
			if canFocus(child) || child.ActiveChild() != nil {
				c.SetActiveChild(child)
			}
			return
		}
	}
	if parent != nil && !c.ownedBy(parent) {
		return
	}
	// Nothing above claimed the touch, so this control tracks it itself.
	// Containers included: a tap on empty background reaches the
	// container's own listeners.
	c.beginTouch(e)
}

func (c *Control) beginTouch(e *Event) {
	treeMu.Lock()
	t := &c.touch
	t.touching = true
	t.startX, t.startY = e.X, e.Y
	t.lastX, t.lastY = e.X, e.Y
	t.dragging = false
	t.holdFired = false
	treeMu.Unlock()

	e.Handled = true
	if c.scroll != nil {
		c.holdScrollbars()
	}
	c.armTapHold()
	c.emit(EventTouchDown, e)
}

// --- Tap-hold ---

func (c *Control) armTapHold() {
	sched := c.scheduler()
	if sched == nil {
		return
	}
	delay := c.config().TapHoldDelay
	treeMu.Lock()
	if c.touch.holdTask != nil {
		c.touch.holdTask.Cancel()
	}
	c.touch.hold = tapHoldWaiting
	c.touch.holdDeadline = sched.Now().Add(delay)
	treeMu.Unlock()

	task := sched.After(delay, c.tapHoldExpired)

	treeMu.Lock()
	c.touch.holdTask = task
	treeMu.Unlock()
}

func (c *Control) tapHoldExpired() {
	treeMu.Lock()
	t := &c.touch
	if t.hold != tapHoldWaiting || !t.touching || t.dragging {
		treeMu.Unlock()
		return
	}
	t.hold = tapHoldIdle
	t.holdTask = nil
	t.holdFired = true
	x, y := t.lastX, t.lastY
	treeMu.Unlock()

	c.emit(EventTapHold, &Event{X: x, Y: y})
}

func (c *Control) cancelTapHold() {
	treeMu.Lock()
	task := c.touch.holdTask
	c.touch.holdTask = nil
	c.touch.hold = tapHoldIdle
	treeMu.Unlock()
	if task != nil {
		task.Cancel()
	}
}

// cancelTouch abandons any touch tracked by this control or, for
// containers, by the child holding the touch.
func (c *Control) cancelTouch() {
	c.cancelTapHold()
	treeMu.Lock()
	c.touch.touching = false
	c.touch.dragging = false
	var target *Control
	if c.kids != nil {
		target = c.kids.touchTarget
		c.kids.touchTarget = nil
	}
	treeMu.Unlock()
	if target != nil {
		target.cancelTouch()
	}
	if c.scroll != nil {
		c.releaseScrollbars()
	}
}

// --- TouchUp ---

// DispatchTouchUp ends the touch. The child that accepted the matching
// touch-down receives it regardless of where the finger was lifted. A
// control that tracked the touch emits Tap when released inside its bounds,
// or DoubleTap when its previous tap was within Config.DoubleTapWindow.
func (c *Control) DispatchTouchUp(e *Event) {
	c.cancelTapHold()
	if h, ok := c.behavior.(TouchUpHandler); ok {
		h.TouchUp(c, e)
		if e.Handled {
			c.cancelTouch()
			return
		}
	}
	if c.kids != nil {
		treeMu.Lock()
		target := c.kids.touchTarget
		c.kids.touchTarget = nil
		treeMu.Unlock()
		if target != nil && target.ownedBy(c) {
			target.DispatchTouchUp(e)
			if e.Handled {
				return
			}
		}
	}

	treeMu.Lock()
	t := &c.touch
	if !t.touching {
		treeMu.Unlock()
		return
	}
	t.touching = false
	dragging, holdFired := t.dragging, t.holdFired
	t.dragging = false
	startX, startY := t.startX, t.startY
	treeMu.Unlock()

	e.Handled = true
	if c.scroll != nil {
		c.releaseScrollbars()
	}
	c.emit(EventTouchUp, e)

	if dragging {
		c.emit(EventDragEnd, &Event{Time: e.Time, X: e.X, Y: e.Y, StartX: startX, StartY: startY})
		return
	}
	if holdFired || !c.acceptsInput() || !c.HitTest(e.X, e.Y) {
		return
	}

	now := e.Time
	if now.IsZero() {
		now = c.now()
	}
	window := c.config().DoubleTapWindow
	treeMu.Lock()
	last := t.lastTap
	double := !last.IsZero() && now.Sub(last) < window
	if double {
		// Reset so a third rapid tap starts a new pair.
		t.lastTap = time.Time{}
	} else {
		t.lastTap = now
	}
	treeMu.Unlock()

	if double {
		c.emit(EventDoubleTap, e)
	} else {
		c.emit(EventTap, e)
	}
}

// --- TouchMove ---

// DispatchTouchMove moves the tracked touch. Scrollable controls scroll by
// the delta against the last touch point; movement past
// Config.DragThreshold cancels tap-hold and turns the touch into a drag.
func (c *Control) DispatchTouchMove(e *Event) {
	if h, ok := c.behavior.(TouchMoveHandler); ok {
		h.TouchMove(c, e)
		if e.Handled {
			treeMu.Lock()
			c.touch.lastX, c.touch.lastY = e.X, e.Y
			treeMu.Unlock()
			return
		}
	}
	if c.kids != nil {
		treeMu.RLock()
		target := c.kids.touchTarget
		treeMu.RUnlock()
		if target != nil && target.ownedBy(c) {
			if c.shouldStealTouch(target, e) {
				c.stealTouch(target, e)
			} else {
				target.DispatchTouchMove(e)
				if e.Handled {
					return
				}
			}
		}
	}

	treeMu.Lock()
	t := &c.touch
	if !t.touching {
		treeMu.Unlock()
		return
	}
	dx, dy := e.X-t.lastX, e.Y-t.lastY
	t.lastX, t.lastY = e.X, e.Y
	startDrag := false
	if !t.dragging {
		sx, sy := e.X-t.startX, e.Y-t.startY
		limit := c.configLocked().DragThreshold
		if sx*sx+sy*sy > limit*limit {
			t.dragging = true
			startDrag = true
		}
	}
	dragging := t.dragging
	startX, startY := t.startX, t.startY
	treeMu.Unlock()

	e.Handled = true
	if startDrag {
		c.cancelTapHold()
		c.emit(EventDragStart, &Event{Time: e.Time, X: e.X, Y: e.Y, StartX: startX, StartY: startY,
			DeltaX: e.X - startX, DeltaY: e.Y - startY})
	}
	if dx == 0 && dy == 0 {
		return
	}
	c.emit(EventTouchMove, &Event{Time: e.Time, X: e.X, Y: e.Y, DeltaX: dx, DeltaY: dy})
	if c.scroll != nil {
		c.ScrollBy(-dx, -dy)
	}
	if dragging {
		c.emit(EventDrag, &Event{Time: e.Time, X: e.X, Y: e.Y, StartX: startX, StartY: startY, DeltaX: dx, DeltaY: dy})
	}
}

// shouldStealTouch reports whether a scrollable container takes over a
// touch from a non-scrolling child once it has moved past the drag
// threshold along a scrollable axis.
func (c *Control) shouldStealTouch(child *Control, e *Event) bool {
	if c.scroll == nil || child.scroll != nil {
		return false
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	t := &child.touch
	if !t.touching {
		return false
	}
	dx, dy := e.X-t.startX, e.Y-t.startY
	limit := c.configLocked().DragThreshold
	if dx*dx+dy*dy <= limit*limit {
		return false
	}
	return (c.scroll.needsX && dx != 0) || (c.scroll.needsY && dy != 0)
}

func (c *Control) stealTouch(child *Control, e *Event) {
	treeMu.RLock()
	lx, ly := child.touch.lastX, child.touch.lastY
	sx, sy := child.touch.startX, child.touch.startY
	treeMu.RUnlock()

	child.cancelTouch()
	// The child gets no TouchUp, so repaint it out of its pressed state.
	child.Invalidate()

	treeMu.Lock()
	c.kids.touchTarget = nil
	t := &c.touch
	t.touching = true
	t.startX, t.startY = sx, sy
	t.lastX, t.lastY = lx, ly
	t.dragging = false
	t.holdFired = false
	treeMu.Unlock()
	c.holdScrollbars()
}

// configLocked is config for callers already holding treeMu.
func (c *Control) configLocked() *Config {
	if d := c.findDisplayLocked(); d != nil {
		return &d.cfg
	}
	return &defaultConfig
}

// --- Gestures and keys ---

// DispatchGesture routes a swipe-class gesture down the active-child chain
// without hit-testing. The deepest control with a listener or hook claims it.
func (c *Control) DispatchGesture(e *Event) {
	if !c.acceptsInput() {
		return
	}
	if h, ok := c.behavior.(GestureHandler); ok {
		h.Gesture(c, e)
		if e.Handled {
			return
		}
	}
	if active := c.ActiveChild(); active != nil && active.ownedBy(c) {
		active.DispatchGesture(e)
		if e.Handled {
			return
		}
	}
	if c.emit(EventGesture, e) {
		e.Handled = true
	}
}

// DispatchKey routes a key down the active-child chain.
func (c *Control) DispatchKey(e *Event) {
	if !c.acceptsInput() {
		return
	}
	if h, ok := c.behavior.(KeyHandler); ok {
		h.Key(c, e)
		if e.Handled {
			return
		}
	}
	if active := c.ActiveChild(); active != nil && active.ownedBy(c) {
		active.DispatchKey(e)
		if e.Handled {
			return
		}
	}
	if c.emit(EventKey, e) {
		e.Handled = true
	}
}
