package sprig

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// --- Extension contract ---
//
// A concrete widget passes itself as the behavior value when constructing
// its Control. The Control checks the behavior for the optional interfaces
// below and calls them at the matching points of rendering and dispatch.

// Painter draws a control. clip is the screen rectangle being repainted; the
// surface clip is already set to it. Paint must not call Invalidate, Render
// or mutate the tree.
type Painter interface {
	Paint(c *Control, s Surface, clip Rect)
}

// TouchDownHandler sees a touch-down before the default behavior. Setting
// e.Handled claims the touch.
type TouchDownHandler interface {
	TouchDown(c *Control, e *Event)
}

// TouchUpHandler sees a touch-up before the default behavior.
type TouchUpHandler interface {
	TouchUp(c *Control, e *Event)
}

// TouchMoveHandler sees a touch-move before the default behavior.
type TouchMoveHandler interface {
	TouchMove(c *Control, e *Event)
}

// GestureHandler sees a gesture before it is routed to the active child.
type GestureHandler interface {
	Gesture(c *Control, e *Event)
}

// KeyHandler sees a key before it is routed to the active child.
type KeyHandler interface {
	Key(c *Control, e *Event)
}

// Focuser lets a control take part in active-child tracking.
type Focuser interface {
	CanFocus() bool
	Activate(c *Control)
	Blur(c *Control)
}

// HitTester overrides the default bounds hit test. x and y are screen
// coordinates.
type HitTester interface {
	HitTest(c *Control, x, y int) bool
}

// ChildLayoutObserver is told when a container's children were added,
// removed, moved or resized.
type ChildLayoutObserver interface {
	ChildLayoutChanged(c *Control)
}

// treeMu guards the structure and geometry of every control tree: child
// lists, parent links, offsets, sizes and flags. Mutators take it
// exclusively; renderers hold it shared for a whole paint pass so they never
// observe a half-applied reparent. Dispatch iterates snapshots taken under
// the shared lock and releases it before calling into handlers.
var treeMu sync.RWMutex

// Control is the scene-graph node. Container and scrolling behavior are
// optional capabilities switched on by NewContainer and MakeScrollable.
type Control struct {
	name string
	// Tag is opaque application data.
	Tag any

	x, y             int
	offsetX, offsetY int
	width, height    int

	enabled   bool
	visible   bool
	suspended bool
	fixed     bool

	parent  *Control
	display *Display // non-nil only on top-level surfaces

	behavior any

	touch  touchState
	kids   *childList
	scroll *scrollState

	handlers handlerRegistry
	gate     *semaphore.Weighted
	disposed bool
}

// NewControl creates a leaf control with zero geometry. behavior may
// implement any of the hook interfaces; it may be nil.
func NewControl(name string, behavior any) *Control {
	return &Control{
		name:     name,
		behavior: behavior,
		enabled:  true,
		visible:  true,
		gate:     semaphore.NewWeighted(1),
	}
}

// Name returns the control's fixed name.
func (c *Control) Name() string { return c.name }

// Behavior returns the behavior value passed at construction.
func (c *Control) Behavior() any { return c.behavior }

func (c *Control) String() string {
	return fmt.Sprintf("%q%v", c.name, c.Bounds())
}

// --- Geometry ---

// X returns the local x coordinate.
func (c *Control) X() int {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.x
}

// Y returns the local y coordinate.
func (c *Control) Y() int {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.y
}

// Width returns the control's width.
func (c *Control) Width() int {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.width
}

// Height returns the control's height.
func (c *Control) Height() int {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.height
}

// Offset returns the inherited screen translation.
func (c *Control) Offset() (int, int) {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.offsetX, c.offsetY
}

// Left returns the screen x coordinate: X plus the inherited offset.
func (c *Control) Left() int {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.left()
}

// Top returns the screen y coordinate: Y plus the inherited offset.
func (c *Control) Top() int {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.top()
}

// Bounds returns the control's screen rectangle.
func (c *Control) Bounds() Rect {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.bounds()
}

func (c *Control) left() int    { return c.x + c.offsetX }
func (c *Control) top() int     { return c.y + c.offsetY }
func (c *Control) bounds() Rect { return Rect{c.left(), c.top(), c.width, c.height} }

// SetX moves the control horizontally.
func (c *Control) SetX(x int) { c.SetBounds(x, c.Y(), c.Width(), c.Height()) }

// SetY moves the control vertically.
func (c *Control) SetY(y int) { c.SetBounds(c.X(), y, c.Width(), c.Height()) }

// SetWidth resizes the control horizontally.
func (c *Control) SetWidth(w int) { c.SetBounds(c.X(), c.Y(), w, c.Height()) }

// SetHeight resizes the control vertically.
func (c *Control) SetHeight(h int) { c.SetBounds(c.X(), c.Y(), c.Width(), h) }

// SetPosition moves the control.
func (c *Control) SetPosition(x, y int) { c.SetBounds(x, y, c.Width(), c.Height()) }

// SetSize resizes the control.
func (c *Control) SetSize(w, h int) { c.SetBounds(c.X(), c.Y(), w, h) }

// SetBounds sets local position and size in one step. The parent repaints
// the union of the old and new screen rectangles so nothing stale remains.
// Panics on fixed controls (top-level surfaces) and on negative sizes.
func (c *Control) SetBounds(x, y, w, h int) {
	if globalDebug.Load() {
		debugCheckDisposed(c, "SetBounds")
	}
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("sprig: negative size %dx%d for %q", w, h, c.name))
	}

	treeMu.Lock()
	if c.fixed {
		treeMu.Unlock()
		panic(fmt.Sprintf("sprig: cannot change geometry of fixed control %q", c.name))
	}
	if x == c.x && y == c.y && w == c.width && h == c.height {
		treeMu.Unlock()
		return
	}
	old := c.bounds()
	dx, dy := x-c.x, y-c.y
	c.x, c.y, c.width, c.height = x, y, w, h
	if dx != 0 || dy != 0 {
		c.shiftDescendants(dx, dy)
	}
	var newlyScrollable bool
	if c.scroll != nil {
		newlyScrollable = c.recomputeScroll()
	}
	dirty := old.Union(c.bounds())
	parent := c.parent
	treeMu.Unlock()

	if newlyScrollable {
		c.showScrollbars()
	}
	if parent != nil {
		parent.childLayoutChanged()
		parent.InvalidateRect(dirty)
	} else {
		c.InvalidateRect(dirty)
	}
}

// shiftDescendants adds (dx, dy) to the offsets of every descendant. Each
// node is visited once. Caller holds treeMu.
func (c *Control) shiftDescendants(dx, dy int) {
	if c.kids == nil {
		return
	}
	for _, child := range c.kids.list {
		child.offsetX += dx
		child.offsetY += dy
		child.shiftDescendants(dx, dy)
	}
}

// rebase recomputes the offset from the current parent's own screen position
// and pushes the change through the subtree. Caller holds treeMu.
func (c *Control) rebase() {
	var ox, oy int
	if p := c.parent; p != nil {
		ox, oy = p.left(), p.top()
		if p.scroll != nil {
			ox -= p.scroll.scrollX
			oy -= p.scroll.scrollY
		}
	}
	dx, dy := ox-c.offsetX, oy-c.offsetY
	if dx == 0 && dy == 0 {
		return
	}
	c.offsetX, c.offsetY = ox, oy
	c.shiftDescendants(dx, dy)
}

// --- Flags ---

// Enabled reports whether the control accepts input.
func (c *Control) Enabled() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.enabled
}

// Visible reports whether the control paints and accepts input.
func (c *Control) Visible() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.visible
}

// Suspended reports whether repaints of this control are suspended.
func (c *Control) Suspended() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.suspended
}

// SetEnabled enables or disables input and repaints.
func (c *Control) SetEnabled(v bool) {
	treeMu.Lock()
	changed := c.enabled != v
	c.enabled = v
	treeMu.Unlock()
	if !changed {
		return
	}
	if !v {
		c.cancelTouch()
	}
	c.Invalidate()
}

// SetVisible shows or hides the control. Hiding cancels any tracked touch
// and repaints the vacated area; showing repaints the control.
func (c *Control) SetVisible(v bool) {
	treeMu.Lock()
	changed := c.visible != v
	c.visible = v
	area := c.bounds()
	parent := c.parent
	treeMu.Unlock()
	if !changed {
		return
	}
	if parent != nil {
		parent.childLayoutChanged()
	}
	if v {
		c.Invalidate()
		return
	}
	c.cancelTouch()
	if parent != nil {
		parent.InvalidateRect(area)
	}
}

// SetSuspended suspends or resumes repaints. While suspended, Invalidate on
// this control or any descendant flushes nothing, so a subtree can be
// mutated in bulk; resuming repaints the control once.
func (c *Control) SetSuspended(v bool) {
	treeMu.Lock()
	changed := c.suspended != v
	c.suspended = v
	treeMu.Unlock()
	if !changed {
		return
	}
	if v {
		c.cancelTouch()
		return
	}
	c.Invalidate()
}

// Parent returns the owning container, or nil.
func (c *Control) Parent() *Control {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.parent
}

// RemoveFromParent detaches the control from its container. No-op without a
// parent.
func (c *Control) RemoveFromParent() {
	if p := c.Parent(); p != nil {
		p.RemoveChild(c)
	}
}

// --- Disposal ---

// Dispose detaches the control, cancels its timers and clears its listeners.
// Children are not disposed; callers dispose subtrees explicitly.
func (c *Control) Dispose() {
	if c.disposed {
		return
	}
	c.RemoveFromParent()
	c.cancelTouch()
	c.stopScrollTimers()
	c.handlers.clear()
	treeMu.Lock()
	c.disposed = true
	c.Tag = nil
	treeMu.Unlock()
}

// IsDisposed reports whether Dispose has been called.
func (c *Control) IsDisposed() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.disposed
}

// --- Environment lookups ---

// findDisplay walks to the top-level ancestor and returns its display, or
// nil when the tree is not attached to one.
func (c *Control) findDisplay() *Display {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.findDisplayLocked()
}

func (c *Control) findDisplayLocked() *Display {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n.display
}

// Display returns the display this control is attached to, or nil.
func (c *Control) Display() *Display { return c.findDisplay() }

func (c *Control) config() *Config {
	if d := c.findDisplay(); d != nil {
		return &d.cfg
	}
	return &defaultConfig
}

func (c *Control) now() time.Time {
	if d := c.findDisplay(); d != nil {
		return d.sched.Now()
	}
	return time.Now()
}

func (c *Control) scheduler() *Scheduler {
	if d := c.findDisplay(); d != nil {
		return d.sched
	}
	return nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Control) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
