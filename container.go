package sprig

import "fmt"

// childList is the container capability: ordered owned children (append
// order is z-order, bottom to top) and non-owning references to the active
// child and the child tracking the current touch.
type childList struct {
	list        []*Control
	active      *Control
	touchTarget *Control
}

// NewContainer creates a control with the container capability.
func NewContainer(name string, behavior any) *Control {
	c := NewControl(name, behavior)
	c.kids = &childList{}
	return c
}

// IsContainer reports whether the control can own children.
func (c *Control) IsContainer() bool { return c.kids != nil }

func (c *Control) mustContainer(op string) {
	if c.kids == nil {
		panic(fmt.Sprintf("sprig: %s on non-container %q", op, c.name))
	}
}

// AddChild appends child on top of the existing children. A child that
// already has a parent is detached from it first and its offsets are
// recomputed from this container. Panics if child is nil or if adding it
// would create a cycle.
func (c *Control) AddChild(child *Control) {
	c.mustContainer("AddChild")
	if child == nil {
		panic("sprig: cannot add nil child")
	}
	if globalDebug.Load() {
		debugCheckDisposed(c, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}

	treeMu.Lock()
	if isAncestor(child, c) {
		treeMu.Unlock()
		panic("sprig: adding child would create a cycle")
	}
	if child.display != nil {
		treeMu.Unlock()
		panic(fmt.Sprintf("sprig: top-level surface %q cannot be a child", child.name))
	}
	old := child.parent
	vacated := child.bounds()
	if old != nil {
		old.detachLocked(child)
	}
	child.parent = c
	c.kids.list = append(c.kids.list, child)
	child.rebase()
	if globalDebug.Load() {
		debugCheckTreeDepth(child)
		debugCheckChildCount(c)
	}
	treeMu.Unlock()

	if old != nil {
		old.childLayoutChanged()
		old.InvalidateRect(vacated)
	}
	c.childLayoutChanged()
	child.Invalidate()
}

// RemoveChild detaches child from this container. Panics if child is not a
// child of this container.
func (c *Control) RemoveChild(child *Control) {
	c.mustContainer("RemoveChild")
	treeMu.Lock()
	if child == nil || child.parent != c {
		treeMu.Unlock()
		panic("sprig: child's parent is not this container")
	}
	area := child.bounds()
	c.detachLocked(child)
	treeMu.Unlock()
	c.afterRemove(child, area)
}

// RemoveChildAt detaches and returns the child at index. Panics when index
// is out of range.
func (c *Control) RemoveChildAt(index int) *Control {
	c.mustContainer("RemoveChildAt")
	treeMu.Lock()
	if index < 0 || index >= len(c.kids.list) {
		n := len(c.kids.list)
		treeMu.Unlock()
		panic(fmt.Sprintf("sprig: child index %d out of range [0,%d)", index, n))
	}
	child := c.kids.list[index]
	area := child.bounds()
	c.detachLocked(child)
	treeMu.Unlock()
	c.afterRemove(child, area)
	return child
}

// ClearChildren detaches every child. Children are not disposed.
func (c *Control) ClearChildren() {
	c.mustContainer("ClearChildren")
	treeMu.Lock()
	removed := append([]*Control(nil), c.kids.list...)
	for _, child := range removed {
		c.detachLocked(child)
	}
	treeMu.Unlock()
	for _, child := range removed {
		child.cancelTouch()
	}
	if len(removed) > 0 {
		c.childLayoutChanged()
		c.Invalidate()
	}
}

func (c *Control) afterRemove(child *Control, area Rect) {
	child.cancelTouch()
	c.childLayoutChanged()
	c.InvalidateRect(area)
}

// detachLocked removes child from the list, clears references to it and
// rebases its subtree to the origin. Caller holds treeMu.
func (c *Control) detachLocked(child *Control) {
	l := c.kids
	for i, k := range l.list {
		if k == child {
			copy(l.list[i:], l.list[i+1:])
			l.list[len(l.list)-1] = nil
			l.list = l.list[:len(l.list)-1]
			break
		}
	}
	if l.active == child {
		l.active = nil
	}
	if l.touchTarget == child {
		l.touchTarget = nil
	}
	child.parent = nil
	child.rebase()
}

// Children returns a snapshot of the child list in z-order.
func (c *Control) Children() []*Control {
	if c.kids == nil {
		return nil
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	return append([]*Control(nil), c.kids.list...)
}

// NumChildren returns the number of children.
func (c *Control) NumChildren() int {
	if c.kids == nil {
		return 0
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	return len(c.kids.list)
}

// ChildAt returns the child at index. Panics when index is out of range.
func (c *Control) ChildAt(index int) *Control {
	c.mustContainer("ChildAt")
	treeMu.RLock()
	defer treeMu.RUnlock()
	if index < 0 || index >= len(c.kids.list) {
		panic(fmt.Sprintf("sprig: child index %d out of range [0,%d)", index, len(c.kids.list)))
	}
	return c.kids.list[index]
}

// ChildByName returns the first direct child with the given name, or nil.
func (c *Control) ChildByName(name string) *Control {
	if c.kids == nil {
		return nil
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	for _, k := range c.kids.list {
		if k.name == name {
			return k
		}
	}
	return nil
}

// BringToFront moves child to the end of the list so it paints last and
// hit-tests first. Panics if child is not a child of this container.
func (c *Control) BringToFront(child *Control) {
	c.mustContainer("BringToFront")
	treeMu.Lock()
	if child == nil || child.parent != c {
		treeMu.Unlock()
		panic("sprig: child's parent is not this container")
	}
	l := c.kids.list
	if l[len(l)-1] == child {
		treeMu.Unlock()
		return
	}
	for i, k := range l {
		if k == child {
			copy(l[i:], l[i+1:])
			l[len(l)-1] = child
			break
		}
	}
	treeMu.Unlock()
	child.Invalidate()
}

// ActiveChild returns the child holding input focus, or nil.
func (c *Control) ActiveChild() *Control {
	if c.kids == nil {
		return nil
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.kids.active
}

// SetActiveChild moves focus to child, which must be a child of this
// container or nil. The previous active child is blurred first.
func (c *Control) SetActiveChild(child *Control) {
	c.mustContainer("SetActiveChild")
	treeMu.Lock()
	if child != nil && child.parent != c {
		treeMu.Unlock()
		panic("sprig: child's parent is not this container")
	}
	old := c.kids.active
	if old == child {
		treeMu.Unlock()
		return
	}
	c.kids.active = child
	treeMu.Unlock()

	if old != nil {
		if f, ok := old.behavior.(Focuser); ok {
			f.Blur(old)
		}
		old.emit(EventBlur, nil)
	}
	if child != nil {
		if f, ok := child.behavior.(Focuser); ok {
			f.Activate(child)
		}
		child.emit(EventFocus, nil)
	}
}

// canFocus reports whether child wants to become the active child.
func canFocus(child *Control) bool {
	f, ok := child.behavior.(Focuser)
	return ok && f.CanFocus()
}

// snapshotReversed returns the children topmost first.
func (c *Control) snapshotReversed() []*Control {
	treeMu.RLock()
	defer treeMu.RUnlock()
	n := len(c.kids.list)
	out := make([]*Control, n)
	for i, k := range c.kids.list {
		out[n-1-i] = k
	}
	return out
}

// ownedBy reports whether c is still a child of parent. Dispatch uses it to
// skip children removed earlier in the same pass.
func (c *Control) ownedBy(parent *Control) bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.parent == parent
}

func (c *Control) childLayoutChanged() {
	if o, ok := c.behavior.(ChildLayoutObserver); ok {
		o.ChildLayoutChanged(c)
	}
}
