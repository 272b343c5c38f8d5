package sprig

import "fmt"

// Thumb is the scrollbar thumb along one axis, measured in pixels from the
// start of the track.
type Thumb struct {
	Length int
	Pos    int
}

// scrollState is the scrollable capability: content extent versus the
// control's own size, current offsets and scrollbar state.
type scrollState struct {
	requiredW, requiredH int
	scrollX, scrollY     int
	needsX, needsY       bool
	thumbX, thumbY       Thumb

	barsVisible bool
	hideHeld    bool // set while a touch is down; suppresses auto-hide
	hideTask    *Task
	tween       *Task
}

// MakeScrollable adds the scrolling capability and returns c.
func (c *Control) MakeScrollable() *Control {
	treeMu.Lock()
	if c.scroll == nil {
		c.scroll = &scrollState{}
	}
	treeMu.Unlock()
	return c
}

// IsScrollable reports whether the control has the scrolling capability.
func (c *Control) IsScrollable() bool { return c.scroll != nil }

func (c *Control) mustScroll(op string) {
	if c.scroll == nil {
		panic(fmt.Sprintf("sprig: %s on non-scrollable %q", op, c.name))
	}
}

// RequiredWidth returns the content width.
func (c *Control) RequiredWidth() int {
	c.mustScroll("RequiredWidth")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.requiredW
}

// RequiredHeight returns the content height.
func (c *Control) RequiredHeight() int {
	c.mustScroll("RequiredHeight")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.requiredH
}

// SetRequiredWidth sets the content width and recomputes the horizontal
// scrollbar.
func (c *Control) SetRequiredWidth(w int) {
	c.SetRequiredSize(w, c.RequiredHeight())
}

// SetRequiredHeight sets the content height and recomputes the vertical
// scrollbar.
func (c *Control) SetRequiredHeight(h int) {
	c.SetRequiredSize(c.RequiredWidth(), h)
}

// SetRequiredSize sets both content extents. Offsets are clamped into the
// new valid range; an axis that newly needs scrolling shows its bar and
// starts the auto-hide timer.
func (c *Control) SetRequiredSize(w, h int) {
	c.mustScroll("SetRequiredSize")
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("sprig: negative required size %dx%d for %q", w, h, c.name))
	}
	treeMu.Lock()
	s := c.scroll
	if s.requiredW == w && s.requiredH == h {
		treeMu.Unlock()
		return
	}
	s.requiredW, s.requiredH = w, h
	newly := c.recomputeScroll()
	treeMu.Unlock()

	if newly {
		c.showScrollbars()
	}
	c.Invalidate()
}

// recomputeScroll re-derives needs, clamps offsets and recomputes thumbs.
// It reports whether an axis newly needs scrolling. Caller holds treeMu.
func (c *Control) recomputeScroll() bool {
	s := c.scroll
	wasX, wasY := s.needsX, s.needsY
	s.needsX = s.requiredW > c.width
	s.needsY = s.requiredH > c.height
	c.applyScroll(clampInt(s.scrollX, 0, c.slackX()), clampInt(s.scrollY, 0, c.slackY()))
	return (s.needsX && !wasX) || (s.needsY && !wasY)
}

// applyScroll stores new offsets, pushes the translation into the children
// and refreshes the thumbs. Caller holds treeMu.
func (c *Control) applyScroll(x, y int) (dx, dy int) {
	s := c.scroll
	dx, dy = x-s.scrollX, y-s.scrollY
	s.scrollX, s.scrollY = x, y
	if (dx != 0 || dy != 0) && c.kids != nil {
		// Children keep their logical X/Y; only their offsets move.
		for _, child := range c.kids.list {
			child.offsetX -= dx
			child.offsetY -= dy
			child.shiftDescendants(-dx, -dy)
		}
	}
	minLen := c.configLocked().MinThumbLength
	s.thumbX = computeThumb(c.width, s.requiredW, s.scrollX, minLen)
	s.thumbY = computeThumb(c.height, s.requiredH, s.scrollY, minLen)
	return dx, dy
}

// computeThumb maps an offset over a track of length avail showing
// required pixels of content. An axis that does not need scrolling has no
// thumb.
func computeThumb(avail, required, offset, minLen int) Thumb {
	if required <= avail || avail <= 0 {
		return Thumb{}
	}
	length := avail * avail / required
	if length > avail {
		length = avail
	}
	if length < minLen {
		length = minLen
	}
	pos := 0
	if slack := required - avail; slack > 0 && avail > length {
		pos = offset * (avail - length) / slack
	}
	return Thumb{Length: length, Pos: pos}
}

func (c *Control) slackX() int { return max(0, c.scroll.requiredW-c.width) }
func (c *Control) slackY() int { return max(0, c.scroll.requiredH-c.height) }

// SlackX returns RequiredWidth minus Width, or zero.
func (c *Control) SlackX() int {
	c.mustScroll("SlackX")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.slackX()
}

// SlackY returns RequiredHeight minus Height, or zero.
func (c *Control) SlackY() int {
	c.mustScroll("SlackY")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.slackY()
}

// NeedsX reports whether the content is wider than the control.
func (c *Control) NeedsX() bool {
	c.mustScroll("NeedsX")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.needsX
}

// NeedsY reports whether the content is taller than the control.
func (c *Control) NeedsY() bool {
	c.mustScroll("NeedsY")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.needsY
}

// ScrollX returns the horizontal scroll offset.
func (c *Control) ScrollX() int {
	if c.scroll == nil {
		return 0
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.scrollX
}

// ScrollY returns the vertical scroll offset.
func (c *Control) ScrollY() int {
	if c.scroll == nil {
		return 0
	}
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.scrollY
}

// ThumbX returns the horizontal thumb; zero when the axis does not scroll.
func (c *Control) ThumbX() Thumb {
	c.mustScroll("ThumbX")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.thumbX
}

// ThumbY returns the vertical thumb; zero when the axis does not scroll.
func (c *Control) ThumbY() Thumb {
	c.mustScroll("ThumbY")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.thumbY
}

// BarsVisible reports whether the scrollbars are currently shown.
func (c *Control) BarsVisible() bool {
	c.mustScroll("BarsVisible")
	treeMu.RLock()
	defer treeMu.RUnlock()
	return c.scroll.barsVisible
}

// SetScrollX scrolls horizontally, clamped to [0, SlackX].
func (c *Control) SetScrollX(x int) { c.SetScroll(x, c.ScrollY()) }

// SetScrollY scrolls vertically, clamped to [0, SlackY].
func (c *Control) SetScrollY(y int) { c.SetScroll(c.ScrollX(), y) }

// ScrollBy scrolls by a relative amount.
func (c *Control) ScrollBy(dx, dy int) { c.SetScroll(c.ScrollX()+dx, c.ScrollY()+dy) }

// SetScroll sets both offsets, clamped into range. An axis whose content
// fits is always held at zero.
func (c *Control) SetScroll(x, y int) {
	c.mustScroll("SetScroll")
	treeMu.Lock()
	dx, dy := c.applyScroll(clampInt(x, 0, c.slackX()), clampInt(y, 0, c.slackY()))
	treeMu.Unlock()
	if dx == 0 && dy == 0 {
		return
	}
	c.showScrollbars()
	c.emit(EventScroll, &Event{DeltaX: dx, DeltaY: dy})
	c.Invalidate()
}

// --- Auto-hide ---

// showScrollbars makes the bars visible and restarts the auto-hide timer
// unless a touch is holding them open.
func (c *Control) showScrollbars() {
	sched := c.scheduler()
	delay := c.config().AutoHideDelay
	treeMu.Lock()
	s := c.scroll
	if !s.needsX && !s.needsY {
		treeMu.Unlock()
		return
	}
	s.barsVisible = true
	old := s.hideTask
	s.hideTask = nil
	held := s.hideHeld
	treeMu.Unlock()

	if old != nil {
		old.Cancel()
	}
	if held || sched == nil {
		return
	}
	task := sched.After(delay, c.autoHideScrollbars)
	treeMu.Lock()
	s.hideTask = task
	treeMu.Unlock()
}

func (c *Control) autoHideScrollbars() {
	treeMu.Lock()
	s := c.scroll
	if s.hideHeld || !s.barsVisible {
		treeMu.Unlock()
		return
	}
	s.barsVisible = false
	s.hideTask = nil
	treeMu.Unlock()
	c.Invalidate()
}

// holdScrollbars raises the cancel-hide signal while a touch is down. A
// finger on the content also stops any ScrollTo animation.
func (c *Control) holdScrollbars() {
	treeMu.Lock()
	s := c.scroll
	s.hideHeld = true
	hide, tween := s.hideTask, s.tween
	s.hideTask, s.tween = nil, nil
	treeMu.Unlock()
	if hide != nil {
		hide.Cancel()
	}
	if tween != nil {
		tween.Cancel()
	}
}

// releaseScrollbars drops the cancel-hide signal and re-arms auto-hide if
// the bars are showing.
func (c *Control) releaseScrollbars() {
	treeMu.Lock()
	s := c.scroll
	wasHeld := s.hideHeld
	s.hideHeld = false
	visible := s.barsVisible
	treeMu.Unlock()
	if wasHeld && visible {
		c.showScrollbars()
	}
}

func (c *Control) stopScrollTimers() {
	if c.scroll == nil {
		return
	}
	treeMu.Lock()
	hide, tween := c.scroll.hideTask, c.scroll.tween
	c.scroll.hideTask, c.scroll.tween = nil, nil
	treeMu.Unlock()
	if hide != nil {
		hide.Cancel()
	}
	if tween != nil {
		tween.Cancel()
	}
}

// scrollbarRects returns the screen rectangles of the visible thumbs.
// Caller holds treeMu.
func (c *Control) scrollbarRects() (vertical, horizontal Rect) {
	s := c.scroll
	if !s.barsVisible {
		return
	}
	b := c.bounds()
	thick := c.configLocked().ScrollbarThickness
	if s.needsY {
		vertical = Rect{X: b.Right() - thick, Y: b.Y + s.thumbY.Pos, Width: thick, Height: s.thumbY.Length}
	}
	if s.needsX {
		horizontal = Rect{X: b.X + s.thumbX.Pos, Y: b.Bottom() - thick, Width: s.thumbX.Length, Height: thick}
	}
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
