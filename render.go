package sprig

import (
	"context"
	"fmt"
)

// paintCommand is a single step of a paint pass, collected during traversal.
type paintCommand struct {
	ctl  *Control
	clip Rect
	// scrollbar thumbs; only set on the command emitted after a scrollable
	// control's children
	bars       bool
	vBar, hBar Rect
}

// Invalidate repaints the control and flushes it if it can currently reach
// the screen: it belongs to the display's active top-level surface and every
// control on the way up is visible and not suspended. Otherwise it does
// nothing.
func (c *Control) Invalidate() {
	c.invalidate(nil)
}

// InvalidateRect is Invalidate limited to the screen rectangle r.
func (c *Control) InvalidateRect(r Rect) {
	if r.Empty() {
		return
	}
	c.invalidate(&r)
}

func (c *Control) invalidate(limit *Rect) {
	treeMu.RLock()
	ok := c.canRenderLocked()
	d := c.findDisplayLocked()
	treeMu.RUnlock()
	if !ok {
		return
	}
	if err := c.render(d, limit, true); err != nil {
		d.errorf("render %q: %v", c.name, err)
	}
}

// canRenderLocked walks to the top. The top-level control must be the
// display's active screen and not suspended; every control below it must be
// visible, not suspended, and have a parent that is not suspended. Caller
// holds treeMu.
func (c *Control) canRenderLocked() bool {
	for n := c; ; n = n.parent {
		if n.parent == nil {
			return n.display != nil && n.display.screen == n && !n.suspended
		}
		if !n.visible || n.suspended || n.parent.suspended {
			return false
		}
	}
}

// Render paints the control and its subtree into the display's back buffer,
// clipped to the intersection of its bounds with every ancestor's bounds.
// With flush set, exactly that rectangle is flushed once. Concurrent renders
// of the same control are serialized; a render that waits longer than
// Config.RenderWait fails with ErrRenderTimeout. Render on a control that is
// not attached to a display does nothing.
func (c *Control) Render(flush bool) error {
	d := c.findDisplay()
	if d == nil {
		return nil
	}
	return c.render(d, nil, flush)
}

func (c *Control) render(d *Display, limit *Rect, flush bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.RenderWait)
	defer cancel()
	if err := c.gate.Acquire(ctx, 1); err != nil {
		d.stats.addTimeout()
		return fmt.Errorf("%w: %q after %v", ErrRenderTimeout, c.name, d.cfg.RenderWait)
	}
	defer c.gate.Release(1)

	d.surfaceMu.Lock()
	defer d.surfaceMu.Unlock()

	// Collect the whole pass under one read lock so it never sees a
	// half-applied reparent, then paint without holding it.
	treeMu.RLock()
	clip, ok := c.clipLocked()
	if ok && limit != nil {
		clip = clip.Intersect(*limit)
	}
	var cmds []paintCommand
	if ok && !clip.Empty() {
		cmds = c.traverse(clip, d.cmdBuf[:0])
	}
	treeMu.RUnlock()

	if len(cmds) == 0 {
		return nil
	}
	d.submit(cmds)
	d.cmdBuf = cmds[:0]
	d.stats.addRender(len(cmds))

	if !flush {
		return nil
	}
	d.stats.addFlush()
	if err := d.surface.Flush(clip); err != nil {
		return fmt.Errorf("flush %v: %w", clip, err)
	}
	d.logStats()
	return nil
}

// clipLocked returns the control's bounds intersected with every ancestor's
// bounds. ok is false when a suspended ancestor blocks painting. Caller
// holds treeMu.
func (c *Control) clipLocked() (Rect, bool) {
	clip := c.bounds()
	if c.suspended {
		return clip, false
	}
	for p := c.parent; p != nil; p = p.parent {
		if p.suspended {
			return clip, false
		}
		clip = clip.Intersect(p.bounds())
	}
	return clip, true
}

// traverse appends the paint commands for c and its subtree: c itself, then
// visible children in ascending list order, then c's scrollbars. Caller
// holds treeMu.
func (c *Control) traverse(clip Rect, cmds []paintCommand) []paintCommand {
	cmds = append(cmds, paintCommand{ctl: c, clip: clip})
	if c.kids != nil {
		for _, child := range c.kids.list {
			if !child.visible || child.suspended {
				continue
			}
			cc := child.bounds().Intersect(clip)
			if cc.Empty() {
				continue
			}
			cmds = child.traverse(cc, cmds)
		}
	}
	if c.scroll != nil && c.scroll.barsVisible {
		v, h := c.scrollbarRects()
		cmds = append(cmds, paintCommand{ctl: c, clip: clip, bars: true, vBar: v, hBar: h})
	}
	return cmds
}

// submit executes a paint pass. Caller holds surfaceMu.
func (d *Display) submit(cmds []paintCommand) {
	s := d.surface
	for i := range cmds {
		cmd := &cmds[i]
		s.SetClip(cmd.clip)
		if cmd.bars {
			bar := d.cfg.Theme.Scrollbar
			if !cmd.vBar.Empty() {
				s.FillRect(cmd.vBar, bar)
			}
			if !cmd.hBar.Empty() {
				s.FillRect(cmd.hBar, bar)
			}
			continue
		}
		if p, ok := cmd.ctl.behavior.(Painter); ok {
			p.Paint(cmd.ctl, s, cmd.clip)
		}
	}
}
