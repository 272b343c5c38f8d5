package sprig

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FrameInterval is the tick rate of animations run by Display.Animate.
const FrameInterval = 16 * time.Millisecond

// TweenGroup animates up to two integer properties of a Control together.
// Create one with TweenPosition or TweenScroll and either call Update(dt)
// yourself or hand it to Display.Animate. If the target control is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	apply  func(a, b int)
	target *Control
	Done   bool

	task atomic.Pointer[Task]
}

// Update advances both tweens by dt seconds and applies the rounded values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	a, doneA := g.tweens[0].Update(dt)
	b, doneB := g.tweens[1].Update(dt)
	g.Done = doneA && doneB
	g.apply(int(math.Round(float64(a))), int(math.Round(float64(b))))
}

// Stop cancels the group's scheduler task, if any, and marks it done.
func (g *TweenGroup) Stop() {
	g.Done = true
	if t := g.task.Swap(nil); t != nil {
		t.Cancel()
	}
}

// TweenPosition creates a TweenGroup that moves c to local (toX, toY) over
// duration seconds.
func TweenPosition(c *Control, toX, toY int, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: c, apply: c.SetPosition}
	g.tweens[0] = gween.New(float32(c.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.Y()), float32(toY), duration, fn)
	return g
}

// TweenScroll creates a TweenGroup that scrolls c to (toX, toY) over
// duration seconds. Targets are clamped by SetScroll as usual.
func TweenScroll(c *Control, toX, toY int, duration float32, fn ease.TweenFunc) *TweenGroup {
	c.mustScroll("TweenScroll")
	g := &TweenGroup{target: c, apply: c.SetScroll}
	g.tweens[0] = gween.New(float32(c.ScrollX()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.ScrollY()), float32(toY), duration, fn)
	return g
}

// Animate runs g on the scheduler every FrameInterval until it is done. The
// returned task may be cancelled to stop it early.
func (d *Display) Animate(g *TweenGroup) *Task {
	last := d.sched.Now()
	task := d.sched.Every(FrameInterval, func() {
		now := d.sched.Now()
		g.Update(float32(now.Sub(last).Seconds()))
		last = now
		if g.Done {
			if t := g.task.Swap(nil); t != nil {
				t.Cancel()
			}
		}
	})
	g.task.Store(task)
	return task
}

// ScrollTo scrolls to (x, y) with an eased animation. A zero duration, or a
// control not attached to a display, jumps immediately. Any previous scroll
// animation is stopped first.
func (c *Control) ScrollTo(x, y int, duration time.Duration, fn ease.TweenFunc) {
	c.mustScroll("ScrollTo")
	d := c.findDisplay()
	if d == nil || duration <= 0 {
		c.stopScrollTween()
		c.SetScroll(x, y)
		return
	}
	if fn == nil {
		fn = ease.OutQuad
	}
	g := TweenScroll(c, x, y, float32(duration.Seconds()), fn)
	task := d.Animate(g)

	treeMu.Lock()
	old := c.scroll.tween
	c.scroll.tween = task
	treeMu.Unlock()
	if old != nil {
		old.Cancel()
	}
}

// stopScrollTween cancels a running ScrollTo animation.
func (c *Control) stopScrollTween() {
	treeMu.Lock()
	task := c.scroll.tween
	c.scroll.tween = nil
	treeMu.Unlock()
	if task != nil {
		task.Cancel()
	}
}
