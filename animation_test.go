package sprig

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	c := NewControl("pos", nil)
	c.SetPosition(10, 20)

	g := TweenPosition(c, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if c.X() != 100 || c.Y() != 200 {
		t.Errorf("position = (%d,%d), want (100,200)", c.X(), c.Y())
	}
}

func TestTweenPositionHalfway(t *testing.T) {
	c := NewControl("half", nil)

	g := TweenPosition(c, 100, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if c.X() != 50 {
		t.Errorf("X = %d, want 50", c.X())
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	c := NewControl("done", nil)
	g := TweenPosition(c, 50, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done is a no-op.
	g.Update(0.1)
	if !g.Done || c.X() != 50 {
		t.Fatalf("after extra update Done=%v X=%d", g.Done, c.X())
	}
}

func TestTweenGroupDisposedControl(t *testing.T) {
	c := NewControl("disposed", nil)
	c.SetPosition(10, 20)

	g := TweenPosition(c, 100, 200, 1.0, ease.Linear)
	c.Dispose()
	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after disposed control detected")
	}
	if c.X() != 10 || c.Y() != 20 {
		t.Errorf("position changed to (%d,%d) on disposed control", c.X(), c.Y())
	}
}

func TestTweenGroupDisposedMidAnimation(t *testing.T) {
	c := NewControl("mid-dispose", nil)

	g := TweenPosition(c, 100, 100, 1.0, ease.Linear)
	g.Update(0.1)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	c.Dispose()
	x, y := c.X(), c.Y()

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after control disposed mid-animation")
	}
	if c.X() != x || c.Y() != y {
		t.Error("position should not change after disposal")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	linear := NewControl("linear", nil)
	cubic := NewControl("cubic", nil)

	gL := TweenPosition(linear, 100, 0, 1.0, ease.Linear)
	gC := TweenPosition(cubic, 100, 0, 1.0, ease.OutCubic)
	gL.Update(0.5)
	gC.Update(0.5)

	// OutCubic is ahead of linear at the midpoint.
	if cubic.X() <= linear.X() {
		t.Errorf("midpoint linear=%d cubic=%d, want cubic ahead", linear.X(), cubic.X())
	}
}

func TestTweenScrollRequiresScrollable(t *testing.T) {
	expectPanic(t, "TweenScroll on plain control", func() {
		TweenScroll(NewControl("plain", nil), 0, 10, 1, ease.Linear)
	})
}

func TestTweenScrollClamps(t *testing.T) {
	c := NewControl("list", nil).MakeScrollable()
	c.SetSize(100, 100)
	c.SetRequiredSize(100, 300)

	g := TweenScroll(c, 0, 1000, 1.0, ease.Linear)
	g.Update(1.0)

	if c.ScrollY() != 200 {
		t.Errorf("ScrollY = %d, want clamped 200", c.ScrollY())
	}
}

func TestAnimateRunsOnScheduler(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	box := addBox(screen.Control, "box", 0, 0, 10, 10)
	g := TweenPosition(box, 160, 0, 0.16, ease.Linear)

	d.Animate(g)
	d.Scheduler().Advance(5 * FrameInterval)
	if g.Done {
		t.Fatal("done after half the frames")
	}
	if x := box.X(); x < 60 || x > 100 {
		t.Errorf("midway X = %d, want about 80", x)
	}

	d.Scheduler().Advance(10 * FrameInterval)
	if !g.Done || box.X() != 160 {
		t.Errorf("Done=%v X=%d, want true 160", g.Done, box.X())
	}
	if n := d.Scheduler().Pending(); n != 0 {
		t.Errorf("pending = %d after finish, want 0", n)
	}
}

func TestTweenGroupStop(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	box := addBox(screen.Control, "box", 0, 0, 10, 10)
	g := TweenPosition(box, 100, 0, 1.0, ease.Linear)
	d.Animate(g)

	d.Scheduler().Advance(FrameInterval)
	g.Stop()
	x := box.X()
	d.Scheduler().Advance(time.Second)

	if box.X() != x {
		t.Errorf("X moved from %d to %d after Stop", x, box.X())
	}
	if d.Scheduler().Pending() != 0 {
		t.Error("Stop should cancel the frame task")
	}
}

func TestScrollToAnimates(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	list := NewListBox("list")
	list.SetBounds(0, 0, 100, 100)
	screen.AddChild(list.Control)
	list.SetItems(make([]string, 25))

	list.ScrollTo(0, 400, 160*time.Millisecond, ease.Linear)
	if list.ScrollY() != 0 {
		t.Fatalf("ScrollY = %d before any frame", list.ScrollY())
	}

	d.Scheduler().Advance(80 * time.Millisecond)
	if y := list.ScrollY(); y < 150 || y > 250 {
		t.Errorf("midway ScrollY = %d, want about 200", y)
	}
	d.Scheduler().Advance(120 * time.Millisecond)
	if list.ScrollY() != 400 {
		t.Errorf("final ScrollY = %d, want 400", list.ScrollY())
	}
}

func TestScrollToZeroDurationJumps(t *testing.T) {
	_, screen, _ := newTestDisplay(t)
	list := NewListBox("list")
	list.SetBounds(0, 0, 100, 100)
	screen.AddChild(list.Control)
	list.SetItems(make([]string, 25))

	list.ScrollTo(0, 120, 0, nil)
	if list.ScrollY() != 120 {
		t.Errorf("ScrollY = %d, want 120", list.ScrollY())
	}
}

func TestScrollToRestartsAnimation(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	list := NewListBox("list")
	list.SetBounds(0, 0, 100, 100)
	screen.AddChild(list.Control)
	list.SetItems(make([]string, 25))

	list.ScrollTo(0, 400, time.Second, ease.Linear)
	d.Scheduler().Advance(5 * FrameInterval)
	list.ScrollTo(0, 0, 5*FrameInterval, ease.Linear)
	d.Scheduler().Advance(time.Second)

	if list.ScrollY() != 0 {
		t.Errorf("ScrollY = %d, want 0 from the second animation", list.ScrollY())
	}
}

func TestScrollToJumpStopsAnimation(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	list := NewListBox("list")
	list.SetBounds(0, 0, 100, 100)
	screen.AddChild(list.Control)
	list.SetItems(make([]string, 25))

	list.ScrollTo(0, 400, time.Second, ease.Linear)
	d.Scheduler().Advance(100 * time.Millisecond)
	list.ScrollTo(0, 0, 0, nil)
	d.Scheduler().Advance(200 * time.Millisecond)

	if list.ScrollY() != 0 {
		t.Errorf("ScrollY = %d after the jump, want 0", list.ScrollY())
	}
}

func TestTouchStopsScrollAnimation(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	list := NewListBox("list")
	list.SetBounds(0, 0, 100, 100)
	screen.AddChild(list.Control)
	list.SetItems(make([]string, 25))

	list.ScrollTo(0, 400, time.Second, ease.Linear)
	d.Scheduler().Advance(100 * time.Millisecond)
	d.TouchDown(50, 50)
	y := list.ScrollY()
	d.Scheduler().Advance(200 * time.Millisecond)
	if list.ScrollY() != y {
		t.Fatalf("ScrollY moved from %d to %d with a finger down", y, list.ScrollY())
	}

	d.TouchMove(50, 30)
	d.Scheduler().Advance(200 * time.Millisecond)
	if list.ScrollY() != y+20 {
		t.Errorf("ScrollY = %d after dragging 20px, want %d", list.ScrollY(), y+20)
	}
	d.TouchUp(50, 30)
}
