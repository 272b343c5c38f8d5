package sprig

// syntheticPointerEvent is a single injected pointer sample, in screen
// coordinates, consumed one per frame by Update.
type syntheticPointerEvent struct {
	x, y    int
	pressed bool
}

// InjectPress queues a touch-down at the given screen point. The event is
// consumed on the next frame's Update.
func (d *Display) InjectPress(x, y int) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues movement with the touch held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (d *Display) InjectMove(x, y int) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues the release of the touch at the given screen point.
func (d *Display) InjectRelease(x, y int) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (d *Display) InjectTap(x, y int) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). Minimum frames is 2.
func (d *Display) InjectDrag(fromX, fromY, toX, toY, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		x := fromX + (toX-fromX)*i/(steps+1)
		y := fromY + (toY-fromY)*i/(steps+1)
		d.InjectMove(x, y)
	}
	d.InjectRelease(toX, toY)
}

// InjectHold queues a press held in place for frames frames before the
// release. At 60 frames per second, 40 frames passes the default tap-hold
// delay.
func (d *Display) InjectHold(x, y, frames int) {
	d.InjectPress(x, y)
	for i := 0; i < frames; i++ {
		d.InjectMove(x, y)
	}
	d.InjectRelease(x, y)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the primary pointer state machine. It reports whether an event
// was consumed, in which case real pointer input is skipped this frame.
func (d *Display) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
	d.ptr.touch = false
	d.feedPointer(evt.x, evt.y, evt.pressed)
	return true
}
