package sprig

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Display owns the drawing surface, the timer scheduler and the active
// top-level Screen. Input enters through TouchDown, TouchUp, TouchMove,
// Gesture and Key (or Update when running under Ebitengine); each entry
// point and every timer callback runs under one dispatch lock, so handlers
// never race each other.
type Display struct {
	mu        sync.Mutex // dispatch lock
	surfaceMu sync.Mutex // one paint+flush sequence at a time
	surface   Surface
	cfg       Config
	sched     *Scheduler

	screen       *Control // guarded by treeMu
	activeScreen *Screen

	sinkMu sync.RWMutex
	sink   EventSink

	logMu    sync.Mutex
	log      io.Writer
	debug    atomic.Bool
	stats    displayStats
	statsLog rate.Sometimes

	cmdBuf []paintCommand // guarded by surfaceMu

	// Frame-driven input state, touched only from Update.
	ptr             pointerState
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
	chars           []rune

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	closed atomic.Bool
}

// NewDisplay creates a display drawing into surface. Zero fields of cfg
// take their defaults.
func NewDisplay(surface Surface, cfg Config) (*Display, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrSurfaceAlloc)
	}
	clock := cfg.Clock
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	d := &Display{
		surface:       surface,
		cfg:           cfg,
		log:           os.Stderr,
		statsLog:      rate.Sometimes{Interval: time.Second},
		ScreenshotDir: "screenshots",
	}
	d.sched = newScheduler(clock, d.post)
	if cfg.Debug {
		d.SetDebugMode(true)
	}
	return d, nil
}

// post runs a scheduler callback under the dispatch lock.
func (d *Display) post(fn func()) {
	if d.closed.Load() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Do runs fn under the dispatch lock. Use it to mutate the tree from
// goroutines other than the input loop.
func (d *Display) Do(fn func()) { d.post(fn) }

// Close stops the scheduler. Pending timers never fire.
func (d *Display) Close() {
	if d.closed.Swap(true) {
		return
	}
	d.sched.Close()
}

// Scheduler returns the display's timer scheduler.
func (d *Display) Scheduler() *Scheduler { return d.sched }

// Config returns the effective configuration.
func (d *Display) Config() Config { return d.cfg }

// Surface returns the drawing surface.
func (d *Display) Surface() Surface { return d.surface }

// Size returns the surface dimensions.
func (d *Display) Size() (int, int) { return d.surface.Size() }

// SetEventSink forwards every semantic event emitted inside this display to
// sink. nil disables forwarding.
func (d *Display) SetEventSink(sink EventSink) {
	d.sinkMu.Lock()
	d.sink = sink
	d.sinkMu.Unlock()
}

func (d *Display) forward(e Event) {
	d.sinkMu.RLock()
	sink := d.sink
	d.sinkMu.RUnlock()
	if sink != nil {
		sink.EmitEvent(e)
	}
}

// SetLogOutput redirects diagnostic output. The default is stderr.
func (d *Display) SetLogOutput(w io.Writer) {
	d.logMu.Lock()
	d.log = w
	d.logMu.Unlock()
}

// SetDebugMode enables debug checks and per-flush stats logging.
func (d *Display) SetDebugMode(enabled bool) {
	d.debug.Store(enabled)
	globalDebug.Store(enabled)
}

// globalDebug mirrors the most recently set Display debug flag so that
// control operations, which lack a Display pointer, can check it cheaply.
var globalDebug atomic.Bool

func (d *Display) logf(format string, args ...any) {
	d.logMu.Lock()
	defer d.logMu.Unlock()
	if d.log == nil {
		return
	}
	_, _ = fmt.Fprintf(d.log, "[sprig] "+format+"\n", args...)
}

// errorf logs unconditionally; used for failures no caller can see, such as
// a render triggered by Invalidate.
func (d *Display) errorf(format string, args ...any) {
	d.logf("error: "+format, args...)
}

func (d *Display) debugf(format string, args ...any) {
	if d.debug.Load() {
		d.logf(format, args...)
	}
}

// --- Screens ---

// NewScreen creates a top-level surface sized to the display. The first
// screen created becomes the active one.
func (d *Display) NewScreen(name string) *Screen {
	s := newScreen(name)
	w, h := d.surface.Size()
	treeMu.Lock()
	s.width, s.height = w, h
	s.fixed = true
	s.display = d
	first := d.screen == nil
	treeMu.Unlock()
	if first {
		d.SetScreen(s)
	}
	return s
}

// SetScreen makes s the active top-level surface and repaints it. Only the
// active screen receives input and reaches the front buffer.
func (d *Display) SetScreen(s *Screen) {
	treeMu.Lock()
	if s != nil && s.display != d {
		treeMu.Unlock()
		panic(fmt.Sprintf("sprig: screen %q belongs to another display", s.name))
	}
	old := d.screen
	if s == nil {
		d.screen = nil
	} else {
		d.screen = s.Control
	}
	d.activeScreen = s
	treeMu.Unlock()
	if old != nil {
		old.cancelTouch()
	}
	if s != nil {
		s.Invalidate()
	}
}

// Screen returns the active screen, or nil.
func (d *Display) Screen() *Screen {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return d.activeScreen
}

func (d *Display) root() *Control {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return d.screen
}

// --- Input entry points ---

// TouchDown feeds a touch-down at screen point (x, y). It reports whether a
// control accepted the touch.
func (d *Display) TouchDown(x, y int) bool {
	return d.dispatch(EventTouchDown, &Event{X: x, Y: y}, (*Control).DispatchTouchDown)
}

// TouchUp feeds the release of the current touch.
func (d *Display) TouchUp(x, y int) bool {
	return d.dispatch(EventTouchUp, &Event{X: x, Y: y}, (*Control).DispatchTouchUp)
}

// TouchMove feeds movement of the current touch.
func (d *Display) TouchMove(x, y int) bool {
	return d.dispatch(EventTouchMove, &Event{X: x, Y: y}, (*Control).DispatchTouchMove)
}

// Gesture feeds a swipe-class gesture. Gestures skip hit-testing and follow
// the active-child chain.
func (d *Display) Gesture(dir GestureDirection) bool {
	return d.dispatch(EventGesture, &Event{Direction: dir}, (*Control).DispatchGesture)
}

// Key feeds a key press along the active-child chain.
func (d *Display) Key(r rune) bool {
	return d.dispatch(EventKey, &Event{Key: r}, (*Control).DispatchKey)
}

func (d *Display) dispatch(t EventType, e *Event, fn func(*Control, *Event)) bool {
	if d.closed.Load() {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	root := d.root()
	if root == nil {
		return false
	}
	e.Type = t
	e.Time = d.sched.Now()
	fn(root, e)
	d.debugf("%v (%d,%d) handled=%v", t, e.X, e.Y, e.Handled)
	return e.Handled
}

// --- Stats ---

// Stats is a snapshot of the display's render counters.
type Stats struct {
	Renders  int64 // paint passes
	Flushes  int64 // Surface.Flush calls
	Commands int64 // paint commands executed
	Timeouts int64 // renders that gave up waiting for the gate
}

type displayStats struct {
	renders, flushes, commands, timeouts atomic.Int64
}

func (s *displayStats) addRender(cmds int) {
	s.renders.Add(1)
	s.commands.Add(int64(cmds))
}
func (s *displayStats) addFlush()   { s.flushes.Add(1) }
func (s *displayStats) addTimeout() { s.timeouts.Add(1) }

// Stats returns the render counters.
func (d *Display) Stats() Stats {
	return Stats{
		Renders:  d.stats.renders.Load(),
		Flushes:  d.stats.flushes.Load(),
		Commands: d.stats.commands.Load(),
		Timeouts: d.stats.timeouts.Load(),
	}
}

// logStats prints the counters at most once per second in debug mode.
func (d *Display) logStats() {
	if !d.debug.Load() {
		return
	}
	d.statsLog.Do(func() {
		st := d.Stats()
		d.logf("renders: %d | flushes: %d | commands: %d | timeouts: %d",
			st.Renders, st.Flushes, st.Commands, st.Timeouts)
	})
}
