// Package sprig is a retained-mode widget toolkit for touch screens, drawn
// with [Ebitengine].
//
// Sprig provides the control tree, touch gesture recognition (tap,
// double-tap, tap-hold, drag, swipe), scrollable containers with
// auto-hiding scrollbars, clipped partial repaints and a small set of stock
// widgets. Rendering goes through the [Surface] interface, so the same tree
// can drive a window, an offscreen buffer or a test fake.
//
// # Quick start
//
//	surface, err := sprig.NewEbitenSurface(480, 320)
//	if err != nil {
//		log.Fatal(err)
//	}
//	display, err := sprig.NewDisplay(surface, sprig.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	screen := display.NewScreen("main")
//
//	ok := sprig.NewButton("ok", "OK", func(*sprig.Event) { log.Print("tapped") })
//	ok.SetBounds(20, 20, 80, 32)
//	screen.AddChild(ok.Control)
//
//	log.Fatal(sprig.Run(display, sprig.RunConfig{Title: "Demo"}))
//
// A [Display] is also an [ebiten.Game], so it can be embedded in an existing
// game loop by calling [Display.Update] and [Display.Draw].
//
// # Control tree
//
// Every element is a [Control]. Controls created with [NewContainer] own
// children; append order is z-order, so the last child paints on top and
// receives touches first. A control's screen position is its local X/Y plus
// an offset inherited from its parent; moving or scrolling a container
// pushes the change through its subtree once.
//
// Widgets are plain structs that embed *Control and pass themselves as the
// behavior value. The control calls optional hook interfaces on the
// behavior: [Painter] to draw, [TouchDownHandler], [TouchUpHandler],
// [TouchMoveHandler], [GestureHandler] and [KeyHandler] to intercept input
// (setting Event.Handled claims it), [Focuser] to take part in focus, and
// [ChildLayoutObserver] to react to child layout.
//
// # Input
//
// A touch-down is offered to children topmost first; the first visible,
// enabled child that hits and accepts tracks the touch until it is lifted,
// wherever the finger goes. Tracked touches produce [EventTap],
// [EventDoubleTap] (second tap within Config.DoubleTapWindow), [EventTapHold]
// (held past Config.TapHoldDelay) and drag events. Gestures and keys skip
// hit-testing and follow the chain of active children.
//
// # Repainting
//
// [Control.Invalidate] repaints a control only when it can reach the screen:
// it belongs to the active [Screen] and nothing above it is hidden or
// suspended. Each repaint is clipped to the control's bounds intersected
// with its ancestors' and flushed exactly once. Wrap bulk changes in
// SetSuspended(true) and SetSuspended(false) to get a single repaint.
//
// # Timers
//
// Each display has one [Scheduler]. Timer callbacks run under the same lock
// as input dispatch. Configure a [ManualClock] to drive timers from
// [Scheduler.Advance] in tests.
//
// [Ebitengine]: https://ebitengine.org
package sprig
