package ecs

import (
	"image"
	"testing"
	"time"

	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []sprig.Event
	UIEventType.Subscribe(world, func(w donburi.World, e sprig.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(sprig.Event{Type: sprig.EventTap, X: 100, Y: 200})
	sink.EmitEvent(sprig.Event{Type: sprig.EventGesture, Direction: sprig.GestureLeft})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	UIEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != sprig.EventTap || e.X != 100 || e.Y != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != sprig.EventGesture || e.Direction != sprig.GestureLeft {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_Filter(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world, sprig.EventTap)

	var got []sprig.EventType
	UIEventType.Subscribe(world, func(w donburi.World, e sprig.Event) {
		got = append(got, e.Type)
	})
	sink.EmitEvent(sprig.Event{Type: sprig.EventTouchDown})
	sink.EmitEvent(sprig.Event{Type: sprig.EventTap})
	sink.EmitEvent(sprig.Event{Type: sprig.EventTouchUp})
	UIEventType.ProcessEvents(world)

	if len(got) != 1 || got[0] != sprig.EventTap {
		t.Errorf("got %v, want [Tap]", got)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	UIEventType.Subscribe(world, func(w donburi.World, e sprig.Event) {
		count1++
	})
	UIEventType.Subscribe(world, func(w donburi.World, e sprig.Event) {
		count2++
	})

	sink.EmitEvent(sprig.Event{Type: sprig.EventTap})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

type nopSurface struct{}

func (nopSurface) Size() (int, int) { return 100, 100 }
func (nopSurface) SetClip(sprig.Rect) {}
func (nopSurface) FillRect(sprig.Rect, sprig.Color) {}
func (nopSurface) GradientRect(sprig.Rect, sprig.Color, sprig.Color, bool) {}
func (nopSurface) StrokeRect(sprig.Rect, sprig.Color) {}
func (nopSurface) Line(int, int, int, int, sprig.Color) {}
func (nopSurface) DrawImage(image.Image, sprig.Rect, sprig.ImageMode) {}
func (nopSurface) DrawText(string, sprig.Rect, sprig.Color, sprig.Align) {}
func (nopSurface) TextSize(s string) (int, int) { return 7 * len(s), 13 }
func (nopSurface) Flush(sprig.Rect) error { return nil }

func TestDonburiSink_DisplayForwardsTap(t *testing.T) {
	world := donburi.NewWorld()
	d, err := sprig.NewDisplay(nopSurface{}, sprig.Config{Clock: sprig.NewManualClock(time.Unix(0, 0))})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	d.SetEventSink(NewDonburiSink(world, sprig.EventTap))

	screen := d.NewScreen("screen")
	btn := sprig.NewButton("ok", "OK", nil)
	btn.SetBounds(10, 10, 40, 20)
	screen.AddChild(btn.Control)

	var taps []string
	UIEventType.Subscribe(world, func(w donburi.World, e sprig.Event) {
		taps = append(taps, e.Control.Name())
	})

	d.TouchDown(20, 20)
	d.TouchUp(20, 20)
	UIEventType.ProcessEvents(world)

	if len(taps) != 1 || taps[0] != "ok" {
		t.Errorf("taps = %v, want [ok]", taps)
	}
}
