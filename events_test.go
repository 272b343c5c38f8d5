package sprig

import (
	"sync"
	"testing"
)

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) EmitEvent(e Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *recordSink) types() []EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

func TestOnPanics(t *testing.T) {
	c := NewControl("c", nil)
	expectPanic(t, "nil listener", func() { c.On(EventTap, nil) })
	expectPanic(t, "unknown type", func() { c.On(EventType(200), func(*Event) {}) })
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	c := NewControl("c", nil)
	var order []int
	c.OnTap(func(*Event) { order = append(order, 1) })
	c.OnTap(func(*Event) { order = append(order, 2) })
	c.OnDoubleTap(func(*Event) { order = append(order, 99) })

	if !c.emit(EventTap, nil) {
		t.Error("emit should report that listeners ran")
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	if c.emit(EventTapHold, nil) {
		t.Error("emit with no listeners should report false")
	}
}

func TestHandleRemove(t *testing.T) {
	c := NewControl("c", nil)
	n := 0
	h := c.OnTap(func(*Event) { n++ })
	c.emit(EventTap, nil)
	h.Remove()
	h.Remove()
	c.emit(EventTap, nil)
	if n != 1 {
		t.Errorf("listener ran %d times, want 1", n)
	}
	Handle{}.Remove()
}

func TestRemoveDuringEmit(t *testing.T) {
	c := NewControl("c", nil)
	var calls []string
	var second Handle
	c.OnTap(func(*Event) {
		calls = append(calls, "first")
		second.Remove()
	})
	second = c.OnTap(func(*Event) { calls = append(calls, "second") })

	c.emit(EventTap, nil)
	c.emit(EventTap, nil)

	// The snapshot taken for the first emit still includes second.
	want := []string{"first", "second", "first"}
	if !equalStrings(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestListenerGetsOwnCopy(t *testing.T) {
	c := NewControl("c", nil)
	var seen int
	c.OnTap(func(e *Event) { e.X = 999 })
	c.OnTap(func(e *Event) { seen = e.X })
	c.emit(EventTap, &Event{X: 5})
	if seen != 5 {
		t.Errorf("second listener saw X=%d, want 5", seen)
	}
}

func TestEventSinkReceivesEvents(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	box := addBox(screen.Control, "box", 0, 0, 50, 50)
	sink := &recordSink{}
	d.SetEventSink(sink)

	tap(d, 10, 10)

	got := sink.types()
	want := []EventType{EventTouchDown, EventTouchUp, EventTap}
	if len(got) != len(want) {
		t.Fatalf("sink got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if sink.events[2].Control != box {
		t.Error("sink event should carry the emitting control")
	}

	d.SetEventSink(nil)
	tap(d, 10, 10)
	if len(sink.types()) != 3 {
		t.Error("events forwarded after the sink was cleared")
	}
}
