package sprig

import (
	"sync"
	"time"
)

// Event carries input data into hooks and semantic gesture data out to
// listeners. Hooks receive a pointer and may set Handled to claim the event
// and suppress the default behavior.
type Event struct {
	Type    EventType
	Control *Control
	Time    time.Time

	// Screen coordinates of the touch.
	X, Y int
	// Movement since the previous event (TouchMove, Drag, Scroll).
	DeltaX, DeltaY int
	// Where the tracked touch went down (drag events).
	StartX, StartY int

	Direction GestureDirection // EventGesture
	Key       rune             // EventKey
	Index     int              // EventSelect

	Handled bool
}

// EventSink receives a copy of every semantic event emitted inside a
// Display. Used by bridges such as the ECS adapter in sprig/ecs.
type EventSink interface {
	EmitEvent(event Event)
}

// --- Listener registry ---

type handler struct {
	id uint32
	fn func(*Event)
}

type handlerRegistry struct {
	mu     sync.Mutex
	lists  [eventTypeCount][]handler
	nextID uint32
}

// Handle unregisters a listener added with Control.On.
type Handle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the listener so it no longer fires. Calling Remove more
// than once, or on the zero Handle, is a no-op.
func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	s := h.reg.lists[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler{}
			h.reg.lists[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(*Event)) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.lists[t] = append(r.lists[t], handler{id: r.nextID, fn: fn})
	return Handle{id: r.nextID, reg: r, event: t}
}

// snapshot copies the listener list so handlers may add or remove listeners
// (including themselves) while the event is being delivered.
func (r *handlerRegistry) snapshot(t EventType) []handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lists[t]) == 0 {
		return nil
	}
	return append([]handler(nil), r.lists[t]...)
}

func (r *handlerRegistry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lists {
		r.lists[i] = nil
	}
}

// --- Registration on Control ---

// On registers fn for events of type t emitted by this control.
func (c *Control) On(t EventType, fn func(*Event)) Handle {
	if fn == nil {
		panic("sprig: nil listener")
	}
	if t >= eventTypeCount {
		panic("sprig: unknown event type")
	}
	return c.handlers.add(t, fn)
}

// OnTap registers a Tap listener.
func (c *Control) OnTap(fn func(*Event)) Handle { return c.On(EventTap, fn) }

// OnDoubleTap registers a DoubleTap listener.
func (c *Control) OnDoubleTap(fn func(*Event)) Handle { return c.On(EventDoubleTap, fn) }

// OnTapHold registers a TapHold listener.
func (c *Control) OnTapHold(fn func(*Event)) Handle { return c.On(EventTapHold, fn) }

// OnGesture registers a Gesture listener.
func (c *Control) OnGesture(fn func(*Event)) Handle { return c.On(EventGesture, fn) }

// OnKey registers a Key listener.
func (c *Control) OnKey(fn func(*Event)) Handle { return c.On(EventKey, fn) }

// emit delivers a new event of type t built from src to this control's
// listeners and the display's sink. It reports whether any listener ran.
func (c *Control) emit(t EventType, src *Event) bool {
	e := Event{Type: t, Control: c}
	if src != nil {
		e.Time = src.Time
		e.X, e.Y = src.X, src.Y
		e.DeltaX, e.DeltaY = src.DeltaX, src.DeltaY
		e.StartX, e.StartY = src.StartX, src.StartY
		e.Direction = src.Direction
		e.Key = src.Key
		e.Index = src.Index
	}
	if e.Time.IsZero() {
		e.Time = c.now()
	}
	hs := c.handlers.snapshot(t)
	for _, h := range hs {
		ev := e
		h.fn(&ev)
	}
	if d := c.findDisplay(); d != nil {
		d.forward(e)
	}
	return len(hs) > 0
}
