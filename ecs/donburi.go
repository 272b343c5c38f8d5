package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// UIEventType is the Donburi event type for sprig events.
var UIEventType = events.NewEventType[sprig.Event]()

type donburiSink struct {
	world  donburi.World
	filter map[sprig.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. With no
// types given every event is published; otherwise only the listed types.
// Events are queued until UIEventType.ProcessEvents runs.
func NewDonburiSink(world donburi.World, types ...sprig.EventType) sprig.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.filter = make(map[sprig.EventType]bool, len(types))
		for _, t := range types {
			s.filter[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event sprig.Event) {
	if s.filter != nil && !s.filter[event.Type] {
		return
	}
	UIEventType.Publish(s.world, event)
}
