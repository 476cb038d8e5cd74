package pure

import "github.com/google/uuid"

// Event identifies what happened to a single memoized call.
type Event string

const (
	// EventHit is emitted when a stored result is returned without invoking the target.
	EventHit Event = "hit"

	// EventMiss is emitted when the target is invoked and its result stored.
	EventMiss Event = "miss"

	// EventFault is emitted when the target returned an error or panicked.
	// Nothing is stored for the key.
	EventFault Event = "fault"

	// EventBypass is emitted when the arguments cannot be keyed, typically a func
	// held in an unexported struct field. The target runs and nothing is stored.
	EventBypass Event = "bypass"
)

type EventData struct {
	Event   Event
	TableID uuid.UUID
	Key     Key
}

// Observer receives one EventData per memoized call.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	On(EventData)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(EventData)

func (f ObserverFunc) On(data EventData) { f(data) }

// Observers fans a single event out to every observer in order.
type Observers []Observer

func (obs Observers) On(data EventData) {
	for _, o := range obs {
		if o != nil {
			o.On(data)
		}
	}
}

type nopObserver struct{}

func (nopObserver) On(EventData) {}
