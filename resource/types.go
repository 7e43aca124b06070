package resource

// Handle is a small integer naming a slot in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Invalid is the sentinel returned when no slot was produced.
const Invalid Handle = 0

// DefaultCapacity is the slot count of a table, including reserved slot 0.
const DefaultCapacity = 32

// Event types for slot lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event represents a slot lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about slot lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Dropper is optionally implemented by slot values that need cleanup
// when the table is closed with the slot still live.
type Dropper interface {
	Drop()
}
