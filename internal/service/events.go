package service

// EventType defines the type of event
type EventType string

const (
	EventCategoryCreated    EventType = "category_created"
	EventCategoryDeleted    EventType = "category_deleted"
	EventPaymentTypeCreated EventType = "payment_type_created"
	EventPaymentTypeDeleted EventType = "payment_type_deleted"
	EventEntryCreated       EventType = "entry_created"
	EventEntryDeleted       EventType = "entry_deleted"
)

// Event represents a ledger change that occurred in the system
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
