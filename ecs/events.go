package ecs

// EventType names an event payload.
type EventType string

const (
	EventCharacterDamaged EventType = "character_damaged"
	EventPartyRespawned   EventType = "party_respawned"
	EventControlChanged   EventType = "control_changed"
	EventHazardHit        EventType = "hazard_hit"
	EventScenarioLog      EventType = "scenario_log"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a FIFO of the current frame's events. Events from the previous
// frame stay readable through Previous after the world rotates the queue.
type EventQueue struct {
	items []Event
	prev  []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Pending returns the current frame's events without clearing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Previous returns the events of the last completed frame.
func (q *EventQueue) Previous() []Event {
	if q == nil {
		return nil
	}
	return q.prev
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.prev = q.items
	q.items = nil
}
