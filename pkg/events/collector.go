package events

import "slices"

// EventCollector is embedded in aggregates to gather the events raised by a
// state transition. Aggregates in this module are copied by value, so the
// collector never lets two copies share a backing array.
type EventCollector struct {
	events []DomainEvent
}

// Record appends an event.
func (c *EventCollector) Record(event DomainEvent) {
	c.events = append(slices.Clip(c.events), event)
}

// DomainEvents returns a copy of the recorded events.
func (c EventCollector) DomainEvents() []DomainEvent {
	return slices.Clone(c.events)
}
