package domainevents

import (
	"container/list"
)

// EventLog is an ordered collection of pending domain events, indexed by event type.
//
// The zero value is ready to use. An EventLog is not safe for concurrent use.
type EventLog struct {
	events *list.List
	byType map[string][]*list.Element
}

// NewEventLog creates an empty EventLog.
func NewEventLog() *EventLog {
	l := &EventLog{}
	l.lazyInit()

	return l
}

// Append adds the event at the end.
func (l *EventLog) Append(event DomainEvent) {
	l.lazyInit()

	eventType := event.IsEventType()
	element := l.events.PushBack(event)
	l.byType[eventType] = append(l.byType[eventType], element)
}

// AppendOnce adds the event at the end unless an event of the same type is already present.
func (l *EventLog) AppendOnce(event DomainEvent) {
	if l.HasEventOfType(event.IsEventType()) {
		return
	}

	l.Append(event)
}

// ReplaceLast removes the most recent event of the same type, if any, and appends the event.
func (l *EventLog) ReplaceLast(event DomainEvent) {
	l.lazyInit()

	eventType := event.IsEventType()
	if elements := l.byType[eventType]; len(elements) > 0 {
		last := len(elements) - 1
		l.events.Remove(elements[last])
		l.setIndex(eventType, elements[:last])
	}

	l.Append(event)
}

// ReplaceAll removes every event of the same type and appends the event.
func (l *EventLog) ReplaceAll(event DomainEvent) {
	l.lazyInit()

	eventType := event.IsEventType()
	for _, element := range l.byType[eventType] {
		l.events.Remove(element)
	}
	delete(l.byType, eventType)

	l.Append(event)
}

// Collect returns a snapshot of the events in recording order. The log is not modified.
func (l *EventLog) Collect() DomainEvents {
	if l.events == nil {
		return DomainEvents{}
	}

	events := make(DomainEvents, 0, l.events.Len())
	for element := l.events.Front(); element != nil; element = element.Next() {
		events = append(events, element.Value.(DomainEvent)) //nolint:forcetypeassert
	}

	return events
}

// Clear removes all events.
func (l *EventLog) Clear() {
	if l.events == nil {
		return
	}

	l.events.Init()
	clear(l.byType)
}

// Len returns the number of events.
func (l *EventLog) Len() int {
	if l.events == nil {
		return 0
	}

	return l.events.Len()
}

// HasEventOfType reports whether an event of the given type is present.
func (l *EventLog) HasEventOfType(eventType string) bool {
	return len(l.byType[eventType]) > 0
}

func (l *EventLog) lazyInit() {
	if l.events == nil {
		l.events = list.New()
		l.byType = make(map[string][]*list.Element)
	}
}

// setIndex keeps empty index entries out of the map.
func (l *EventLog) setIndex(eventType string, elements []*list.Element) {
	if len(elements) == 0 {
		delete(l.byType, eventType)

		return
	}

	l.byType[eventType] = elements
}
