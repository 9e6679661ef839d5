package review

import (
	"time"
)

type EventType string

const (
	EventSectionConfirmed EventType = "section-confirmed"
	EventSectionEdited    EventType = "section-edited"
	EventSectionSaved     EventType = "section-saved"
	EventAllConfirmed     EventType = "all-confirmed"
)

// Event is emitted after a mutation has been applied. Confirmed is set for
// section-confirmed and carries the flag's new value; Value is set for
// section-saved and carries the committed section.
type Event struct {
	Type      EventType   `json:"type"`
	VisitID   string      `json:"visitId"`
	Section   Section     `json:"section,omitempty"`
	Confirmed *bool       `json:"confirmed,omitempty"`
	Value     interface{} `json:"value,omitempty"`
	At        time.Time   `json:"at"`
}

// Emitter receives workflow events. Emit is called synchronously from the
// mutating operation.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(e Event) { f(e) }

// Emitters fans an event out to several emitters in order.
type Emitters []Emitter

func (es Emitters) Emit(e Event) {
	for _, em := range es {
		if em != nil {
			em.Emit(e)
		}
	}
}

type discard struct{}

func (discard) Emit(Event) {}
