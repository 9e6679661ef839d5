package review

import (
	"fmt"
)

// Section is the unit of confirmation and editing.
type Section string

const (
	SectionInsurance Section = "insurance"
	SectionOrders    Section = "orders"
	SectionPatient   Section = "patient"
)

// Sections lists every section in display order.
var Sections = []Section{SectionPatient, SectionOrders, SectionInsurance}

func (s Section) Valid() bool {
	switch s {
	case SectionInsurance, SectionOrders, SectionPatient:
		return true
	}
	return false
}

// Title is the card heading for the section.
func (s Section) Title() string {
	switch s {
	case SectionInsurance:
		return "Insurance Note"
	case SectionOrders:
		return "Clinical Orders"
	case SectionPatient:
		return "Visit Summary"
	}
	return string(s)
}

// EditTitle is the heading of the edit dialog for the section.
func (s Section) EditTitle() string {
	switch s {
	case SectionInsurance:
		return "Edit Insurance Note"
	case SectionOrders:
		return "Edit Clinical Orders"
	case SectionPatient:
		return "Edit Patient Summary"
	}
	return "Edit"
}

// ParseSection validates a section name coming from outside the package.
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if !sec.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return sec, nil
}

// ConfirmationState records which sections the reviewer has confirmed. The
// zero value is the state of a freshly opened visit. It lives only as long as
// the review session.
type ConfirmationState struct {
	Insurance bool `json:"insurance"`
	Orders    bool `json:"orders"`
	Patient   bool `json:"patient"`
}

// Toggle flips the flag for s and leaves the others untouched. An unknown
// section returns the state unchanged.
func (c ConfirmationState) Toggle(s Section) ConfirmationState {
	switch s {
	case SectionInsurance:
		c.Insurance = !c.Insurance
	case SectionOrders:
		c.Orders = !c.Orders
	case SectionPatient:
		c.Patient = !c.Patient
	}
	return c
}

// ConfirmAll sets every flag regardless of the current state.
func (c ConfirmationState) ConfirmAll() ConfirmationState {
	return ConfirmationState{Insurance: true, Orders: true, Patient: true}
}

func (c ConfirmationState) IsAllConfirmed() bool {
	return c.Insurance && c.Orders && c.Patient
}

// Confirmed reports the flag for s.
func (c ConfirmationState) Confirmed(s Section) bool {
	switch s {
	case SectionInsurance:
		return c.Insurance
	case SectionOrders:
		return c.Orders
	case SectionPatient:
		return c.Patient
	}
	return false
}
