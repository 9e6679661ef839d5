package chart

import (
	"time"
)

// Patient is read-only reference data supplied by the fixture catalog.
type Patient struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	DOB         string       `json:"dob"`
	MRN         string       `json:"mrn"`
	Gender      Gender       `json:"gender"`
	Insurance   Insurance    `json:"insurance"`
	Allergies   []string     `json:"allergies"`
	Medications []Medication `json:"medications"`
	Contact     Contact      `json:"contact"`
}

// Clone returns a copy that shares no slices with p.
func (p Patient) Clone() Patient {
	out := p
	if p.Allergies != nil {
		out.Allergies = append([]string(nil), p.Allergies...)
	}
	if p.Medications != nil {
		out.Medications = append([]Medication(nil), p.Medications...)
	}
	return out
}

type Insurance struct {
	Provider    string `json:"provider"`
	PlanID      string `json:"planId"`
	GroupNumber string `json:"groupNumber"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	StartDate string `json:"startDate"`
}

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	}
	return "Other"
}

// FullName returns "First Last".
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Visit is one clinical encounter. Transcript is empty when none was captured.
type Visit struct {
	ID             string      `json:"id"`
	PatientID      string      `json:"patientId"`
	Date           time.Time   `json:"date"`
	Provider       string      `json:"provider"`
	ChiefComplaint string      `json:"chiefComplaint"`
	Status         VisitStatus `json:"status"`
	Transcript     string      `json:"transcript,omitempty"`
}

type VisitStatus string

const (
	VisitCheckedIn  VisitStatus = "checked-in"
	VisitInProgress VisitStatus = "in-progress"
	VisitCompleted  VisitStatus = "completed"
)

func (s VisitStatus) Label() string {
	switch s {
	case VisitCheckedIn:
		return "Checked In"
	case VisitInProgress:
		return "In Progress"
	case VisitCompleted:
		return "Completed"
	}
	return string(s)
}

// Badge is the badge variant used for the status pill.
func (s VisitStatus) Badge() string {
	switch s {
	case VisitCompleted:
		return "success"
	case VisitInProgress:
		return "progress"
	}
	return "info"
}
