package chart

import (
	"time"
)

// VisitSummary is a visit with its display values resolved.
type VisitSummary struct {
	Visit
	DateLabel     string `json:"dateLabel"`
	StatusLabel   string `json:"statusLabel"`
	StatusBadge   string `json:"statusBadge"`
	HasTranscript bool   `json:"hasTranscript"`
}

// PatientSummary is a patient with its display values resolved.
type PatientSummary struct {
	Patient
	FullName     string `json:"fullName"`
	Age          int    `json:"age"`
	GenderLabel  string `json:"genderLabel"`
	FormattedMRN string `json:"formattedMrn"`
}

func SummarizeVisit(v Visit) *VisitSummary {
	return &VisitSummary{
		Visit:         v,
		DateLabel:     FormatDate(v.Date),
		StatusLabel:   v.Status.Label(),
		StatusBadge:   v.Status.Badge(),
		HasTranscript: v.Transcript != "",
	}
}

// SummarizePatient derives display values as of now. An unparsable DOB
// yields age 0.
func SummarizePatient(p Patient, now time.Time) *PatientSummary {
	age, _ := Age(p.DOB, now)
	return &PatientSummary{
		Patient:      p,
		FullName:     p.FullName(),
		Age:          age,
		GenderLabel:  p.Gender.Label(),
		FormattedMRN: FormatMRN(p.MRN),
	}
}
