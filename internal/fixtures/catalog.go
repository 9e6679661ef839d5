// Package fixtures supplies the read-only reference data the review workflow
// is seeded from: patients, visits and the generated artifacts.
package fixtures

import (
	"context"

	"github.com/ehr/visitreview/internal/domain/artifact"
	"github.com/ehr/visitreview/internal/domain/chart"
)

// Catalog is the read side consumed by the review controller and the
// catalog endpoints. Returned artifacts are deep copies; callers may mutate
// them freely.
type Catalog interface {
	Patients() []chart.Patient
	Visits() []chart.Visit
	Patient(id string) (chart.Patient, bool)
	Visit(id string) (chart.Visit, bool)
	InsuranceNotes() []artifact.InsuranceNote
	InsuranceNoteFor(visitID string) (artifact.InsuranceNote, bool)
	Orders() []artifact.ClinicalOrder
	OrdersFor(visitID string) []artifact.ClinicalOrder
	PatientArtifactFor(visitID string) (artifact.PatientArtifact, bool)
}

// Source produces a fixture Set.
type Source interface {
	Load(ctx context.Context) (*Set, error)
}

// Set is an in-memory fixture collection. Slices keep fixture order.
type Set struct {
	PatientList         []chart.Patient
	VisitList           []chart.Visit
	InsuranceNoteList   []artifact.InsuranceNote
	OrderList           []artifact.ClinicalOrder
	PatientArtifactList []artifact.PatientArtifact
}

var _ Catalog = (*Set)(nil)

func (s *Set) Patients() []chart.Patient {
	out := make([]chart.Patient, len(s.PatientList))
	for i, p := range s.PatientList {
		out[i] = p.Clone()
	}
	return out
}

func (s *Set) Visits() []chart.Visit {
	return append([]chart.Visit(nil), s.VisitList...)
}

func (s *Set) Patient(id string) (chart.Patient, bool) {
	for _, p := range s.PatientList {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return chart.Patient{}, false
}

func (s *Set) Visit(id string) (chart.Visit, bool) {
	for _, v := range s.VisitList {
		if v.ID == id {
			return v, true
		}
	}
	return chart.Visit{}, false
}

// VisitsForPatient returns the patient's visits in fixture order.
func (s *Set) VisitsForPatient(patientID string) []chart.Visit {
	var out []chart.Visit
	for _, v := range s.VisitList {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out
}

func (s *Set) InsuranceNotes() []artifact.InsuranceNote {
	out := make([]artifact.InsuranceNote, len(s.InsuranceNoteList))
	for i, n := range s.InsuranceNoteList {
		out[i] = n.Clone()
	}
	return out
}

func (s *Set) InsuranceNoteFor(visitID string) (artifact.InsuranceNote, bool) {
	for _, n := range s.InsuranceNoteList {
		if n.VisitID == visitID {
			return n.Clone(), true
		}
	}
	return artifact.InsuranceNote{}, false
}

func (s *Set) Orders() []artifact.ClinicalOrder {
	return artifact.CloneOrders(s.OrderList)
}

func (s *Set) OrdersFor(visitID string) []artifact.ClinicalOrder {
	var out []artifact.ClinicalOrder
	for _, o := range s.OrderList {
		if o.VisitID == visitID {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *Set) PatientArtifactFor(visitID string) (artifact.PatientArtifact, bool) {
	for _, a := range s.PatientArtifactList {
		if a.VisitID == visitID {
			return a.Clone(), true
		}
	}
	return artifact.PatientArtifact{}, false
}
