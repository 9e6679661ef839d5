package fixtures

import (
	"fmt"
	"regexp"

	"github.com/ehr/visitreview/internal/domain/artifact"
)

// Problem is a data-quality finding in a fixture set. Problems never stop the
// service from loading; they only show up in `fixtures check`.
type Problem struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s %s: %s", p.Kind, p.ID, p.Message)
}

var mrnDigits = regexp.MustCompile(`^\d{9}$`)

// Check reports dangling references and shape violations in the set.
func Check(s *Set) []Problem {
	var problems []Problem
	report := func(kind, id, format string, args ...interface{}) {
		problems = append(problems, Problem{Kind: kind, ID: id, Message: fmt.Sprintf(format, args...)})
	}

	for _, p := range s.PatientList {
		if !mrnDigits.MatchString(p.MRN) {
			report(KindPatient, p.ID, "mrn %q is not 9 digits", p.MRN)
		}
	}
	for _, v := range s.VisitList {
		if _, ok := s.Patient(v.PatientID); !ok {
			report(KindVisit, v.ID, "references unknown patient %q", v.PatientID)
		}
	}
	for _, n := range s.InsuranceNoteList {
		if _, ok := s.Visit(n.VisitID); !ok {
			report(KindInsuranceNote, n.VisitID, "references unknown visit")
		}
		if primaries := len(n.PrimaryCodes()); primaries > 1 {
			report(KindInsuranceNote, n.VisitID, "%d ICD codes are marked primary", primaries)
		}
		seen := make(map[string]bool)
		for _, c := range n.Layers.Billing.ICDCodes {
			if seen[c.Code] {
				report(KindInsuranceNote, n.VisitID, "duplicate ICD code %s", c.Code)
			}
			seen[c.Code] = true
		}
	}
	orderIDs := make(map[string]bool)
	for _, o := range s.OrderList {
		if orderIDs[o.ID] {
			report(KindOrder, o.ID, "duplicate order id")
		}
		orderIDs[o.ID] = true
		if _, ok := s.Visit(o.VisitID); !ok {
			report(KindOrder, o.ID, "references unknown visit %q", o.VisitID)
		}
		if o.Status.Step() < 0 {
			report(KindOrder, o.ID, "unknown status %q", o.Status)
		}
		if o.Details == nil {
			report(KindOrder, o.ID, "has no details")
			continue
		}
		if o.Details.OrderType() != o.Type {
			report(KindOrder, o.ID, "type %s carries %s details", o.Type, o.Details.OrderType())
		}
		if lab, ok := o.Details.(*artifact.LabDetails); ok && len(lab.Tests) == 0 {
			report(KindOrder, o.ID, "lab order has no tests")
		}
	}
	for _, a := range s.PatientArtifactList {
		if _, ok := s.Visit(a.VisitID); !ok {
			report(KindPatientArtifact, a.VisitID, "references unknown visit")
		}
		if l := a.Preferences.LiteracyLevel; l != "" && !l.Valid() {
			report(KindPatientArtifact, a.VisitID, "unknown literacy level %q", l)
		}
	}
	return problems
}
