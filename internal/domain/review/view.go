package review

import (
	"github.com/ehr/visitreview/internal/domain/artifact"
	"github.com/ehr/visitreview/internal/domain/chart"
)

// View is the combined read model handed to the presentation layer. In the
// not-found state only State, Message and ReturnTo are set.
type View struct {
	State    string `json:"state"`
	Message  string `json:"message,omitempty"`
	ReturnTo string `json:"returnTo,omitempty"`

	Visit   *chart.VisitSummary   `json:"visit,omitempty"`
	Patient *chart.PatientSummary `json:"patient,omitempty"`

	Confirmation   ConfirmationState `json:"confirmation"`
	AllConfirmed   bool              `json:"allConfirmed"`
	ArtifactsReady bool              `json:"artifactsReady"`

	Sections        []SectionView             `json:"sections,omitempty"`
	Insurance       *artifact.InsuranceNote   `json:"insurance,omitempty"`
	Orders          []artifact.ClinicalOrder  `json:"orders"`
	PatientArtifact *artifact.PatientArtifact `json:"patientArtifact,omitempty"`
	Editing         *DraftView                `json:"editing,omitempty"`
}

// SectionView describes one artifact card.
type SectionView struct {
	Section   Section `json:"section"`
	Title     string  `json:"title"`
	Confirmed bool    `json:"confirmed"`
}

// DraftView is the open edit dialog.
type DraftView struct {
	Section Section     `json:"section"`
	Title   string      `json:"title"`
	Value   interface{} `json:"value"`
}

// NotFoundView is the terminal view for an unresolvable route.
func NotFoundView() View {
	return View{State: StateNotFound, Message: "Visit not found", ReturnTo: NotFoundReturnTo}
}

// View builds the read model. Every artifact in it is a copy.
func (c *Controller) View() View {
	if !c.found {
		return NotFoundView()
	}
	now := c.clock()

	committed := c.committed.Clone()
	v := View{
		State:           StateReady,
		Visit:           chart.SummarizeVisit(c.visit),
		Patient:         chart.SummarizePatient(c.patient.Clone(), now),
		Confirmation:    c.confirmed,
		AllConfirmed:    c.confirmed.IsAllConfirmed(),
		ArtifactsReady:  c.artifactsReady,
		Insurance:       &committed.Insurance,
		Orders:          committed.Orders,
		PatientArtifact: &committed.Patient,
	}
	for _, s := range Sections {
		v.Sections = append(v.Sections, SectionView{Section: s, Title: s.Title(), Confirmed: c.confirmed.Confirmed(s)})
	}
	if d := c.tx.Draft(); d != nil {
		v.Editing = &DraftView{Section: d.Section, Title: d.Section.EditTitle(), Value: d.Value()}
	}
	return v
}
