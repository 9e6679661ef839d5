package review

import (
	"fmt"

	"github.com/ehr/visitreview/internal/domain/artifact"
)

// Artifacts holds the committed copies of the three artifacts for one visit.
type Artifacts struct {
	Insurance artifact.InsuranceNote   `json:"insurance"`
	Orders    []artifact.ClinicalOrder `json:"orders"`
	Patient   artifact.PatientArtifact `json:"patient"`
}

// Clone deep-copies every section.
func (a Artifacts) Clone() Artifacts {
	return Artifacts{
		Insurance: a.Insurance.Clone(),
		Orders:    artifact.CloneOrders(a.Orders),
		Patient:   a.Patient.Clone(),
	}
}

// Section returns a deep copy of the committed value for s.
func (a Artifacts) Section(s Section) interface{} {
	switch s {
	case SectionInsurance:
		return a.Insurance.Clone()
	case SectionOrders:
		return artifact.CloneOrders(a.Orders)
	case SectionPatient:
		return a.Patient.Clone()
	}
	return nil
}

// Draft is the uncommitted working copy of exactly one section. Only the
// field matching Section is populated.
type Draft struct {
	Section   Section
	Insurance *artifact.InsuranceNote
	Orders    []artifact.ClinicalOrder
	Patient   *artifact.PatientArtifact
}

func newDraft(s Section, committed Artifacts) (*Draft, error) {
	d := &Draft{Section: s}
	switch s {
	case SectionInsurance:
		note := committed.Insurance.Clone()
		d.Insurance = &note
	case SectionOrders:
		d.Orders = artifact.CloneOrders(committed.Orders)
	case SectionPatient:
		pa := committed.Patient.Clone()
		d.Patient = &pa
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return d, nil
}

func (d *Draft) clone() *Draft {
	out := &Draft{Section: d.Section}
	if d.Insurance != nil {
		note := d.Insurance.Clone()
		out.Insurance = &note
	}
	if d.Orders != nil {
		out.Orders = artifact.CloneOrders(d.Orders)
	}
	if d.Patient != nil {
		pa := d.Patient.Clone()
		out.Patient = &pa
	}
	return out
}

// Value returns a deep copy of the draft's section payload.
func (d *Draft) Value() interface{} {
	switch d.Section {
	case SectionInsurance:
		return d.Insurance.Clone()
	case SectionOrders:
		return artifact.CloneOrders(d.Orders)
	case SectionPatient:
		return d.Patient.Clone()
	}
	return nil
}

// Transaction is a draft/commit pair over one section at a time. The zero
// value has no open draft.
type Transaction struct {
	draft *Draft
}

// Begin opens a draft for s seeded from committed. A draft that is already
// open, for any section, is discarded.
func (t *Transaction) Begin(s Section, committed Artifacts) error {
	d, err := newDraft(s, committed)
	if err != nil {
		return err
	}
	t.draft = d
	return nil
}

// Open reports the section being edited.
func (t *Transaction) Open() (Section, bool) {
	if t.draft == nil {
		return "", false
	}
	return t.draft.Section, true
}

// Draft returns a copy of the open draft, or nil.
func (t *Transaction) Draft() *Draft {
	if t.draft == nil {
		return nil
	}
	return t.draft.clone()
}

// Apply runs the edits against the draft. Either every edit applies or the
// draft is left exactly as it was.
func (t *Transaction) Apply(edits ...Edit) error {
	if t.draft == nil {
		return ErrNoOpenTransaction
	}
	work := t.draft.clone()
	for i, e := range edits {
		if e.Section() != work.Section {
			return fmt.Errorf("edit %d: %w: %s edit while editing %s", i, ErrSectionMismatch, e.Section(), work.Section)
		}
		if err := e.apply(work); err != nil {
			return fmt.Errorf("edit %d: %w", i, err)
		}
	}
	t.draft = work
	return nil
}

// Commit writes the draft over the committed value of its section and closes
// the transaction.
func (t *Transaction) Commit(committed *Artifacts) (Section, error) {
	if t.draft == nil {
		return "", ErrNoOpenTransaction
	}
	d := t.draft
	switch d.Section {
	case SectionInsurance:
		committed.Insurance = *d.Insurance
	case SectionOrders:
		committed.Orders = d.Orders
	case SectionPatient:
		committed.Patient = *d.Patient
	}
	t.draft = nil
	return d.Section, nil
}

// Cancel discards the open draft, if any.
func (t *Transaction) Cancel() {
	t.draft = nil
}
