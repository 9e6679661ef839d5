package review

import (
	"fmt"
	"time"

	"github.com/ehr/visitreview/internal/domain/artifact"
	"github.com/ehr/visitreview/internal/domain/chart"
)

// Catalog is the read-only fixture lookup the controller is seeded from.
type Catalog interface {
	Visit(id string) (chart.Visit, bool)
	Patient(id string) (chart.Patient, bool)
	InsuranceNoteFor(visitID string) (artifact.InsuranceNote, bool)
	OrdersFor(visitID string) []artifact.ClinicalOrder
	PatientArtifactFor(visitID string) (artifact.PatientArtifact, bool)
}

// Route carries the entry parameters supplied by the hosting shell.
// PatientID is optional; when set it must match the visit's patient.
type Route struct {
	VisitID   string `json:"visit_id"`
	PatientID string `json:"patient_id,omitempty"`
}

const (
	StateReady    = "ready"
	StateNotFound = "not-found"

	// NotFoundReturnTo is the single navigation target offered by the
	// not-found view.
	NotFoundReturnTo = "/"
)

// Controller binds one visit and patient to a confirmation state and an edit
// transaction. It is not safe for concurrent use; a review session owns
// exactly one.
type Controller struct {
	route          Route
	found          bool
	visit          chart.Visit
	patient        chart.Patient
	artifactsReady bool

	committed Artifacts
	confirmed ConfirmationState
	tx        Transaction

	emit  Emitter
	clock func() time.Time
}

// Open resolves the route against the catalog. A missing visit, a missing
// patient, or a patient id that does not match the visit yields a controller
// in the not-found state; Open itself never fails.
func Open(cat Catalog, route Route, emit Emitter) *Controller {
	if emit == nil {
		emit = discard{}
	}
	c := &Controller{route: route, emit: emit, clock: time.Now}

	visit, ok := cat.Visit(route.VisitID)
	if !ok {
		return c
	}
	if route.PatientID != "" && route.PatientID != visit.PatientID {
		return c
	}
	patient, ok := cat.Patient(visit.PatientID)
	if !ok {
		return c
	}

	c.found = true
	c.visit = visit
	c.patient = patient.Clone()

	note, hasNote := cat.InsuranceNoteFor(visit.ID)
	if !hasNote {
		note = artifact.InsuranceNote{VisitID: visit.ID}
	}
	summary, hasSummary := cat.PatientArtifactFor(visit.ID)
	if !hasSummary {
		summary = artifact.PatientArtifact{VisitID: visit.ID}
	}
	orders := cat.OrdersFor(visit.ID)
	if orders == nil {
		orders = []artifact.ClinicalOrder{}
	}
	c.committed = Artifacts{Insurance: note, Orders: orders, Patient: summary}.Clone()
	c.artifactsReady = hasNote || hasSummary || len(orders) > 0
	return c
}

// SetClock overrides the time source used for events and derived values.
func (c *Controller) SetClock(clock func() time.Time) {
	c.clock = clock
}

// Found reports whether the route resolved to a visit and patient.
func (c *Controller) Found() bool { return c.found }

// Confirmation returns the current confirmation state.
func (c *Controller) Confirmation() ConfirmationState { return c.confirmed }

// Committed returns a deep copy of the committed artifacts.
func (c *Controller) Committed() Artifacts { return c.committed.Clone() }

// Editing reports the section with an open draft, if any.
func (c *Controller) Editing() (Section, bool) { return c.tx.Open() }

// ConfirmSection toggles the confirmation flag of s.
func (c *Controller) ConfirmSection(s Section) error {
	if err := c.check(s); err != nil {
		return err
	}
	c.confirmed = c.confirmed.Toggle(s)
	confirmed := c.confirmed.Confirmed(s)
	c.publish(Event{Type: EventSectionConfirmed, Section: s, Confirmed: &confirmed})
	return nil
}

// ConfirmAllSections confirms every section regardless of the prior state.
func (c *Controller) ConfirmAllSections() error {
	if !c.found {
		return ErrVisitNotFound
	}
	c.confirmed = c.confirmed.ConfirmAll()
	c.publish(Event{Type: EventAllConfirmed})
	return nil
}

// EditSection opens a draft of s seeded from the committed data. An open
// draft of any section is discarded first.
func (c *Controller) EditSection(s Section) error {
	if err := c.check(s); err != nil {
		return err
	}
	if err := c.tx.Begin(s, c.committed); err != nil {
		return err
	}
	c.publish(Event{Type: EventSectionEdited, Section: s})
	return nil
}

// ApplyEdits changes the open draft. Nothing is committed.
func (c *Controller) ApplyEdits(edits ...Edit) error {
	if !c.found {
		return ErrVisitNotFound
	}
	return c.tx.Apply(edits...)
}

// SaveSection commits the open draft and closes it. The committed value is
// visible to the next read.
func (c *Controller) SaveSection() (Section, error) {
	if !c.found {
		return "", ErrVisitNotFound
	}
	s, err := c.tx.Commit(&c.committed)
	if err != nil {
		return "", err
	}
	c.publish(Event{Type: EventSectionSaved, Section: s, Value: c.committed.Section(s)})
	return s, nil
}

// CancelEdit discards the open draft. Cancelling with nothing open is a no-op.
func (c *Controller) CancelEdit() error {
	if !c.found {
		return ErrVisitNotFound
	}
	c.tx.Cancel()
	return nil
}

func (c *Controller) check(s Section) error {
	if !c.found {
		return ErrVisitNotFound
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return nil
}

func (c *Controller) publish(e Event) {
	e.VisitID = c.visit.ID
	e.At = c.clock().UTC()
	c.emit.Emit(e)
}
