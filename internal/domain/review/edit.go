package review

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ehr/visitreview/internal/domain/artifact"
)

// Edit is one field-level change to a draft.
type Edit interface {
	Section() Section
	apply(d *Draft) error
}

// InsuranceField names a scalar text field of the insurance note.
type InsuranceField string

const (
	FieldChiefComplaint    InsuranceField = "billing.chiefComplaint"
	FieldEMLevel           InsuranceField = "billing.emLevel"
	FieldFollowUp          InsuranceField = "billing.followUp"
	FieldJustification     InsuranceField = "medicalNecessity.justification"
	FieldFullDocumentation InsuranceField = "fullDocumentation"
)

// SetInsuranceText replaces a scalar text field of the insurance note.
type SetInsuranceText struct {
	Field InsuranceField
	Value string
}

func (SetInsuranceText) Section() Section { return SectionInsurance }

func (e SetInsuranceText) apply(d *Draft) error {
	n := d.Insurance
	switch e.Field {
	case FieldChiefComplaint:
		n.Layers.Billing.ChiefComplaint = e.Value
	case FieldEMLevel:
		n.Layers.Billing.EMLevel = e.Value
	case FieldFollowUp:
		n.Layers.Billing.FollowUp = e.Value
	case FieldJustification:
		n.Layers.MedicalNecessity.Justification = e.Value
	case FieldFullDocumentation:
		n.Layers.FullDocumentation = e.Value
	default:
		return fmt.Errorf("%w: insurance %q", ErrUnknownField, e.Field)
	}
	return nil
}

// ICDField names a text field of an ICD code.
type ICDField string

const (
	ICDFieldCode        ICDField = "code"
	ICDFieldDescription ICDField = "description"
)

// SetICDCode replaces the code or description of the ICD code at Index.
type SetICDCode struct {
	Index int
	Field ICDField
	Value string
}

func (SetICDCode) Section() Section { return SectionInsurance }

func (e SetICDCode) apply(d *Draft) error {
	codes := d.Insurance.Layers.Billing.ICDCodes
	if e.Index < 0 || e.Index >= len(codes) {
		return fmt.Errorf("%w: icd code %d of %d", ErrIndexOutOfRange, e.Index, len(codes))
	}
	switch e.Field {
	case ICDFieldCode:
		codes[e.Index].Code = e.Value
	case ICDFieldDescription:
		codes[e.Index].Description = e.Value
	default:
		return fmt.Errorf("%w: icd code %q", ErrUnknownField, e.Field)
	}
	return nil
}

// ToggleICDPrimary flips the primary flag of the code at Index. A note keeps
// at most one primary code: promoting a code demotes whichever code was
// primary before. Demoting the primary code leaves the note without one.
type ToggleICDPrimary struct {
	Index int
}

func (ToggleICDPrimary) Section() Section { return SectionInsurance }

func (e ToggleICDPrimary) apply(d *Draft) error {
	codes := d.Insurance.Layers.Billing.ICDCodes
	if e.Index < 0 || e.Index >= len(codes) {
		return fmt.Errorf("%w: icd code %d of %d", ErrIndexOutOfRange, e.Index, len(codes))
	}
	promote := !codes[e.Index].IsPrimary
	if promote {
		for i := range codes {
			codes[i].IsPrimary = false
		}
	}
	codes[e.Index].IsPrimary = promote
	return nil
}

// SetOrderDetail replaces one details field of the order at Index. Only the
// fields of the order's own type are accepted; type, status, id and
// facilities are never editable. Item addresses a lab test when Field is
// "tests".
type SetOrderDetail struct {
	Index int
	Field string
	Item  int
	Value string
}

func (SetOrderDetail) Section() Section { return SectionOrders }

func (e SetOrderDetail) apply(d *Draft) error {
	if e.Index < 0 || e.Index >= len(d.Orders) {
		return fmt.Errorf("%w: order %d of %d", ErrIndexOutOfRange, e.Index, len(d.Orders))
	}
	order := &d.Orders[e.Index]
	var err error
	switch det := order.Details.(type) {
	case *artifact.PrescriptionDetails:
		err = editPrescription(det, e)
	case *artifact.LabDetails:
		err = editLab(det, e)
	case *artifact.ImagingDetails:
		err = editImaging(det, e)
	case *artifact.ReferralDetails:
		err = editReferral(det, e)
	default:
		err = fmt.Errorf("%w: order has no details", ErrFieldNotEditable)
	}
	if err != nil {
		return fmt.Errorf("order %s: %w", order.ID, err)
	}
	return nil
}

func editPrescription(det *artifact.PrescriptionDetails, e SetOrderDetail) error {
	switch e.Field {
	case "medication":
		det.Medication = e.Value
	case "dose":
		det.Dose = e.Value
	case "frequency":
		det.Frequency = e.Value
	case "instructions":
		det.Instructions = e.Value
	case "quantity":
		n, err := parseCount(e.Value)
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		det.Quantity = n
	case "refills":
		n, err := parseCount(e.Value)
		if err != nil {
			return fmt.Errorf("refills: %w", err)
		}
		det.Refills = n
	default:
		return notEditable(artifact.OrderTypePrescription, e.Field)
	}
	return nil
}

func editLab(det *artifact.LabDetails, e SetOrderDetail) error {
	switch e.Field {
	case "tests":
		if e.Item < 0 || e.Item >= len(det.Tests) {
			return fmt.Errorf("%w: test %d of %d", ErrIndexOutOfRange, e.Item, len(det.Tests))
		}
		det.Tests[e.Item] = e.Value
	case "urgency":
		u := artifact.LabUrgency(e.Value)
		if !u.Valid() {
			return fmt.Errorf("%w: lab urgency %q", ErrInvalidValue, e.Value)
		}
		det.Urgency = u
	case "notes":
		det.Notes = e.Value
	default:
		return notEditable(artifact.OrderTypeLab, e.Field)
	}
	return nil
}

func editImaging(det *artifact.ImagingDetails, e SetOrderDetail) error {
	switch e.Field {
	case "study":
		det.Study = e.Value
	case "bodyPart":
		det.BodyPart = e.Value
	case "indication":
		det.Indication = e.Value
	case "protocol":
		det.Protocol = e.Value
	default:
		return notEditable(artifact.OrderTypeImaging, e.Field)
	}
	return nil
}

func editReferral(det *artifact.ReferralDetails, e SetOrderDetail) error {
	switch e.Field {
	case "specialty":
		det.Specialty = e.Value
	case "provider":
		det.Provider = e.Value
	case "reason":
		det.Reason = e.Value
	case "notes":
		det.Notes = e.Value
	case "urgency":
		u := artifact.ReferralUrgency(e.Value)
		if !u.Valid() {
			return fmt.Errorf("%w: referral urgency %q", ErrInvalidValue, e.Value)
		}
		det.Urgency = u
	default:
		return notEditable(artifact.OrderTypeReferral, e.Field)
	}
	return nil
}

func notEditable(t artifact.OrderType, field string) error {
	return fmt.Errorf("%w: %q on %s order", ErrFieldNotEditable, field, t)
}

// parseCount accepts a non-negative base-10 integer. Anything else is
// rejected so the previous value stays in place.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidNumber, n)
	}
	return n, nil
}

// PatientField names a scalar text field of the patient summary.
type PatientField string

const (
	FieldGreeting          PatientField = "greeting"
	FieldSummary           PatientField = "summary"
	FieldWarningSignsTitle PatientField = "warningSignsTitle"
)

// SetPatientText replaces a scalar text field of the patient summary.
type SetPatientText struct {
	Field PatientField
	Value string
}

func (SetPatientText) Section() Section { return SectionPatient }

func (e SetPatientText) apply(d *Draft) error {
	c := &d.Patient.Content
	switch e.Field {
	case FieldGreeting:
		c.Greeting = e.Value
	case FieldSummary:
		c.Summary = e.Value
	case FieldWarningSignsTitle:
		c.WarningSignsTitle = e.Value
	default:
		return fmt.Errorf("%w: patient %q", ErrUnknownField, e.Field)
	}
	return nil
}

// PatientList names a list of the patient summary.
type PatientList string

const (
	ListMedications  PatientList = "medications"
	ListNextSteps    PatientList = "nextSteps"
	ListWarningSigns PatientList = "warningSigns"
)

// SetPatientListItem replaces the item at Index. Lists never grow or shrink
// through an edit.
type SetPatientListItem struct {
	List  PatientList
	Index int
	Value string
}

func (SetPatientListItem) Section() Section { return SectionPatient }

func (e SetPatientListItem) apply(d *Draft) error {
	c := &d.Patient.Content
	var items []string
	switch e.List {
	case ListMedications:
		items = c.Medications
	case ListNextSteps:
		items = c.NextSteps
	case ListWarningSigns:
		items = c.WarningSigns
	default:
		return fmt.Errorf("%w: patient list %q", ErrUnknownField, e.List)
	}
	if e.Index < 0 || e.Index >= len(items) {
		return fmt.Errorf("%w: %s item %d of %d", ErrIndexOutOfRange, e.List, e.Index, len(items))
	}
	items[e.Index] = e.Value
	return nil
}
