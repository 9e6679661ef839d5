package artifact

import (
	"time"
)

// InsuranceNote is the billing-facing artifact generated for a visit.
type InsuranceNote struct {
	VisitID string          `json:"visitId"`
	Layers  InsuranceLayers `json:"layers"`
}

type InsuranceLayers struct {
	Billing           BillingSummary   `json:"billing"`
	MedicalNecessity  MedicalNecessity `json:"medicalNecessity"`
	FullDocumentation string           `json:"fullDocumentation"`
}

type BillingSummary struct {
	ChiefComplaint string    `json:"chiefComplaint"`
	ICDCodes       []ICDCode `json:"icdCodes"`
	EMLevel        string    `json:"emLevel"`
	FollowUp       string    `json:"followUp"`
}

type ICDCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	IsPrimary   bool   `json:"isPrimary"`
}

type MedicalNecessity struct {
	Justification           string               `json:"justification"`
	ServicesRendered        []string             `json:"servicesRendered"`
	OrdersWithJustification []OrderJustification `json:"ordersWithJustification"`
}

type OrderJustification struct {
	CPTCode     string `json:"cptCode"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`
}

// PrimaryCodes returns the codes flagged as primary, in note order.
func (n *InsuranceNote) PrimaryCodes() []ICDCode {
	var out []ICDCode
	for _, c := range n.Layers.Billing.ICDCodes {
		if c.IsPrimary {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy of the note. Slices are never shared.
func (n InsuranceNote) Clone() InsuranceNote {
	out := n
	out.Layers.Billing.ICDCodes = cloneSlice(n.Layers.Billing.ICDCodes)
	out.Layers.MedicalNecessity.ServicesRendered = cloneSlice(n.Layers.MedicalNecessity.ServicesRendered)
	out.Layers.MedicalNecessity.OrdersWithJustification = cloneSlice(n.Layers.MedicalNecessity.OrdersWithJustification)
	return out
}

// OrderType identifies which details variant an order carries.
type OrderType string

const (
	OrderTypePrescription OrderType = "prescription"
	OrderTypeLab          OrderType = "lab"
	OrderTypeImaging      OrderType = "imaging"
	OrderTypeReferral     OrderType = "referral"
)

// OrderTypes lists the order types in display order.
var OrderTypes = []OrderType{OrderTypePrescription, OrderTypeLab, OrderTypeImaging, OrderTypeReferral}

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypePrescription, OrderTypeLab, OrderTypeImaging, OrderTypeReferral:
		return true
	}
	return false
}

// Label is the plural heading used when orders are grouped by type.
func (t OrderType) Label() string {
	switch t {
	case OrderTypePrescription:
		return "Prescriptions"
	case OrderTypeLab:
		return "Laboratories"
	case OrderTypeImaging:
		return "Imaging"
	case OrderTypeReferral:
		return "Referrals"
	}
	return string(t)
}

// OrderStatus is a step in the order workflow. Statuses progress in the
// order they are declared.
type OrderStatus string

const (
	OrderStatusOrdered    OrderStatus = "ordered"
	OrderStatusSent       OrderStatus = "sent"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusReviewed   OrderStatus = "reviewed"
)

var orderWorkflow = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusSent,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusReviewed,
}

// Step returns the zero-based position of s in the workflow, or -1.
func (s OrderStatus) Step() int {
	for i, st := range orderWorkflow {
		if st == s {
			return i
		}
	}
	return -1
}

// Progress is the percentage of the workflow completed at this status.
func (s OrderStatus) Progress() float64 {
	step := s.Step()
	if step < 0 {
		return 0
	}
	return float64(step+1) / float64(len(orderWorkflow)) * 100
}

// Label is the human-readable status name.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusOrdered:
		return "Ordered"
	case OrderStatusSent:
		return "Sent"
	case OrderStatusInProgress:
		return "In Progress"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusReviewed:
		return "Reviewed"
	}
	return string(s)
}

// Badge is the badge variant the front-end renders for the status.
func (s OrderStatus) Badge() string {
	if s == OrderStatusInProgress {
		return "progress"
	}
	return string(s)
}

// WorkflowSteps returns the workflow labels in order.
func WorkflowSteps() []string {
	steps := make([]string, len(orderWorkflow))
	for i, s := range orderWorkflow {
		steps[i] = s.Label()
	}
	return steps
}

// Facility is a named service location attached to an order.
type Facility struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ClinicalOrder is one order generated for a visit. Type never changes after
// creation and always agrees with the concrete type of Details.
type ClinicalOrder struct {
	ID        string       `json:"id"`
	VisitID   string       `json:"visitId"`
	Type      OrderType    `json:"type"`
	Status    OrderStatus  `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	Details   OrderDetails `json:"details"`
}

// Clone returns a deep copy of the order including its details.
func (o ClinicalOrder) Clone() ClinicalOrder {
	out := o
	if o.Details != nil {
		out.Details = o.Details.clone()
	}
	return out
}

// CloneOrders deep-copies an orders collection, preserving nil.
func CloneOrders(orders []ClinicalOrder) []ClinicalOrder {
	if orders == nil {
		return nil
	}
	out := make([]ClinicalOrder, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}

// FilterByType returns the orders of the given type, preserving order.
func FilterByType(orders []ClinicalOrder, t OrderType) []ClinicalOrder {
	var out []ClinicalOrder
	for _, o := range orders {
		if o.Type == t {
			out = append(out, o)
		}
	}
	return out
}

// OrderDetails is the per-type payload of a ClinicalOrder. The set of
// implementations is closed: PrescriptionDetails, LabDetails, ImagingDetails
// and ReferralDetails.
type OrderDetails interface {
	OrderType() OrderType
	clone() OrderDetails
}

type PrescriptionDetails struct {
	Medication   string    `json:"medication"`
	Dose         string    `json:"dose"`
	Frequency    string    `json:"frequency"`
	Quantity     int       `json:"quantity"`
	Refills      int       `json:"refills"`
	Instructions string    `json:"instructions,omitempty"`
	Pharmacy     *Facility `json:"pharmacy,omitempty"`
}

func (*PrescriptionDetails) OrderType() OrderType { return OrderTypePrescription }

func (d *PrescriptionDetails) clone() OrderDetails {
	out := *d
	out.Pharmacy = cloneFacility(d.Pharmacy)
	return &out
}

type LabUrgency string

const (
	LabRoutine LabUrgency = "routine"
	LabUrgent  LabUrgency = "urgent"
	LabStat    LabUrgency = "stat"
)

func (u LabUrgency) Valid() bool {
	return u == LabRoutine || u == LabUrgent || u == LabStat
}

type LabDetails struct {
	Tests    []string   `json:"tests"`
	Urgency  LabUrgency `json:"urgency"`
	Notes    string     `json:"notes,omitempty"`
	Facility *Facility  `json:"facility,omitempty"`
}

func (*LabDetails) OrderType() OrderType { return OrderTypeLab }

func (d *LabDetails) clone() OrderDetails {
	out := *d
	out.Tests = cloneSlice(d.Tests)
	out.Facility = cloneFacility(d.Facility)
	return &out
}

type ImagingDetails struct {
	Study      string    `json:"study"`
	BodyPart   string    `json:"bodyPart"`
	Indication string    `json:"indication"`
	Protocol   string    `json:"protocol,omitempty"`
	Facility   *Facility `json:"facility,omitempty"`
}

func (*ImagingDetails) OrderType() OrderType { return OrderTypeImaging }

func (d *ImagingDetails) clone() OrderDetails {
	out := *d
	out.Facility = cloneFacility(d.Facility)
	return &out
}

type ReferralUrgency string

const (
	ReferralRoutine  ReferralUrgency = "routine"
	ReferralUrgent   ReferralUrgency = "urgent"
	ReferralEmergent ReferralUrgency = "emergent"
)

func (u ReferralUrgency) Valid() bool {
	return u == ReferralRoutine || u == ReferralUrgent || u == ReferralEmergent
}

type ReferralDetails struct {
	Specialty string          `json:"specialty"`
	Provider  string          `json:"provider,omitempty"`
	Urgency   ReferralUrgency `json:"urgency"`
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes,omitempty"`
	Facility  *Facility       `json:"facility,omitempty"`
}

func (*ReferralDetails) OrderType() OrderType { return OrderTypeReferral }

func (d *ReferralDetails) clone() OrderDetails {
	out := *d
	out.Facility = cloneFacility(d.Facility)
	return &out
}

// FacilityOf returns the facility attached to the order details, if any.
func FacilityOf(d OrderDetails) *Facility {
	switch v := d.(type) {
	case *PrescriptionDetails:
		return v.Pharmacy
	case *LabDetails:
		return v.Facility
	case *ImagingDetails:
		return v.Facility
	case *ReferralDetails:
		return v.Facility
	}
	return nil
}

func cloneFacility(f *Facility) *Facility {
	if f == nil {
		return nil
	}
	out := *f
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
