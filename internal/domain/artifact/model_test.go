package artifact

import (
	"testing"
)

func TestInsuranceNote_Clone(t *testing.T) {
	n := InsuranceNote{VisitID: "v1"}
	n.Layers.Billing.ICDCodes = []ICDCode{{Code: "M17.11", IsPrimary: true}, {Code: "M25.562"}}
	n.Layers.MedicalNecessity.ServicesRendered = []string{"exam"}

	c := n.Clone()
	c.Layers.Billing.ICDCodes[0].IsPrimary = false
	c.Layers.MedicalNecessity.ServicesRendered[0] = "changed"

	if !n.Layers.Billing.ICDCodes[0].IsPrimary {
		t.Error("clone shares ICD codes with the original")
	}
	if n.Layers.MedicalNecessity.ServicesRendered[0] != "exam" {
		t.Error("clone shares services with the original")
	}
}

func TestInsuranceNote_PrimaryCodes(t *testing.T) {
	n := InsuranceNote{}
	n.Layers.Billing.ICDCodes = []ICDCode{{Code: "A"}, {Code: "B", IsPrimary: true}}
	got := n.PrimaryCodes()
	if len(got) != 1 || got[0].Code != "B" {
		t.Errorf("unexpected primary codes %+v", got)
	}
}

func TestClinicalOrder_CloneDetails(t *testing.T) {
	o := ClinicalOrder{ID: "o4", Type: OrderTypeLab, Details: &LabDetails{
		Tests:    []string{"CBC", "CMP"},
		Facility: &Facility{Name: "Quest Diagnostics"},
	}}
	c := o.Clone()
	lab := c.Details.(*LabDetails)
	lab.Tests[0] = "ESR"
	lab.Facility.Name = "Other"

	orig := o.Details.(*LabDetails)
	if orig.Tests[0] != "CBC" {
		t.Error("clone shares tests with the original")
	}
	if orig.Facility.Name != "Quest Diagnostics" {
		t.Error("clone shares facility with the original")
	}
}

func TestCloneOrders_PreservesNil(t *testing.T) {
	if CloneOrders(nil) != nil {
		t.Error("expected nil for nil input")
	}
	if got := CloneOrders([]ClinicalOrder{}); got == nil || len(got) != 0 {
		t.Error("expected empty non-nil slice")
	}
}

func TestOrderStatus_Workflow(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		step     int
		progress float64
		badge    string
	}{
		{OrderStatusOrdered, 0, 20, "ordered"},
		{OrderStatusSent, 1, 40, "sent"},
		{OrderStatusInProgress, 2, 60, "progress"},
		{OrderStatusCompleted, 3, 80, "completed"},
		{OrderStatusReviewed, 4, 100, "reviewed"},
		{OrderStatus("lost"), -1, 0, "lost"},
	}
	for _, tt := range tests {
		if got := tt.status.Step(); got != tt.step {
			t.Errorf("%s.Step() = %d, want %d", tt.status, got, tt.step)
		}
		if got := tt.status.Progress(); got != tt.progress {
			t.Errorf("%s.Progress() = %v, want %v", tt.status, got, tt.progress)
		}
		if got := tt.status.Badge(); got != tt.badge {
			t.Errorf("%s.Badge() = %q, want %q", tt.status, got, tt.badge)
		}
	}
	if steps := WorkflowSteps(); len(steps) != 5 || steps[2] != "In Progress" {
		t.Errorf("unexpected workflow steps %v", steps)
	}
}

func TestFacilityOf(t *testing.T) {
	f := &Facility{Name: "CVS Pharmacy"}
	if got := FacilityOf(&PrescriptionDetails{Pharmacy: f}); got != f {
		t.Errorf("expected pharmacy, got %+v", got)
	}
	if got := FacilityOf(nil); got != nil {
		t.Errorf("expected nil facility, got %+v", got)
	}
}

func TestOrderType(t *testing.T) {
	if !OrderTypeLab.Valid() || OrderType("vaccine").Valid() {
		t.Error("unexpected Valid result")
	}
	if OrderTypeLab.Label() != "Laboratories" {
		t.Errorf("unexpected label %q", OrderTypeLab.Label())
	}
}
