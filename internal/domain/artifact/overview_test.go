package artifact

import (
	"testing"
)

func sampleOrders() []ClinicalOrder {
	return []ClinicalOrder{
		{ID: "o1", Type: OrderTypePrescription, Status: OrderStatusSent, Details: &PrescriptionDetails{}},
		{ID: "o4", Type: OrderTypeLab, Status: OrderStatusOrdered, Details: &LabDetails{Facility: &Facility{Name: "Quest"}}},
		{ID: "o3", Type: OrderTypeReferral, Status: OrderStatusSent, Details: &ReferralDetails{}},
		{ID: "o2", Type: OrderTypeImaging, Status: OrderStatusOrdered, Details: &ImagingDetails{}},
		{ID: "o5", Type: OrderTypeLab, Status: OrderStatusReviewed, Details: &LabDetails{}},
		{ID: "o6", Type: OrderTypeLab, Status: OrderStatusInProgress, Details: &LabDetails{}},
	}
}

func TestGroupOrders(t *testing.T) {
	groups := GroupOrders(sampleOrders())
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}
	want := []OrderType{OrderTypePrescription, OrderTypeLab, OrderTypeImaging, OrderTypeReferral}
	for i, g := range groups {
		if g.Type != want[i] {
			t.Errorf("group %d: type %s, want %s", i, g.Type, want[i])
		}
	}
	labs := groups[1]
	if labs.Label != "Laboratories" || len(labs.Orders) != 3 {
		t.Fatalf("unexpected lab group %+v", labs)
	}
	if labs.Orders[0].Order.ID != "o4" || labs.Orders[0].Facility == nil || labs.Orders[0].StatusLabel != "Ordered" {
		t.Errorf("unexpected first lab %+v", labs.Orders[0])
	}
	if labs.Orders[2].StatusBadge != "progress" || labs.Orders[2].Progress != 60 {
		t.Errorf("unexpected in-progress lab %+v", labs.Orders[2])
	}
}

func TestGroupOrders_Empty(t *testing.T) {
	groups := GroupOrders(nil)
	if groups == nil || len(groups) != 0 {
		t.Errorf("expected empty non-nil groups, got %#v", groups)
	}
}

func TestOrderStats(t *testing.T) {
	stats, counts := OrderStats(sampleOrders())
	if len(stats) != 4 {
		t.Fatalf("expected 4 stats, got %d", len(stats))
	}
	lab := stats[1]
	if lab.Total != 3 || lab.Highlight != 1 || lab.HighlightLabel != "pending" {
		t.Errorf("unexpected lab stat %+v", lab)
	}
	rx := stats[0]
	if rx.Total != 1 || rx.Highlight != 1 || rx.HighlightLabel != "sent" {
		t.Errorf("unexpected prescription stat %+v", rx)
	}
	if stats[2].HighlightLabel != "scheduled" {
		t.Errorf("unexpected imaging label %q", stats[2].HighlightLabel)
	}

	want := StatusCounts{All: 6, Ordered: 2, InProgress: 1, Done: 1}
	if counts != want {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
}

func TestStatusFilter_Match(t *testing.T) {
	if !StatusDone.Match(OrderStatusReviewed) || !StatusDone.Match(OrderStatusCompleted) {
		t.Error("done should match completed and reviewed")
	}
	if StatusOrdered.Match(OrderStatusSent) {
		t.Error("ordered should not match sent")
	}
	if !StatusAll.Match(OrderStatusSent) || !StatusFilter("").Match(OrderStatusSent) {
		t.Error("all should match everything")
	}
}
