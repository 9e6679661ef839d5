package artifact

// OrderView is an order with its status presentation resolved.
type OrderView struct {
	Order       ClinicalOrder `json:"order"`
	StatusLabel string        `json:"statusLabel"`
	StatusBadge string        `json:"statusBadge"`
	Progress    float64       `json:"progress"`
	Facility    *Facility     `json:"facility,omitempty"`
}

func ViewOrder(o ClinicalOrder) OrderView {
	return OrderView{
		Order:       o,
		StatusLabel: o.Status.Label(),
		StatusBadge: o.Status.Badge(),
		Progress:    o.Status.Progress(),
		Facility:    FacilityOf(o.Details),
	}
}

// OrderGroup is the orders of one type, in input order.
type OrderGroup struct {
	Type   OrderType   `json:"type"`
	Label  string      `json:"label"`
	Orders []OrderView `json:"orders"`
}

// GroupOrders buckets orders by type in OrderTypes order. Empty groups are
// omitted.
func GroupOrders(orders []ClinicalOrder) []OrderGroup {
	groups := []OrderGroup{}
	for _, t := range OrderTypes {
		of := FilterByType(orders, t)
		if len(of) == 0 {
			continue
		}
		g := OrderGroup{Type: t, Label: t.Label(), Orders: make([]OrderView, len(of))}
		for i, o := range of {
			g.Orders[i] = ViewOrder(o)
		}
		groups = append(groups, g)
	}
	return groups
}

// TypeStat is the summary card of one order type: the total and the count
// of orders in the status worth calling out for that type.
type TypeStat struct {
	Type           OrderType `json:"type"`
	Label          string    `json:"label"`
	Total          int       `json:"total"`
	Highlight      int       `json:"highlight"`
	HighlightLabel string    `json:"highlightLabel"`
}

var highlights = map[OrderType]struct {
	status OrderStatus
	label  string
}{
	OrderTypePrescription: {OrderStatusSent, "sent"},
	OrderTypeLab:          {OrderStatusOrdered, "pending"},
	OrderTypeImaging:      {OrderStatusOrdered, "scheduled"},
	OrderTypeReferral:     {OrderStatusSent, "sent"},
}

// StatusCounts buckets orders by workflow stage. Done covers completed and
// reviewed orders.
type StatusCounts struct {
	All        int `json:"all"`
	Ordered    int `json:"ordered"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// OrderStats returns one TypeStat per order type and the stage counts.
func OrderStats(orders []ClinicalOrder) ([]TypeStat, StatusCounts) {
	stats := make([]TypeStat, 0, len(OrderTypes))
	for _, t := range OrderTypes {
		h := highlights[t]
		s := TypeStat{Type: t, Label: t.Label(), HighlightLabel: h.label}
		for _, o := range orders {
			if o.Type != t {
				continue
			}
			s.Total++
			if o.Status == h.status {
				s.Highlight++
			}
		}
		stats = append(stats, s)
	}

	counts := StatusCounts{All: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case OrderStatusOrdered:
			counts.Ordered++
		case OrderStatusInProgress:
			counts.InProgress++
		case OrderStatusCompleted, OrderStatusReviewed:
			counts.Done++
		}
	}
	return stats, counts
}

// StatusFilter selects a workflow stage on the orders page.
type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusOrdered    StatusFilter = "ordered"
	StatusInProgress StatusFilter = "in-progress"
	StatusDone       StatusFilter = "done"
)

// Match reports whether s falls in the stage.
func (f StatusFilter) Match(s OrderStatus) bool {
	switch f {
	case StatusOrdered:
		return s == OrderStatusOrdered
	case StatusInProgress:
		return s == OrderStatusInProgress
	case StatusDone:
		return s == OrderStatusCompleted || s == OrderStatusReviewed
	}
	return true
}
