package artifact

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ehr/visitreview/internal/domain/chart"
	"github.com/ehr/visitreview/internal/platform/validation"
)

// Catalog is the read-only lookup behind the artifact pages.
type Catalog interface {
	Orders() []ClinicalOrder
	InsuranceNotes() []InsuranceNote
	PatientArtifactFor(visitID string) (PatientArtifact, bool)
	Visit(id string) (chart.Visit, bool)
	Patient(id string) (chart.Patient, bool)
}

type Handler struct {
	cat      Catalog
	validate *validation.Validator
}

func NewHandler(cat Catalog) *Handler {
	return &Handler{cat: cat, validate: validation.New()}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/orders", h.ListOrders)
	api.GET("/insurance-notes", h.ListInsuranceNotes)
	api.GET("/portal/:visitId", h.GetPortal)
}

type ordersQuery struct {
	Type   string `query:"type" validate:"omitempty,oneof=prescription lab imaging referral"`
	Status string `query:"status" validate:"omitempty,oneof=all ordered in-progress done"`
}

// OrdersOverview is the orders page: summary cards, stage counts and the
// filtered orders grouped by type.
type OrdersOverview struct {
	Stats  []TypeStat   `json:"stats"`
	Counts StatusCounts `json:"counts"`
	Steps  []string     `json:"workflowSteps"`
	Groups []OrderGroup `json:"groups"`
}

func (h *Handler) ListOrders(c echo.Context) error {
	var q ordersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Validate(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}

	all := h.cat.Orders()
	stats, counts := OrderStats(all)

	filter := StatusFilter(q.Status)
	var shown []ClinicalOrder
	for _, o := range all {
		if q.Type != "" && o.Type != OrderType(q.Type) {
			continue
		}
		if !filter.Match(o.Status) {
			continue
		}
		shown = append(shown, o)
	}
	return c.JSON(http.StatusOK, OrdersOverview{
		Stats:  stats,
		Counts: counts,
		Steps:  WorkflowSteps(),
		Groups: GroupOrders(shown),
	})
}

// NoteListing is an insurance note with the visit and patient it belongs to.
type NoteListing struct {
	Note         InsuranceNote `json:"note"`
	VisitID      string        `json:"visitId"`
	VisitDate    string        `json:"visitDate,omitempty"`
	PatientID    string        `json:"patientId,omitempty"`
	PatientName  string        `json:"patientName,omitempty"`
	PrimaryCodes []ICDCode     `json:"primaryCodes"`
}

func (h *Handler) ListInsuranceNotes(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))

	out := []NoteListing{}
	for _, n := range h.cat.InsuranceNotes() {
		l := NoteListing{Note: n, VisitID: n.VisitID, PrimaryCodes: n.PrimaryCodes()}
		if l.PrimaryCodes == nil {
			l.PrimaryCodes = []ICDCode{}
		}
		if v, ok := h.cat.Visit(n.VisitID); ok {
			l.VisitDate = chart.FormatDate(v.Date)
			if p, ok := h.cat.Patient(v.PatientID); ok {
				l.PatientID = p.ID
				l.PatientName = p.FullName()
			}
		}
		if q != "" && !l.matches(q) {
			continue
		}
		out = append(out, l)
	}
	return c.JSON(http.StatusOK, out)
}

// matches searches the patient name and the ICD codes.
func (l NoteListing) matches(q string) bool {
	if strings.Contains(strings.ToLower(l.PatientName), q) {
		return true
	}
	for _, code := range l.Note.Layers.Billing.ICDCodes {
		if strings.Contains(strings.ToLower(code.Code), q) || strings.Contains(strings.ToLower(code.Description), q) {
			return true
		}
	}
	return false
}

type portalQuery struct {
	Format   string `query:"format" validate:"omitempty,oneof=pdf video tiktok audio"`
	Literacy string `query:"literacy" validate:"omitempty,oneof=5 8 12 professional"`
	Language string `query:"language" validate:"omitempty,oneof=en es zh other"`
}

// Portal is the patient-facing preview of a visit summary.
type Portal struct {
	PatientName     string          `json:"patientName"`
	Initials        string          `json:"initials"`
	VisitDate       string          `json:"visitDate"`
	ChiefComplaint  string          `json:"chiefComplaint"`
	Artifact        PatientArtifact `json:"artifact"`
	FormatOptions   []Option        `json:"formatOptions"`
	LiteracyOptions []Option        `json:"literacyOptions"`
	LanguageOptions []Option        `json:"languageOptions"`
}

// GetPortal renders the patient summary of a visit. Query parameters select
// presentation preferences; they never change the content.
func (h *Handler) GetPortal(c echo.Context) error {
	var q portalQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Validate(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}

	visitID := c.Param("visitId")
	v, ok := h.cat.Visit(visitID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	a, ok := h.cat.PatientArtifactFor(visitID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "patient summary not found")
	}
	if q.Format != "" {
		a.Preferences.Format = Format(q.Format)
	}
	if q.Literacy != "" {
		a.Preferences.LiteracyLevel = LiteracyLevel(q.Literacy)
	}
	if q.Language != "" {
		a.Preferences.Language = Language(q.Language)
	}

	portal := Portal{
		VisitDate:       chart.FormatDate(v.Date),
		ChiefComplaint:  v.ChiefComplaint,
		Artifact:        a,
		FormatOptions:   FormatOptions,
		LiteracyOptions: LiteracyOptions,
		LanguageOptions: LanguageOptions,
	}
	if p, ok := h.cat.Patient(v.PatientID); ok {
		portal.PatientName = p.FullName()
		portal.Initials = chart.Initials(portal.PatientName)
	}
	return c.JSON(http.StatusOK, portal)
}
