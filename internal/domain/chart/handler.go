package chart

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ehr/visitreview/pkg/pagination"
)

// Directory is the read-only patient and visit lookup behind the chart
// endpoints.
type Directory interface {
	Patients() []Patient
	Visits() []Visit
	Patient(id string) (Patient, bool)
	Visit(id string) (Visit, bool)
}

type Handler struct {
	dir Directory
	now func() time.Time
}

func NewHandler(dir Directory) *Handler {
	return &Handler{dir: dir, now: time.Now}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.GET("/visits", h.ListVisits)
	api.GET("/visits/:id", h.GetVisit)
	api.GET("/visits/:id/transcript", h.GetTranscript)
}

// DashboardVisit is one row of the visits dashboard.
type DashboardVisit struct {
	*VisitSummary
	PatientName string `json:"patientName"`
	Relative    string `json:"relative"`
}

// Dashboard is the visits list with its header.
type Dashboard struct {
	Greeting string              `json:"greeting"`
	Visits   *pagination.Response `json:"visits"`
}

// PatientRow is one entry of the patients list.
type PatientRow struct {
	*PatientSummary
	VisitCount int           `json:"visitCount"`
	LastVisit  *VisitSummary `json:"lastVisit,omitempty"`
}

// PatientDetail is a patient with its visit history.
type PatientDetail struct {
	*PatientSummary
	Visits []*VisitSummary `json:"visits"`
}

// TranscriptView is a visit transcript split into conversation turns.
type TranscriptView struct {
	VisitID string `json:"visitId"`
	Raw     string `json:"raw"`
	Turns   []Turn `json:"turns"`
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	now := h.now()
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))

	visits := h.dir.Visits()
	var out []PatientRow
	for _, p := range h.dir.Patients() {
		row := PatientRow{PatientSummary: SummarizePatient(p, now)}
		if q != "" && !strings.Contains(strings.ToLower(row.FullName), q) && !strings.Contains(p.MRN, q) {
			continue
		}
		var last *Visit
		for i := range visits {
			v := &visits[i]
			if v.PatientID != p.ID {
				continue
			}
			row.VisitCount++
			if last == nil || v.Date.After(last.Date) {
				last = v
			}
		}
		if last != nil {
			row.LastVisit = SummarizeVisit(*last)
		}
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, pagination.Page(out, pg, c.Path()))
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, ok := h.dir.Patient(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	detail := PatientDetail{PatientSummary: SummarizePatient(p, h.now()), Visits: []*VisitSummary{}}
	for _, v := range h.dir.Visits() {
		if v.PatientID == p.ID {
			detail.Visits = append(detail.Visits, SummarizeVisit(v))
		}
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) ListVisits(c echo.Context) error {
	pg := pagination.FromContext(c)
	now := h.now()
	status := VisitStatus(c.QueryParam("status"))

	var rows []DashboardVisit
	for _, v := range h.dir.Visits() {
		if status != "" && v.Status != status {
			continue
		}
		row := DashboardVisit{VisitSummary: SummarizeVisit(v), Relative: FormatRelative(v.Date, now)}
		if p, ok := h.dir.Patient(v.PatientID); ok {
			row.PatientName = p.FullName()
		}
		rows = append(rows, row)
	}
	return c.JSON(http.StatusOK, Dashboard{
		Greeting: Greeting(now),
		Visits:   pagination.Page(rows, pg, c.Path()),
	})
}

func (h *Handler) GetVisit(c echo.Context) error {
	v, ok := h.dir.Visit(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	return c.JSON(http.StatusOK, SummarizeVisit(v))
}

func (h *Handler) GetTranscript(c echo.Context) error {
	v, ok := h.dir.Visit(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	var patientName string
	if p, ok := h.dir.Patient(v.PatientID); ok {
		patientName = p.FullName()
	}
	turns := Conversation(v.Transcript, v.Provider, patientName)
	if turns == nil {
		turns = []Turn{}
	}
	return c.JSON(http.StatusOK, TranscriptView{VisitID: v.ID, Raw: v.Transcript, Turns: turns})
}
