package review

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehr/visitreview/internal/platform/validation"
)

type Handler struct {
	svc      *Service
	validate *validation.Validator
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validation.New()}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/review-sessions")
	g.POST("", h.OpenSession)
	g.GET("/:id", h.GetSession)
	g.DELETE("/:id", h.CloseSession)
	g.POST("/:id/sections/:section/confirm", h.ConfirmSection)
	g.POST("/:id/confirm-all", h.ConfirmAll)
	g.POST("/:id/sections/:section/edit", h.EditSection)
	g.PATCH("/:id/draft", h.UpdateDraft)
	g.POST("/:id/draft/save", h.SaveDraft)
	g.POST("/:id/draft/cancel", h.CancelDraft)
}

type openRequest struct {
	VisitID   string `json:"visit_id" validate:"required,identifier"`
	PatientID string `json:"patient_id" validate:"omitempty,identifier"`
}

type draftRequest struct {
	Edits []FieldEdit `json:"edits" validate:"required,min=1,dive"`
}

// SessionResponse is returned when a review session is opened.
type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	View      View      `json:"view"`
}

func (h *Handler) OpenSession(c echo.Context) error {
	var req openRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}
	id, view := h.svc.Open(Route{VisitID: req.VisitID, PatientID: req.PatientID})
	if view.State == StateNotFound {
		return c.JSON(http.StatusNotFound, view)
	}
	return c.JSON(http.StatusCreated, SessionResponse{SessionID: id, View: view})
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	view, err := h.svc.View(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) CloseSession(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	h.svc.Close(id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ConfirmSection(c echo.Context) error {
	return h.do(c, func(ctrl *Controller) error {
		s, err := ParseSection(c.Param("section"))
		if err != nil {
			return err
		}
		return ctrl.ConfirmSection(s)
	})
}

func (h *Handler) ConfirmAll(c echo.Context) error {
	return h.do(c, func(ctrl *Controller) error {
		return ctrl.ConfirmAllSections()
	})
}

func (h *Handler) EditSection(c echo.Context) error {
	return h.do(c, func(ctrl *Controller) error {
		s, err := ParseSection(c.Param("section"))
		if err != nil {
			return err
		}
		return ctrl.EditSection(s)
	})
}

func (h *Handler) UpdateDraft(c echo.Context) error {
	var req draftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}
	return h.do(c, func(ctrl *Controller) error {
		s, open := ctrl.Editing()
		if !open {
			return ErrNoOpenTransaction
		}
		edits, err := ParseEdits(s, req.Edits)
		if err != nil {
			return err
		}
		return ctrl.ApplyEdits(edits...)
	})
}

func (h *Handler) SaveDraft(c echo.Context) error {
	return h.do(c, func(ctrl *Controller) error {
		_, err := ctrl.SaveSection()
		return err
	})
}

func (h *Handler) CancelDraft(c echo.Context) error {
	return h.do(c, func(ctrl *Controller) error {
		return ctrl.CancelEdit()
	})
}

func (h *Handler) do(c echo.Context, fn func(*Controller) error) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	view, err := h.svc.Do(id, fn)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func sessionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	return id, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "review session not found")
	case errors.Is(err, ErrVisitNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	case errors.Is(err, ErrNoOpenTransaction), errors.Is(err, ErrSectionMismatch):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrUnknownSection), errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrIndexOutOfRange), errors.Is(err, ErrFieldNotEditable),
		errors.Is(err, ErrInvalidNumber), errors.Is(err, ErrInvalidValue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
