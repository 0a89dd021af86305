package report

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skindx/skindx/internal/platform/ai"
	"github.com/skindx/skindx/internal/platform/auth"
)

// Handler exposes the workflow commands to the presentation layer. The
// five POST routes are the only mutation surface of the report store.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	patient := api.Group("", auth.RequireRole("patient"))
	patient.POST("/reports", h.CreateReport)
	patient.POST("/reports/:id/assign", h.AssignDoctor)
	patient.GET("/patients/:id/report-view", h.PatientView)

	doctor := api.Group("", auth.RequireRole("doctor"))
	doctor.POST("/reports/:id/approve", h.Approve)
	doctor.POST("/reports/:id/customize", h.Customize)
	doctor.POST("/reports/:id/reject", h.Reject)
	doctor.GET("/doctors/:id/queue", h.DoctorQueue)

	shared := api.Group("", auth.RequireRole("patient", "doctor"))
	shared.GET("/reports", h.ListReports)
	shared.GET("/reports/:id", h.GetReport)
	shared.GET("/reports/:id/translation", h.Translation)
}

// httpError maps the workflow error taxonomy onto HTTP statuses. The
// message always carries enough to tell retryable from terminal failures.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrPreconditionFailed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ai.ErrAnalysisFailed), errors.Is(err, ai.ErrTranslationFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func actorID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

type createReportRequest struct {
	ReportName string               `json:"report_name"`
	ImageURL   string               `json:"image_url"`
	Symptoms   string               `json:"symptoms"`
	Attributes ai.PatientAttributes `json:"attributes"`
}

func (h *Handler) CreateReport(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.CreateReport(c.Request().Context(), actor, actor, req.ReportName, ai.AnalysisInput{
		ImageURL:   req.ImageURL,
		Attributes: req.Attributes,
		Symptoms:   req.Symptoms,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rep)
}

type assignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

func (h *Handler) AssignDoctor(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req assignDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.AssignDoctor(c.Request().Context(), actor, id, req.DoctorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) Approve(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rep, err := h.svc.Approve(c.Request().Context(), actor, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

type customizeRequest struct {
	Report       string `json:"report"`
	Prescription string `json:"prescription"`
}

func (h *Handler) Customize(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req customizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.Customize(c.Request().Context(), actor, id, req.Report, req.Prescription)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Reject(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.Reject(c.Request().Context(), actor, id, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

// ListReports lists reports filtered by owner. Callers may only list
// their own side of the store: a patient their reports, a doctor their
// assigned reports.
func (h *Handler) ListReports(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	switch {
	case c.QueryParam("patient_id") != "":
		id, err := uuid.Parse(c.QueryParam("patient_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		if id != actor {
			return echo.NewHTTPError(http.StatusForbidden, "patients may only list their own reports")
		}
		items, err := h.svc.PatientReports(c.Request().Context(), id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, items)
	case c.QueryParam("doctor_id") != "":
		id, err := uuid.Parse(c.QueryParam("doctor_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
		}
		if id != actor {
			return echo.NewHTTPError(http.StatusForbidden, "doctors may only list their own reports")
		}
		items, err := h.svc.DoctorQueue(c.Request().Context(), id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, items)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id or doctor_id query parameter is required")
	}
}

func (h *Handler) GetReport(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rep, err := h.svc.GetReport(c.Request().Context(), actor, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) PatientView(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if id != actor {
		return echo.NewHTTPError(http.StatusForbidden, "patients may only view their own dashboard")
	}
	view, err := h.svc.PatientView(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) DoctorQueue(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if id != actor {
		return echo.NewHTTPError(http.StatusForbidden, "doctors may only view their own queue")
	}
	items, err := h.svc.DoctorQueue(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Translation(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	lang := c.QueryParam("lang")
	preferCustom := c.QueryParam("source") == "custom"
	translated, err := h.svc.TranslateReport(c.Request().Context(), actor, id, lang, preferCustom)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, translated)
}
