package profile

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skindx/skindx/internal/platform/auth"
	"github.com/skindx/skindx/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/:id", h.GetPatient, auth.RequireRole("patient", "doctor"))

	api.POST("/doctors", h.CreateDoctor)
	api.GET("/doctors", h.ListDoctors, auth.RequireRole("patient", "doctor"))
	api.GET("/doctors/:id", h.GetDoctor, auth.RequireRole("patient", "doctor"))
	api.PUT("/doctors/:id/verification", h.SetVerification, auth.RequireRole("admin"))
}

func profileError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return profileError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return profileError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// ListDoctors returns only approved doctors. This is the list patients
// pick from when assigning a report.
func (h *Handler) ListDoctors(c echo.Context) error {
	params := pagination.FromContext(c)
	items, total, err := h.svc.ListApprovedDoctors(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return profileError(err)
	}
	if items == nil {
		items = []*Doctor{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params.Limit, params.Offset))
}

type verificationRequest struct {
	Status VerificationStatus `json:"status"`
}

func (h *Handler) SetVerification(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req verificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid verification status")
	}
	if err := h.svc.SetDoctorVerification(c.Request().Context(), id, req.Status); err != nil {
		return profileError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
