package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/windward/airline-reservation/internal/dto"
	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/service"
)

type PassengerHandler struct {
	svc service.PassengerService
}

func NewPassengerHandler(svc service.PassengerService) *PassengerHandler {
	return &PassengerHandler{svc: svc}
}

func (h *PassengerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/passengers")
	g.POST("", h.CreatePassenger)
	g.GET("", h.ListPassengers)
	g.GET("/:id", h.GetPassenger)
	g.PUT("/:id", h.UpdatePassenger)
	g.DELETE("/:id", h.DeletePassenger)
}

func (h *PassengerHandler) CreatePassenger(c echo.Context) error {
	req, err := bindPassenger(c)
	if err != nil {
		return err
	}

	passenger := &models.Passenger{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := h.svc.Create(c.Request().Context(), passenger); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToPassengerResponse(passenger))
}

func (h *PassengerHandler) GetPassenger(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid passenger id")
	}

	passenger, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPassengerResponse(passenger))
}

func (h *PassengerHandler) ListPassengers(c echo.Context) error {
	passengers, err := h.svc.List(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.PassengerResponse, len(passengers))
	for i, p := range passengers {
		resp[i] = dto.ToPassengerResponse(&p)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PassengerHandler) UpdatePassenger(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid passenger id")
	}

	req, err := bindPassenger(c)
	if err != nil {
		return err
	}

	passenger := &models.Passenger{
		ID:      id,
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := h.svc.Update(c.Request().Context(), passenger); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPassengerResponse(passenger))
}

func (h *PassengerHandler) DeletePassenger(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid passenger id")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindPassenger(c echo.Context) (*dto.PassengerRequest, error) {
	var req dto.PassengerRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Surname == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "name and surname are required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	return &req, nil
}
