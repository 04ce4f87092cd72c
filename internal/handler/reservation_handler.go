package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/windward/airline-reservation/internal/dto"
	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/service"
)

type ReservationHandler struct {
	booking      service.BookingService
	reservations service.ReservationService
}

func NewReservationHandler(booking service.BookingService, reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{booking: booking, reservations: reservations}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/reservations")
	g.POST("", h.BookSeat)
	g.GET("", h.ListBySurname)
	g.GET("/:id", h.GetReservation)
	g.PUT("/:id", h.ChangeSeat)
	g.DELETE("/:id", h.CancelReservation)

	e.GET("/api/v1/flights/:id/reservations", h.ListByFlight)
	e.GET("/api/v1/passengers/:id/reservations", h.ListByPassenger)
}

func (h *ReservationHandler) BookSeat(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.FlightID == 0 || req.PassengerID == 0 || req.SeatLabel == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "flight_id, passenger_id and seat_label are required")
	}

	result, err := h.booking.BookSeat(c.Request().Context(), req.FlightID, req.PassengerID, req.SeatLabel)
	if err != nil {
		return mapServiceError(err)
	}

	resp := dto.ToReservationResponse(result.Reservation, time.Now())
	resp.Warning = result.Warning
	return c.JSON(http.StatusCreated, resp)
}

func (h *ReservationHandler) ChangeSeat(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	var req dto.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.FlightID == 0 || req.PassengerID == 0 || req.SeatLabel == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "flight_id, passenger_id and seat_label are required")
	}

	result, err := h.booking.ChangeSeat(c.Request().Context(), id, req.FlightID, req.PassengerID, req.SeatLabel)
	if err != nil {
		return mapServiceError(err)
	}

	resp := dto.ToReservationResponse(result.Reservation, time.Now())
	resp.Warning = result.Warning
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	reservation, err := h.booking.CancelReservation(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation, time.Now()))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	reservation, err := h.reservations.Get(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation, time.Now()))
}

func (h *ReservationHandler) ListByFlight(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid flight id")
	}

	reservations, err := h.reservations.ListByFlight(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

func (h *ReservationHandler) ListByPassenger(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid passenger id")
	}

	reservations, err := h.reservations.ListByPassenger(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

func (h *ReservationHandler) ListBySurname(c echo.Context) error {
	surname := c.QueryParam("surname")
	if surname == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "surname query parameter is required")
	}

	reservations, err := h.reservations.ListBySurname(c.Request().Context(), surname)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

func toReservationResponses(reservations []models.Reservation) []dto.ReservationResponse {
	now := time.Now()
	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r, now)
	}
	return resp
}
