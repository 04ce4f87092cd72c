package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/windward/airline-reservation/internal/dto"
	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/service"
)

type FlightHandler struct {
	flights service.FlightService
	booking service.BookingService
}

func NewFlightHandler(flights service.FlightService, booking service.BookingService) *FlightHandler {
	return &FlightHandler{flights: flights, booking: booking}
}

func (h *FlightHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/flights")
	g.POST("", h.CreateFlight)
	g.GET("", h.ListFlights)
	g.GET("/:id", h.GetFlight)
	g.GET("/:id/seats", h.ListAvailableSeats)
	g.POST("/:id/capacity", h.ExpandCapacity)
}

func (h *FlightHandler) CreateFlight(c echo.Context) error {
	var req dto.CreateFlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Origin == "" || req.Destination == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "origin and destination are required")
	}
	if req.SeatRows <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "seat_rows must be greater than zero")
	}
	if req.DurationMinutes <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "duration_minutes must be greater than zero")
	}
	if req.DepartureAt.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "departure_at is required")
	}

	flight := &models.Flight{
		Origin:          req.Origin,
		Destination:     req.Destination,
		DepartureAt:     req.DepartureAt,
		DurationMinutes: req.DurationMinutes,
		RoundTrip:       req.RoundTrip,
		SeatRows:        req.SeatRows,
	}

	if err := h.flights.Create(c.Request().Context(), flight); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToFlightResponse(flight))
}

func (h *FlightHandler) GetFlight(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid flight id")
	}

	flight, err := h.flights.Get(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToFlightResponse(flight))
}

// ListFlights filters by ?origin=&destination= and/or ?date=2026-09-14.
func (h *FlightHandler) ListFlights(c echo.Context) error {
	ctx := c.Request().Context()

	if dateParam := c.QueryParam("date"); dateParam != "" {
		day, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		flights, err := h.flights.ListByDate(ctx, day)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(http.StatusOK, toFlightResponses(flights))
	}

	origin := c.QueryParam("origin")
	destination := c.QueryParam("destination")
	if origin != "" || destination != "" {
		flights, err := h.flights.ListByRoute(ctx, origin, destination)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(http.StatusOK, toFlightResponses(flights))
	}

	flights, err := h.flights.List(ctx)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, toFlightResponses(flights))
}

// ListAvailableSeats is the advisory seat list callers use to populate
// seat choices. The authoritative check happens again inside the
// booking transaction.
func (h *FlightHandler) ListAvailableSeats(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid flight id")
	}

	seats, err := h.booking.ListAvailableSeats(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.SeatResponse, len(seats))
	for i, s := range seats {
		resp[i] = dto.ToSeatResponse(&s)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) ExpandCapacity(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid flight id")
	}

	var req dto.ExpandCapacityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SeatRows <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "seat_rows must be greater than zero")
	}

	flight, err := h.booking.ExpandFlightCapacity(c.Request().Context(), id, req.SeatRows)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToFlightResponse(flight))
}

func toFlightResponses(flights []models.Flight) []dto.FlightResponse {
	resp := make([]dto.FlightResponse, len(flights))
	for i, f := range flights {
		resp[i] = dto.ToFlightResponse(&f)
	}
	return resp
}

func parseID(c echo.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// mapServiceError translates the service error taxonomy into HTTP:
// missing records 404, business-rule rejections 400, seat contention
// 409, retryable storage faults 503, everything else 500.
func mapServiceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrFlightNotFound),
		errors.Is(err, service.ErrPassengerNotFound),
		errors.Is(err, service.ErrReservationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSeatUnavailable),
		errors.Is(err, service.ErrSeatTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSeatNotFound),
		errors.Is(err, service.ErrCapacityShrink):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case service.IsRetryable(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "temporary storage contention, retry the operation")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
