package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/windward/airline-reservation/internal/models"
)

type FlightResponse struct {
	ID              uint      `json:"id"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureAt     time.Time `json:"departure_at"`
	DurationMinutes int       `json:"duration_minutes"`
	RoundTrip       bool      `json:"round_trip"`
	SeatRows        int       `json:"seat_rows"`
	CreatedAt       time.Time `json:"created_at"`
}

type SeatResponse struct {
	Label     string `json:"label"`
	Row       int    `json:"row"`
	Column    string `json:"column"`
	Available bool   `json:"available"`
}

type ReservationResponse struct {
	ID          uint      `json:"id"`
	Ref         uuid.UUID `json:"ref"`
	FlightID    uint      `json:"flight_id"`
	PassengerID uint      `json:"passenger_id"`
	SeatLabel   string    `json:"seat_label"`
	TookPlace   bool      `json:"took_place"`
	CreatedAt   time.Time `json:"created_at"`
	Warning     string    `json:"warning,omitempty"`
}

type PassengerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToFlightResponse(f *models.Flight) FlightResponse {
	return FlightResponse{
		ID:              f.ID,
		Origin:          f.Origin,
		Destination:     f.Destination,
		DepartureAt:     f.DepartureAt,
		DurationMinutes: f.DurationMinutes,
		RoundTrip:       f.RoundTrip,
		SeatRows:        f.SeatRows,
		CreatedAt:       f.CreatedAt,
	}
}

func ToSeatResponse(s *models.Seat) SeatResponse {
	return SeatResponse{
		Label:     s.Label,
		Row:       s.Row,
		Column:    s.Column,
		Available: s.Available,
	}
}

// ToReservationResponse derives took_place at response time: true iff
// the flight's departure is not strictly in the future. A reservation
// without its flight loaded reports false.
func ToReservationResponse(r *models.Reservation, now time.Time) ReservationResponse {
	resp := ReservationResponse{
		ID:          r.ID,
		Ref:         r.Ref,
		FlightID:    r.FlightID,
		PassengerID: r.PassengerID,
		SeatLabel:   r.SeatLabel,
		CreatedAt:   r.CreatedAt,
	}
	if r.Flight != nil {
		resp.TookPlace = r.Flight.TookPlace(now)
	}
	return resp
}

func ToPassengerResponse(p *models.Passenger) PassengerResponse {
	return PassengerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Surname:   p.Surname,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}
