package dto

import "time"

type CreateFlightRequest struct {
	Origin          string    `json:"origin" validate:"required"`
	Destination     string    `json:"destination" validate:"required"`
	DepartureAt     time.Time `json:"departure_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
	RoundTrip       bool      `json:"round_trip"`
	SeatRows        int       `json:"seat_rows" validate:"required,gt=0"`
}

type ExpandCapacityRequest struct {
	SeatRows int `json:"seat_rows" validate:"required,gt=0"`
}

type CreateReservationRequest struct {
	FlightID    uint   `json:"flight_id" validate:"required"`
	PassengerID uint   `json:"passenger_id" validate:"required"`
	SeatLabel   string `json:"seat_label" validate:"required"`
}

type UpdateReservationRequest struct {
	FlightID    uint   `json:"flight_id" validate:"required"`
	PassengerID uint   `json:"passenger_id" validate:"required"`
	SeatLabel   string `json:"seat_label" validate:"required"`
}

type PassengerRequest struct {
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
}
