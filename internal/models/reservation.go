package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation claims exactly one seat on one flight. A seat can carry
// at most one reservation at a time, enforced both in the service
// transaction and by a unique index on (flight_id, seat_label).
// Cancellation deletes the row; there is no cancelled state.
type Reservation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Ref         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"ref"`
	FlightID    uint      `gorm:"not null;uniqueIndex:idx_reservation_seat" json:"flight_id"`
	PassengerID uint      `gorm:"not null;index" json:"passenger_id"`
	SeatLabel   string    `gorm:"not null;uniqueIndex:idx_reservation_seat" json:"seat_label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Flight    *Flight    `gorm:"foreignKey:FlightID" json:"flight,omitempty"`
	Passenger *Passenger `gorm:"foreignKey:PassengerID" json:"passenger,omitempty"`
}
