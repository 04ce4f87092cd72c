package models

import "time"

type Flight struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Origin          string    `gorm:"not null" json:"origin"`
	Destination     string    `gorm:"not null" json:"destination"`
	DepartureAt     time.Time `gorm:"not null" json:"departure_at"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	RoundTrip       bool      `gorm:"not null;default:false" json:"round_trip"`
	SeatRows        int       `gorm:"not null" json:"seat_rows"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TookPlace reports whether the flight's departure is not strictly in
// the future at the given instant.
func (f *Flight) TookPlace(now time.Time) bool {
	return !f.DepartureAt.After(now)
}
