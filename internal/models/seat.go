package models

import (
	"fmt"
	"time"
)

// SeatColumns is the fixed cabin layout: six seats per row. Label
// generation iterates columns in this order, so the seat set for a row
// is deterministic and reproducible.
var SeatColumns = []string{"A", "B", "C", "D", "E", "F"}

// SeatsPerRow is len(SeatColumns).
const SeatsPerRow = 6

type Seat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FlightID  uint      `gorm:"not null;uniqueIndex:idx_flight_seat_label" json:"flight_id"`
	Label     string    `gorm:"not null;uniqueIndex:idx_flight_seat_label" json:"label"`
	Row       int       `gorm:"not null" json:"row"`
	Column    string    `gorm:"not null" json:"column"`
	Available bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Flight *Flight `gorm:"foreignKey:FlightID" json:"flight,omitempty"`
}

// SeatLabel builds the canonical label for a row/column pair, e.g. "12C".
func SeatLabel(row int, column string) string {
	return fmt.Sprintf("%d%s", row, column)
}

// SeatsForRows generates the seat set for rows fromRow..toRow of a
// flight, all available, in deterministic order: rows ascending,
// columns A through F.
func SeatsForRows(flightID uint, fromRow, toRow int) []Seat {
	if fromRow < 1 || toRow < fromRow {
		return nil
	}
	seats := make([]Seat, 0, (toRow-fromRow+1)*SeatsPerRow)
	for row := fromRow; row <= toRow; row++ {
		for _, col := range SeatColumns {
			seats = append(seats, Seat{
				FlightID:  flightID,
				Label:     SeatLabel(row, col),
				Row:       row,
				Column:    col,
				Available: true,
			})
		}
	}
	return seats
}
