package notifier

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Routing keys on the notifications exchange.
const (
	KeyConfirmed = "reservation.confirmed"
	KeyChanged   = "reservation.changed"
	KeyCancelled = "reservation.cancelled"
)

// Confirmation is the message published after a reservation commit and
// delivered to the passenger by the notifier.
type Confirmation struct {
	Ref         uuid.UUID `json:"ref"`
	Email       string    `json:"email"`
	Passenger   string    `json:"passenger"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartureAt time.Time `json:"departure_at"`
	SeatLabel   string    `json:"seat_label"`
	Action      string    `json:"action"`
}

// Summary renders the one-line reservation summary quoted in emails.
func (c Confirmation) Summary() string {
	return fmt.Sprintf("[%s] %s %s->%s seat %s departing %s",
		c.Ref, c.Action, c.Origin, c.Destination, c.SeatLabel,
		c.DepartureAt.Format(time.RFC3339))
}
