package service

import (
	"context"
	"log"

	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/notifier"
	"github.com/windward/airline-reservation/internal/repository"
)

// Publisher is the outbound side of the notifications exchange.
// *rabbitmq.Publisher satisfies it; a nil Publisher disables
// notifications.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// BookingResult is a committed reservation plus an optional warning.
// Warning is set when confirmation delivery failed after the commit;
// the reservation itself stands regardless.
type BookingResult struct {
	Reservation *models.Reservation
	Warning     string
}

// BookingService is the orchestration boundary for external callers:
// it validates identifiers, delegates mutations to the reservation
// manager, and reports notification failures without ever rolling back
// a committed reservation.
type BookingService interface {
	BookSeat(ctx context.Context, flightID, passengerID uint, seatLabel string) (*BookingResult, error)
	ChangeSeat(ctx context.Context, reservationID, flightID, passengerID uint, seatLabel string) (*BookingResult, error)
	CancelReservation(ctx context.Context, reservationID uint) (*models.Reservation, error)
	ListAvailableSeats(ctx context.Context, flightID uint) ([]models.Seat, error)
	ExpandFlightCapacity(ctx context.Context, flightID uint, newSeatRows int) (*models.Flight, error)
}

type bookingService struct {
	reservations ReservationService
	flightSvc    FlightService
	flights      repository.FlightRepository
	passengers   repository.PassengerRepository
	seats        repository.SeatRepository
	publisher    Publisher
}

func NewBookingService(
	reservations ReservationService,
	flightSvc FlightService,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	seats repository.SeatRepository,
	publisher Publisher,
) BookingService {
	return &bookingService{
		reservations: reservations,
		flightSvc:    flightSvc,
		flights:      flights,
		passengers:   passengers,
		seats:        seats,
		publisher:    publisher,
	}
}

func (s *bookingService) BookSeat(ctx context.Context, flightID, passengerID uint, seatLabel string) (*BookingResult, error) {
	reservation, err := s.reservations.Create(ctx, flightID, passengerID, seatLabel)
	if err != nil {
		return nil, err
	}

	warning := s.notify(ctx, reservation, notifier.KeyConfirmed)
	return &BookingResult{Reservation: reservation, Warning: warning}, nil
}

func (s *bookingService) ChangeSeat(ctx context.Context, reservationID, flightID, passengerID uint, seatLabel string) (*BookingResult, error) {
	reservation, err := s.reservations.Update(ctx, reservationID, flightID, passengerID, seatLabel)
	if err != nil {
		return nil, err
	}

	warning := s.notify(ctx, reservation, notifier.KeyChanged)
	return &BookingResult{Reservation: reservation, Warning: warning}, nil
}

func (s *bookingService) CancelReservation(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	reservation, err := s.reservations.Delete(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	// Cancellation notice is best-effort; no warning surfaced.
	if warning := s.notify(ctx, reservation, notifier.KeyCancelled); warning != "" {
		log.Printf("[Booking] %s", warning)
	}
	return reservation, nil
}

// ListAvailableSeats is advisory: the list can be stale by the time a
// booking is submitted. The authoritative availability check happens
// inside the booking transaction.
func (s *bookingService) ListAvailableSeats(ctx context.Context, flightID uint) ([]models.Seat, error) {
	if _, err := s.flightSvc.Get(ctx, flightID); err != nil {
		return nil, err
	}
	return s.seats.FindAvailable(ctx, flightID)
}

func (s *bookingService) ExpandFlightCapacity(ctx context.Context, flightID uint, newSeatRows int) (*models.Flight, error) {
	return s.flightSvc.ExpandCapacity(ctx, flightID, newSeatRows)
}

// notify publishes the confirmation for a committed reservation.
// Failure is reported as a warning string, never an error: the
// reservation is already committed and must not appear to have failed.
func (s *bookingService) notify(ctx context.Context, reservation *models.Reservation, action string) string {
	if s.publisher == nil {
		return ""
	}

	flight, err := s.flights.FindByID(ctx, reservation.FlightID)
	if err != nil {
		return "confirmation not sent: " + err.Error()
	}
	passenger, err := s.passengers.FindByID(ctx, reservation.PassengerID)
	if err != nil {
		return "confirmation not sent: " + err.Error()
	}

	msg := notifier.Confirmation{
		Ref:         reservation.Ref,
		Email:       passenger.Email,
		Passenger:   passenger.Name + " " + passenger.Surname,
		Origin:      flight.Origin,
		Destination: flight.Destination,
		DepartureAt: flight.DepartureAt,
		SeatLabel:   reservation.SeatLabel,
		Action:      action,
	}
	if err := s.publisher.Publish(action, msg); err != nil {
		return "confirmation not sent: " + err.Error()
	}
	return ""
}
