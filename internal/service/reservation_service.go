package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/repository"
	"gorm.io/gorm"
)

type ReservationService interface {
	Create(ctx context.Context, flightID, passengerID uint, seatLabel string) (*models.Reservation, error)
	Update(ctx context.Context, id, flightID, passengerID uint, seatLabel string) (*models.Reservation, error)
	Delete(ctx context.Context, id uint) (*models.Reservation, error)
	Get(ctx context.Context, id uint) (*models.Reservation, error)
	ListByFlight(ctx context.Context, flightID uint) ([]models.Reservation, error)
	ListByPassenger(ctx context.Context, passengerID uint) ([]models.Reservation, error)
	ListBySurname(ctx context.Context, surname string) ([]models.Reservation, error)
}

type reservationService struct {
	reservations repository.ReservationRepository
	flights      repository.FlightRepository
	passengers   repository.PassengerRepository
	enforcer     *seatEnforcer
}

func NewReservationService(
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	seats repository.SeatRepository,
) ReservationService {
	return &reservationService{
		reservations: reservations,
		flights:      flights,
		passengers:   passengers,
		enforcer:     newSeatEnforcer(seats),
	}
}

// Create claims the seat and inserts the reservation row in one
// transaction. The availability check runs against the locked seat row,
// not the advisory list the caller may have seen.
func (s *reservationService) Create(ctx context.Context, flightID, passengerID uint, seatLabel string) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservations.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := boundLockWait(tx); err != nil {
			return err
		}
		if err := s.checkRefs(ctx, flightID, passengerID); err != nil {
			return err
		}

		if err := s.enforcer.Claim(ctx, tx, flightID, seatLabel); err != nil {
			return err
		}

		reservation := &models.Reservation{
			Ref:         uuid.New(),
			FlightID:    flightID,
			PassengerID: passengerID,
			SeatLabel:   seatLabel,
		}
		if err := s.reservations.Create(ctx, tx, reservation); err != nil {
			return classifyStorageErr(err)
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Re-read with flight and passenger loaded so callers can derive
	// took_place without another round trip.
	if full, err := s.reservations.FindByID(ctx, result.ID); err == nil {
		result = full
	}
	return result, nil
}

// Update rewrites the reservation; if the (flight, seat) pair changed,
// the old seat is released and the new one claimed within the same
// transaction. An unchanged pair leaves seat state untouched.
func (s *reservationService) Update(ctx context.Context, id, flightID, passengerID uint, seatLabel string) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservations.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := boundLockWait(tx); err != nil {
			return err
		}

		reservation, err := s.reservations.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if err := s.checkRefs(ctx, flightID, passengerID); err != nil {
			return err
		}

		if err := s.enforcer.Move(ctx, tx, reservation.FlightID, reservation.SeatLabel, flightID, seatLabel); err != nil {
			return err
		}

		reservation.FlightID = flightID
		reservation.PassengerID = passengerID
		reservation.SeatLabel = seatLabel
		if err := s.reservations.Save(ctx, tx, reservation); err != nil {
			return classifyStorageErr(err)
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	if full, err := s.reservations.FindByID(ctx, result.ID); err == nil {
		result = full
	}
	return result, nil
}

// Delete releases the seat and removes the reservation row together.
func (s *reservationService) Delete(ctx context.Context, id uint) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservations.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := boundLockWait(tx); err != nil {
			return err
		}

		reservation, err := s.reservations.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := s.enforcer.Release(ctx, tx, reservation.FlightID, reservation.SeatLabel); err != nil {
			return err
		}
		if err := s.reservations.Delete(ctx, tx, reservation.ID); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) ListByFlight(ctx context.Context, flightID uint) ([]models.Reservation, error) {
	return s.reservations.FindByFlight(ctx, flightID)
}

func (s *reservationService) ListByPassenger(ctx context.Context, passengerID uint) ([]models.Reservation, error) {
	return s.reservations.FindByPassenger(ctx, passengerID)
}

func (s *reservationService) ListBySurname(ctx context.Context, surname string) ([]models.Reservation, error) {
	return s.reservations.FindBySurname(ctx, surname)
}

func (s *reservationService) checkRefs(ctx context.Context, flightID, passengerID uint) error {
	if _, err := s.flights.FindByID(ctx, flightID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlightNotFound
		}
		return err
	}
	exists, err := s.passengers.Exists(ctx, passengerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPassengerNotFound
	}
	return nil
}
