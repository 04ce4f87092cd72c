package service

import (
	"context"
	"errors"
	"time"

	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/repository"
	"gorm.io/gorm"
)

type FlightService interface {
	Create(ctx context.Context, flight *models.Flight) error
	Get(ctx context.Context, id uint) (*models.Flight, error)
	List(ctx context.Context) ([]models.Flight, error)
	ListByRoute(ctx context.Context, origin, destination string) ([]models.Flight, error)
	ListByDate(ctx context.Context, day time.Time) ([]models.Flight, error)
	ExpandCapacity(ctx context.Context, id uint, newSeatRows int) (*models.Flight, error)
}

type flightService struct {
	flights repository.FlightRepository
	seats   repository.SeatRepository
}

func NewFlightService(flights repository.FlightRepository, seats repository.SeatRepository) FlightService {
	return &flightService{flights: flights, seats: seats}
}

// Create inserts the flight and materializes seats for rows
// 1..SeatRows in the same transaction, so a flight is never observable
// without its full seat set.
func (s *flightService) Create(ctx context.Context, flight *models.Flight) error {
	return s.flights.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.flights.Create(ctx, tx, flight); err != nil {
			return err
		}
		return s.seats.Materialize(ctx, tx, flight.ID, 1, flight.SeatRows)
	})
}

func (s *flightService) Get(ctx context.Context, id uint) (*models.Flight, error) {
	flight, err := s.flights.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return flight, nil
}

func (s *flightService) List(ctx context.Context) ([]models.Flight, error) {
	return s.flights.FindAll(ctx)
}

func (s *flightService) ListByRoute(ctx context.Context, origin, destination string) ([]models.Flight, error) {
	return s.flights.FindByRoute(ctx, origin, destination)
}

func (s *flightService) ListByDate(ctx context.Context, day time.Time) ([]models.Flight, error) {
	return s.flights.FindByDate(ctx, day)
}

// ExpandCapacity grows the flight's row count and materializes seats
// for the newly added rows only. Existing rows are never re-touched:
// re-creating them would reset in-use seats back to available.
// Shrinking is rejected; expanding to the current size is a no-op.
func (s *flightService) ExpandCapacity(ctx context.Context, id uint, newSeatRows int) (*models.Flight, error) {
	var result *models.Flight

	err := s.flights.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := boundLockWait(tx); err != nil {
			return err
		}

		// Lock the flight row: serializes concurrent expansions of the
		// same flight. Reservation traffic never takes this lock.
		flight, err := s.flights.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFlightNotFound
			}
			return err
		}

		if newSeatRows < flight.SeatRows {
			return ErrCapacityShrink
		}
		if newSeatRows == flight.SeatRows {
			result = flight
			return nil
		}

		if err := s.flights.UpdateSeatRows(ctx, tx, id, newSeatRows); err != nil {
			return err
		}
		if err := s.seats.Materialize(ctx, tx, id, flight.SeatRows+1, newSeatRows); err != nil {
			return err
		}

		flight.SeatRows = newSeatRows
		result = flight
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
