package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/notifier"
	"gorm.io/gorm"
)

// --- Mock ReservationService ---

type mockReservationSvc struct {
	createFn func(ctx context.Context, flightID, passengerID uint, seatLabel string) (*models.Reservation, error)
	deleteFn func(ctx context.Context, id uint) (*models.Reservation, error)
}

func (m *mockReservationSvc) Create(ctx context.Context, flightID, passengerID uint, seatLabel string) (*models.Reservation, error) {
	return m.createFn(ctx, flightID, passengerID, seatLabel)
}
func (m *mockReservationSvc) Update(ctx context.Context, id, flightID, passengerID uint, seatLabel string) (*models.Reservation, error) {
	return nil, nil
}
func (m *mockReservationSvc) Delete(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.deleteFn(ctx, id)
}
func (m *mockReservationSvc) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	return nil, nil
}
func (m *mockReservationSvc) ListByFlight(ctx context.Context, flightID uint) ([]models.Reservation, error) {
	return nil, nil
}
func (m *mockReservationSvc) ListByPassenger(ctx context.Context, passengerID uint) ([]models.Reservation, error) {
	return nil, nil
}
func (m *mockReservationSvc) ListBySurname(ctx context.Context, surname string) ([]models.Reservation, error) {
	return nil, nil
}

// --- Mock FlightRepository (notify path only needs FindByID) ---

type mockFlightRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Flight, error)
}

func (m *mockFlightRepo) Create(ctx context.Context, tx *gorm.DB, flight *models.Flight) error {
	return nil
}
func (m *mockFlightRepo) FindByID(ctx context.Context, id uint) (*models.Flight, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockFlightRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Flight, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockFlightRepo) FindByRoute(ctx context.Context, origin, destination string) ([]models.Flight, error) {
	return nil, nil
}
func (m *mockFlightRepo) FindByDate(ctx context.Context, day time.Time) ([]models.Flight, error) {
	return nil, nil
}
func (m *mockFlightRepo) FindAll(ctx context.Context) ([]models.Flight, error) { return nil, nil }
func (m *mockFlightRepo) UpdateSeatRows(ctx context.Context, tx *gorm.DB, id uint, seatRows int) error {
	return nil
}
func (m *mockFlightRepo) GetDB() *gorm.DB { return nil }

// --- Mock PassengerRepository ---

type mockPassengerRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Passenger, error)
}

func (m *mockPassengerRepo) Create(ctx context.Context, passenger *models.Passenger) error {
	return nil
}
func (m *mockPassengerRepo) FindByID(ctx context.Context, id uint) (*models.Passenger, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPassengerRepo) FindAll(ctx context.Context) ([]models.Passenger, error) {
	return nil, nil
}
func (m *mockPassengerRepo) Update(ctx context.Context, passenger *models.Passenger) error {
	return nil
}
func (m *mockPassengerRepo) Delete(ctx context.Context, id uint) error { return nil }
func (m *mockPassengerRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return true, nil
}

// --- Mock Publisher ---

type mockPublisher struct {
	publishFn func(routingKey string, payload any) error
	published []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, routingKey)
	if m.publishFn != nil {
		return m.publishFn(routingKey, payload)
	}
	return nil
}

// --- Fixtures ---

func bookingFixtures() (*mockReservationSvc, *mockFlightRepo, *mockPassengerRepo) {
	reservations := &mockReservationSvc{
		createFn: func(ctx context.Context, flightID, passengerID uint, seatLabel string) (*models.Reservation, error) {
			return &models.Reservation{
				ID: 1, Ref: uuid.New(),
				FlightID: flightID, PassengerID: passengerID, SeatLabel: seatLabel,
			}, nil
		},
	}
	flights := &mockFlightRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Flight, error) {
			return &models.Flight{
				ID: id, Origin: "VIE", Destination: "LHR",
				DepartureAt: time.Now().Add(48 * time.Hour), SeatRows: 10,
			}, nil
		},
	}
	passengers := &mockPassengerRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Passenger, error) {
			return &models.Passenger{ID: id, Name: "Ada", Surname: "Drax", Email: "ada@example.com"}, nil
		},
	}
	return reservations, flights, passengers
}

// --- Tests ---

func TestBookSeat_PublishesConfirmation(t *testing.T) {
	reservations, flights, passengers := bookingFixtures()
	pub := &mockPublisher{}

	svc := NewBookingService(reservations, nil, flights, passengers, nil, pub)
	result, err := svc.BookSeat(context.Background(), 1, 2, "1A")

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Warning)
	assert.Equal(t, "1A", result.Reservation.SeatLabel)
	require.Len(t, pub.published, 1)
	assert.Equal(t, notifier.KeyConfirmed, pub.published[0])
}

func TestBookSeat_PublishFailureIsWarningNotError(t *testing.T) {
	reservations, flights, passengers := bookingFixtures()
	pub := &mockPublisher{
		publishFn: func(routingKey string, payload any) error {
			return errors.New("broker unavailable")
		},
	}

	svc := NewBookingService(reservations, nil, flights, passengers, nil, pub)
	result, err := svc.BookSeat(context.Background(), 1, 2, "1A")

	assert.NoError(t, err, "a committed reservation must not fail on notification")
	require.NotNil(t, result)
	assert.Contains(t, result.Warning, "broker unavailable")
	assert.NotNil(t, result.Reservation)
}

func TestBookSeat_NilPublisherSkipsNotification(t *testing.T) {
	reservations, flights, passengers := bookingFixtures()

	svc := NewBookingService(reservations, nil, flights, passengers, nil, nil)
	result, err := svc.BookSeat(context.Background(), 1, 2, "1A")

	assert.NoError(t, err)
	assert.Empty(t, result.Warning)
}

func TestBookSeat_RejectionPropagates(t *testing.T) {
	reservations, flights, passengers := bookingFixtures()
	reservations.createFn = func(ctx context.Context, flightID, passengerID uint, seatLabel string) (*models.Reservation, error) {
		return nil, ErrSeatUnavailable
	}
	pub := &mockPublisher{}

	svc := NewBookingService(reservations, nil, flights, passengers, nil, pub)
	result, err := svc.BookSeat(context.Background(), 1, 2, "1A")

	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.Nil(t, result)
	assert.Empty(t, pub.published, "no confirmation for a rejected booking")
}

func TestCancelReservation_PublishesCancellation(t *testing.T) {
	reservations, flights, passengers := bookingFixtures()
	reservations.deleteFn = func(ctx context.Context, id uint) (*models.Reservation, error) {
		return &models.Reservation{ID: id, Ref: uuid.New(), FlightID: 1, PassengerID: 2, SeatLabel: "1A"}, nil
	}
	pub := &mockPublisher{}

	svc := NewBookingService(reservations, nil, flights, passengers, nil, pub)
	reservation, err := svc.CancelReservation(context.Background(), 1)

	assert.NoError(t, err)
	assert.NotNil(t, reservation)
	require.Len(t, pub.published, 1)
	assert.Equal(t, notifier.KeyCancelled, pub.published[0])
}
