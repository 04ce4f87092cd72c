package repository

import (
	"context"
	"time"

	"github.com/windward/airline-reservation/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlightRepository interface {
	Create(ctx context.Context, tx *gorm.DB, flight *models.Flight) error
	FindByID(ctx context.Context, id uint) (*models.Flight, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Flight, error)
	FindByRoute(ctx context.Context, origin, destination string) ([]models.Flight, error)
	FindByDate(ctx context.Context, day time.Time) ([]models.Flight, error)
	FindAll(ctx context.Context) ([]models.Flight, error)
	UpdateSeatRows(ctx context.Context, tx *gorm.DB, id uint, seatRows int) error
	GetDB() *gorm.DB
}

type flightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) FlightRepository {
	return &flightRepository{db: db}
}

func (r *flightRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *flightRepository) Create(ctx context.Context, tx *gorm.DB, flight *models.Flight) error {
	return tx.WithContext(ctx).Create(flight).Error
}

func (r *flightRepository) FindByID(ctx context.Context, id uint) (*models.Flight, error) {
	var flight models.Flight
	if err := r.db.WithContext(ctx).First(&flight, id).Error; err != nil {
		return nil, err
	}
	return &flight, nil
}

// FindByIDForUpdate acquires a row-level lock on the flight within the
// given transaction. Used to serialize capacity expansions.
func (r *flightRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Flight, error) {
	var flight models.Flight
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&flight, id).Error; err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *flightRepository) FindByRoute(ctx context.Context, origin, destination string) ([]models.Flight, error) {
	var flights []models.Flight
	q := r.db.WithContext(ctx)
	if origin != "" {
		q = q.Where("origin = ?", origin)
	}
	if destination != "" {
		q = q.Where("destination = ?", destination)
	}
	if err := q.Order("departure_at ASC").Find(&flights).Error; err != nil {
		return nil, err
	}
	return flights, nil
}

// FindByDate returns flights departing within the [00:00, 24:00) window
// of the given day, in the day's location.
func (r *flightRepository) FindByDate(ctx context.Context, day time.Time) ([]models.Flight, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var flights []models.Flight
	err := r.db.WithContext(ctx).
		Where("departure_at >= ? AND departure_at < ?", start, end).
		Order("departure_at ASC").
		Find(&flights).Error
	if err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *flightRepository) FindAll(ctx context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	if err := r.db.WithContext(ctx).Order("departure_at ASC").Find(&flights).Error; err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *flightRepository) UpdateSeatRows(ctx context.Context, tx *gorm.DB, id uint, seatRows int) error {
	return tx.WithContext(ctx).
		Model(&models.Flight{}).
		Where("id = ?", id).
		Update("seat_rows", seatRows).Error
}
