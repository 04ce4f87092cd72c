package repository

import (
	"context"

	"github.com/windward/airline-reservation/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeatRepository is the seat ledger: it owns seat existence and
// availability. FindForUpdate and SetAvailability are reserved for the
// enforcer; nothing else may flip a seat.
type SeatRepository interface {
	Materialize(ctx context.Context, tx *gorm.DB, flightID uint, fromRow, toRow int) error
	FindByFlight(ctx context.Context, flightID uint) ([]models.Seat, error)
	FindAvailable(ctx context.Context, flightID uint) ([]models.Seat, error)
	FindForUpdate(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error)
	SetAvailability(ctx context.Context, tx *gorm.DB, flightID uint, label string, available bool) (int64, error)
	CountByFlight(ctx context.Context, flightID uint) (int64, error)
}

type seatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) SeatRepository {
	return &seatRepository{db: db}
}

// Materialize bulk-inserts the seats for rows fromRow..toRow, all
// available. Label order is deterministic (rows ascending, columns A-F),
// so re-running for an already-populated range fails on the unique
// index instead of silently resetting seats.
func (r *seatRepository) Materialize(ctx context.Context, tx *gorm.DB, flightID uint, fromRow, toRow int) error {
	seats := models.SeatsForRows(flightID, fromRow, toRow)
	if len(seats) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&seats).Error
}

func (r *seatRepository) FindByFlight(ctx context.Context, flightID uint) ([]models.Seat, error) {
	var seats []models.Seat
	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order(`"row" ASC, "column" ASC`).
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *seatRepository) FindAvailable(ctx context.Context, flightID uint) ([]models.Seat, error) {
	var seats []models.Seat
	err := r.db.WithContext(ctx).
		Where("flight_id = ? AND available = ?", flightID, true).
		Order(`"row" ASC, "column" ASC`).
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// FindForUpdate locks the seat row within the given transaction. The
// seat row is the synchronization point for competing reservation
// mutations: two claims of the same seat serialize here.
func (r *seatRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
	var seat models.Seat
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("flight_id = ? AND label = ?", flightID, label).
		First(&seat).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// SetAvailability flips a seat and returns the number of rows touched.
// Claiming (available=false) only matches seats still available, so a
// raced claim reports zero rows even if the caller skipped the lock.
func (r *seatRepository) SetAvailability(ctx context.Context, tx *gorm.DB, flightID uint, label string, available bool) (int64, error) {
	q := tx.WithContext(ctx).
		Model(&models.Seat{}).
		Where("flight_id = ? AND label = ?", flightID, label)
	if !available {
		q = q.Where("available = ?", true)
	}
	res := q.Update("available", available)
	return res.RowsAffected, res.Error
}

func (r *seatRepository) CountByFlight(ctx context.Context, flightID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Seat{}).
		Where("flight_id = ?", flightID).
		Count(&count).Error
	return count, err
}
