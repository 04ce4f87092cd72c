package repository

import (
	"context"

	"github.com/windward/airline-reservation/internal/models"
	"gorm.io/gorm"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *models.Passenger) error
	FindByID(ctx context.Context, id uint) (*models.Passenger, error)
	FindAll(ctx context.Context) ([]models.Passenger, error)
	Update(ctx context.Context, passenger *models.Passenger) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type passengerRepository struct {
	db *gorm.DB
}

func NewPassengerRepository(db *gorm.DB) PassengerRepository {
	return &passengerRepository{db: db}
}

func (r *passengerRepository) Create(ctx context.Context, passenger *models.Passenger) error {
	return r.db.WithContext(ctx).Create(passenger).Error
}

func (r *passengerRepository) FindByID(ctx context.Context, id uint) (*models.Passenger, error) {
	var passenger models.Passenger
	if err := r.db.WithContext(ctx).First(&passenger, id).Error; err != nil {
		return nil, err
	}
	return &passenger, nil
}

func (r *passengerRepository) FindAll(ctx context.Context) ([]models.Passenger, error) {
	var passengers []models.Passenger
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&passengers).Error; err != nil {
		return nil, err
	}
	return passengers, nil
}

func (r *passengerRepository) Update(ctx context.Context, passenger *models.Passenger) error {
	return r.db.WithContext(ctx).Save(passenger).Error
}

func (r *passengerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Passenger{}, id).Error
}

func (r *passengerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Passenger{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
