package service

import (
	"context"
	"errors"

	"github.com/windward/airline-reservation/internal/models"
	"github.com/windward/airline-reservation/internal/repository"
	"gorm.io/gorm"
)

// PassengerService is plain record storage. Passengers carry no
// invariants; the booking path only consults Exists.
type PassengerService interface {
	Create(ctx context.Context, passenger *models.Passenger) error
	Get(ctx context.Context, id uint) (*models.Passenger, error)
	List(ctx context.Context) ([]models.Passenger, error)
	Update(ctx context.Context, passenger *models.Passenger) error
	Delete(ctx context.Context, id uint) error
}

type passengerService struct {
	repo repository.PassengerRepository
}

func NewPassengerService(repo repository.PassengerRepository) PassengerService {
	return &passengerService{repo: repo}
}

func (s *passengerService) Create(ctx context.Context, passenger *models.Passenger) error {
	return s.repo.Create(ctx, passenger)
}

func (s *passengerService) Get(ctx context.Context, id uint) (*models.Passenger, error) {
	passenger, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassengerNotFound
		}
		return nil, err
	}
	return passenger, nil
}

func (s *passengerService) List(ctx context.Context) ([]models.Passenger, error) {
	return s.repo.FindAll(ctx)
}

func (s *passengerService) Update(ctx context.Context, passenger *models.Passenger) error {
	if _, err := s.Get(ctx, passenger.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, passenger)
}

func (s *passengerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
