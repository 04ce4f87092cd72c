package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windward/airline-reservation/internal/models"
	"gorm.io/gorm"
)

// --- Mock SeatRepository ---

type seatCall struct {
	flightID  uint
	label     string
	available bool
}

type mockSeatRepo struct {
	findForUpdateFn func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error)
	setFn           func(ctx context.Context, tx *gorm.DB, flightID uint, label string, available bool) (int64, error)
	setCalls        []seatCall
}

func (m *mockSeatRepo) Materialize(ctx context.Context, tx *gorm.DB, flightID uint, fromRow, toRow int) error {
	return nil
}
func (m *mockSeatRepo) FindByFlight(ctx context.Context, flightID uint) ([]models.Seat, error) {
	return nil, nil
}
func (m *mockSeatRepo) FindAvailable(ctx context.Context, flightID uint) ([]models.Seat, error) {
	return nil, nil
}
func (m *mockSeatRepo) FindForUpdate(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
	return m.findForUpdateFn(ctx, tx, flightID, label)
}
func (m *mockSeatRepo) SetAvailability(ctx context.Context, tx *gorm.DB, flightID uint, label string, available bool) (int64, error) {
	m.setCalls = append(m.setCalls, seatCall{flightID: flightID, label: label, available: available})
	if m.setFn != nil {
		return m.setFn(ctx, tx, flightID, label, available)
	}
	return 1, nil
}
func (m *mockSeatRepo) CountByFlight(ctx context.Context, flightID uint) (int64, error) {
	return 0, nil
}

func availableSeat(flightID uint, label string) *models.Seat {
	return &models.Seat{FlightID: flightID, Label: label, Available: true}
}

// --- Claim ---

func TestClaim_Success(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			return availableSeat(flightID, label), nil
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Claim(context.Background(), nil, 1, "1A")

	assert.NoError(t, err)
	require.Len(t, repo.setCalls, 1)
	assert.Equal(t, seatCall{flightID: 1, label: "1A", available: false}, repo.setCalls[0])
}

func TestClaim_SeatDoesNotExist(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Claim(context.Background(), nil, 1, "99Z")

	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.Empty(t, repo.setCalls, "no write on rejected precondition")
}

func TestClaim_SeatUnavailable(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			return &models.Seat{FlightID: flightID, Label: label, Available: false}, nil
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Claim(context.Background(), nil, 1, "1A")

	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.Empty(t, repo.setCalls)
}

func TestClaim_GuardMissIsConflict(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			return availableSeat(flightID, label), nil
		},
		setFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string, available bool) (int64, error) {
			return 0, nil // a competing transaction already flipped the seat
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Claim(context.Background(), nil, 1, "1A")

	assert.ErrorIs(t, err, ErrSeatTaken)
}

// --- Release ---

func TestRelease_Success(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			return &models.Seat{FlightID: flightID, Label: label, Available: false}, nil
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Release(context.Background(), nil, 1, "1A")

	assert.NoError(t, err)
	require.Len(t, repo.setCalls, 1)
	assert.Equal(t, seatCall{flightID: 1, label: "1A", available: true}, repo.setCalls[0])
}

// --- Move ---

func TestMove_SameSeatIsNoOp(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			t.Fatal("same-seat move must not touch the ledger")
			return nil, nil
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Move(context.Background(), nil, 1, "1A", 1, "1A")

	assert.NoError(t, err)
	assert.Empty(t, repo.setCalls)
}

func TestMove_ReleasesOldClaimsNew(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			if label == "1A" {
				return &models.Seat{FlightID: flightID, Label: label, Available: false}, nil
			}
			return availableSeat(flightID, label), nil
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Move(context.Background(), nil, 1, "1A", 1, "2C")

	assert.NoError(t, err)
	require.Len(t, repo.setCalls, 2)
	assert.Contains(t, repo.setCalls, seatCall{flightID: 1, label: "1A", available: true})
	assert.Contains(t, repo.setCalls, seatCall{flightID: 1, label: "2C", available: false})
}

func TestMove_NewSeatUnavailable(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			if label == "2C" {
				return &models.Seat{FlightID: flightID, Label: label, Available: false}, nil
			}
			return &models.Seat{FlightID: flightID, Label: label, Available: false}, nil
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Move(context.Background(), nil, 1, "1A", 1, "2C")

	assert.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestMove_AcrossFlights(t *testing.T) {
	repo := &mockSeatRepo{
		findForUpdateFn: func(ctx context.Context, tx *gorm.DB, flightID uint, label string) (*models.Seat, error) {
			if flightID == 1 {
				return availableSeat(flightID, label), nil
			}
			// old seat on flight 2, currently held
			return &models.Seat{FlightID: flightID, Label: label, Available: false}, nil
		},
	}

	e := newSeatEnforcer(repo)
	err := e.Move(context.Background(), nil, 2, "1A", 1, "1A")

	assert.NoError(t, err)
	require.Len(t, repo.setCalls, 2)
	// Locks are taken in ascending (flight, label) order: flight 1 first.
	assert.Equal(t, seatCall{flightID: 1, label: "1A", available: false}, repo.setCalls[0])
	assert.Equal(t, seatCall{flightID: 2, label: "1A", available: true}, repo.setCalls[1])
}
