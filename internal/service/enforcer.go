package service

import (
	"context"
	"errors"

	"github.com/windward/airline-reservation/internal/repository"
	"gorm.io/gorm"
)

// boundLockWait caps how long a mutation may wait on a contended row.
// A timeout aborts the transaction with a retryable storage error
// (lock_not_available), never a partial write.
func boundLockWait(tx *gorm.DB) error {
	return tx.Exec("SET LOCAL lock_timeout = '3s'").Error
}

// seatEnforcer owns every seat-availability transition. It runs inside
// the caller's transaction: the reservation row write and the seat flip
// commit or roll back together, and the locked seat row is the
// serialization point between competing mutations. No other code path
// touches seat availability.
type seatEnforcer struct {
	seats repository.SeatRepository
}

func newSeatEnforcer(seats repository.SeatRepository) *seatEnforcer {
	return &seatEnforcer{seats: seats}
}

// Claim marks the seat unavailable for a new reservation. The seat must
// exist for the flight and be available under the row lock; the flip
// itself is additionally guarded on available=true, so a claim that
// somehow raced past the lock still surfaces as ErrSeatTaken instead of
// double-assigning.
func (e *seatEnforcer) Claim(ctx context.Context, tx *gorm.DB, flightID uint, label string) error {
	seat, err := e.seats.FindForUpdate(ctx, tx, flightID, label)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeatNotFound
		}
		return err
	}
	if !seat.Available {
		return ErrSeatUnavailable
	}

	affected, err := e.seats.SetAvailability(ctx, tx, flightID, label, false)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSeatTaken
	}
	return nil
}

// Release marks the seat available again when its reservation is
// deleted or moved away.
func (e *seatEnforcer) Release(ctx context.Context, tx *gorm.DB, flightID uint, label string) error {
	if _, err := e.seats.FindForUpdate(ctx, tx, flightID, label); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeatNotFound
		}
		return err
	}
	_, err := e.seats.SetAvailability(ctx, tx, flightID, label, true)
	return err
}

// Move releases the old seat and claims the new one as sub-steps of
// one transaction. An identical pair is a no-op: release-then-reclaim
// of the same seat would open a window for a competing claim. The two
// rows are locked in ascending (flight, label) order so concurrent
// swaps cannot deadlock.
func (e *seatEnforcer) Move(ctx context.Context, tx *gorm.DB, oldFlightID uint, oldLabel string, newFlightID uint, newLabel string) error {
	if oldFlightID == newFlightID && oldLabel == newLabel {
		return nil
	}

	releaseFirst := oldFlightID < newFlightID ||
		(oldFlightID == newFlightID && oldLabel < newLabel)

	if releaseFirst {
		if err := e.Release(ctx, tx, oldFlightID, oldLabel); err != nil {
			return err
		}
		return e.Claim(ctx, tx, newFlightID, newLabel)
	}
	if err := e.Claim(ctx, tx, newFlightID, newLabel); err != nil {
		return err
	}
	return e.Release(ctx, tx, oldFlightID, oldLabel)
}
