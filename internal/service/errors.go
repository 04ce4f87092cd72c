package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrPassengerNotFound   = errors.New("passenger not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSeatNotFound        = errors.New("seat does not exist for this flight")
	ErrSeatUnavailable     = errors.New("seat is not available")
	ErrCapacityShrink      = errors.New("seat rows cannot be reduced")

	// ErrSeatTaken means a concurrent transaction claimed the seat
	// between the caller's advisory read and the commit attempt. Callers
	// should re-fetch available seats before retrying.
	ErrSeatTaken = errors.New("seat was claimed by a concurrent booking")
)

var validationErrs = []error{
	ErrFlightNotFound,
	ErrPassengerNotFound,
	ErrReservationNotFound,
	ErrSeatNotFound,
	ErrSeatUnavailable,
	ErrCapacityShrink,
}

// IsValidation reports whether err is a business-rule rejection:
// recoverable at the caller, never retried automatically.
func IsValidation(err error) bool {
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrSeatTaken)
}

// IsRetryable reports whether err is a transient storage fault: lock
// wait timeout, deadlock, or serialization failure. The whole operation
// may be retried a bounded number of times.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "55P03", // lock_not_available
		"40001", // serialization_failure
		"40P01": // deadlock_detected
		return true
	}
	return false
}

// classifyStorageErr maps the unique-violation on the reservation seat
// index to a conflict: a competing transaction won the seat.
func classifyStorageErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSeatTaken
	}
	return err
}
