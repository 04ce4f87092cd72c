package database

import (
	"log"

	"github.com/windward/airline-reservation/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Flight{},
		&models.Seat{},
		&models.Passenger{},
		&models.Reservation{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One active reservation per seat, even for writes that bypass the
	// service layer.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_seat
		ON reservations (flight_id, seat_label)
	`)

	// Flights and passengers with reservations cannot be deleted out
	// from under them.
	db.Exec(`
		ALTER TABLE reservations
		DROP CONSTRAINT IF EXISTS fk_reservations_flight,
		ADD CONSTRAINT fk_reservations_flight
		FOREIGN KEY (flight_id) REFERENCES flights (id) ON DELETE RESTRICT
	`)
	db.Exec(`
		ALTER TABLE reservations
		DROP CONSTRAINT IF EXISTS fk_reservations_passenger,
		ADD CONSTRAINT fk_reservations_passenger
		FOREIGN KEY (passenger_id) REFERENCES passengers (id) ON DELETE RESTRICT
	`)

	return db
}
