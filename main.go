package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/windward/airline-reservation/config"
	"github.com/windward/airline-reservation/internal/handler"
	"github.com/windward/airline-reservation/internal/middleware"
	"github.com/windward/airline-reservation/internal/notifier"
	"github.com/windward/airline-reservation/internal/repository"
	"github.com/windward/airline-reservation/internal/service"
	"github.com/windward/airline-reservation/pkg/database"
	"github.com/windward/airline-reservation/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: confirmations are published after commit and delivered
	// by the in-process notifier.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	notifier.New(notifier.LogSender{}).Start(msgs)

	// Repositories
	flightRepo := repository.NewFlightRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	passengerRepo := repository.NewPassengerRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Services
	flightSvc := service.NewFlightService(flightRepo, seatRepo)
	passengerSvc := service.NewPassengerService(passengerRepo)
	reservationSvc := service.NewReservationService(reservationRepo, flightRepo, passengerRepo, seatRepo)
	bookingSvc := service.NewBookingService(reservationSvc, flightSvc, flightRepo, passengerRepo, seatRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "airline-reservation"})
	})

	handler.NewFlightHandler(flightSvc, bookingSvc).RegisterRoutes(e)
	handler.NewReservationHandler(bookingSvc, reservationSvc).RegisterRoutes(e)
	handler.NewPassengerHandler(passengerSvc).RegisterRoutes(e)

	log.Printf("Airline Reservation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
