package main

import (
	"time"

	"campsite/internal/reservations/engine"
	"campsite/internal/reservations/events"
	"campsite/internal/reservations/handler"
	"campsite/internal/reservations/ledger"
	"campsite/internal/reservations/service"
	"campsite/internal/reservations/store"
	"campsite/internal/reservations/validator"
	"campsite/pkg/app"
	"campsite/pkg/config"
	"campsite/pkg/kafka"

	"github.com/joho/godotenv"
)

const ServiceName = "reservations"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Reservations service")

	// The ledger covers today..today+horizon and resets on every start:
	// reservations are deliberately not persisted across restarts.
	campsiteLedger := ledger.New(time.Now(), cfg.HorizonDays)
	eng := engine.New(campsiteLedger)

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	reservationService := service.NewReservationService(
		eng,
		store.New(),
		validator.NewReservationValidator(cfg),
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized",
		"horizon_start", campsiteLedger.Horizon().Checkin,
		"horizon_end", campsiteLedger.Horizon().Checkout,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewHealthHandler(eng, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NewNop()
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Reservation events enabled", "topic", cfg.KafkaTopic)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}
