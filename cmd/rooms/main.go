package main

import (
	"github.com/joho/godotenv"

	"roomly/internal/booking/handler"
	"roomly/internal/booking/notifier"
	"roomly/internal/booking/repository"
	"roomly/internal/booking/service"
	"roomly/internal/booking/validator"
	"roomly/pkg/app"
	"roomly/pkg/clock"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafkaconfig "roomly/pkg/kafka/config"
)

const ServiceName = "rooms"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.RedisAddr != "" {
		cfg.SetRedis()
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Rooms service")

	bookingSystem, cleanup := initServices(cfg)
	defer cleanup()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingSystem, validator.NewBookingValidator(cfg.Log), cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingSystem, func()) {
	store := repository.NewMongoRoomStore(cfg)

	n, cleanup := initNotifier(cfg)
	bookingSystem := service.NewBookingSystem(store, n, clock.System(), cfg)

	cfg.Log.Info("Booking system initialized",
		"database", cfg.MongoDatabaseName,
		"notifier_mode", cfg.NotifierMode,
	)
	return bookingSystem, cleanup
}

func initNotifier(cfg *config.Config) (notifier.Notifier, func()) {
	if cfg.NotifierMode != config.NotifierModeKafka {
		return notifier.NewLogNotifier(cfg.Log), func() {}
	}

	producer, err := kafka.NewProducer(kafkaconfig.Load(), cfg.ConfirmationsTopic, cfg.ConfirmationsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cleanup := func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
	return notifier.NewKafkaNotifier(producer, cfg.NotifyTimeout, cfg.Log), cleanup
}
