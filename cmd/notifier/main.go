package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"roomly/internal/booking/notifier"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafkaconfig "roomly/pkg/kafka/config"
	"roomly/pkg/logger"
)

const (
	ServiceName   = "notifier"
	ConsumerGroup = "roomly-notifier"
)

// The notifier worker drains the confirmations topic and delivers each
// event to the outbound channel. Delivery here is a structured log line;
// swapping in mail or chat delivery only touches deliver().
func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	log := cfg.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := kafka.NewConsumer(
		kafkaconfig.Load(),
		cfg.ConfirmationsTopic,
		ConsumerGroup,
		cfg.ConfirmationsDLQTopic,
		handleConfirmation(log),
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Error("Failed to close Kafka consumer", "error", err)
		}
	}()

	log.Info("Notifier worker started", "topic", cfg.ConfirmationsTopic, "group", ConsumerGroup)

	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("Consumer stopped unexpectedly", "error", err)
	}

	log.Info("Notifier worker stopped")
}

func handleConfirmation(log *logger.Logger) kafka.MessageHandler {
	return func(_ context.Context, msg kafka.Message) error {
		var event notifier.ConfirmationEvent
		if err := msg.DecodeValue(&event); err != nil {
			log.Error("Discarding undecodable confirmation",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err,
			)
			return err
		}

		deliver(log, event)
		return nil
	}
}

func deliver(log *logger.Logger, event notifier.ConfirmationEvent) {
	log.Info("Confirmation delivered",
		"event_type", event.Type,
		"booking_id", event.Booking.ID,
		"room_id", event.Booking.RoomID,
		"start_time", event.Booking.StartTime,
		"end_time", event.Booking.EndTime,
	)
}
