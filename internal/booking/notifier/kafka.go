package notifier

import (
	"context"
	"time"

	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

const eventSource = "rooms"

// KafkaNotifier publishes confirmation events to the confirmations topic,
// keyed by room id so confirmations for one room stay ordered. Each
// publish runs under a bounded timeout; hitting it counts as notifier
// failure.
type KafkaNotifier struct {
	producer *kafka.Producer
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaNotifier(producer *kafka.Producer, timeout time.Duration, log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		timeout:  timeout,
		log:      log,
	}
}

func (n *KafkaNotifier) SendBookingConfirmation(ctx context.Context, booking model.Booking) error {
	return n.publish(ctx, EventBookingConfirmed, booking)
}

func (n *KafkaNotifier) SendCancellationConfirmation(ctx context.Context, booking model.Booking) error {
	return n.publish(ctx, EventBookingCancelled, booking)
}

func (n *KafkaNotifier) publish(ctx context.Context, eventType string, booking model.Booking) error {
	event := ConfirmationEvent{
		Type:    eventType,
		Booking: booking,
		SentAt:  time.Now().UTC(),
	}

	msg, err := kafka.NewMessage(booking.RoomID, event, eventType, eventSource)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.producer.Publish(ctx, msg); err != nil {
		n.log.Error("Failed to publish confirmation event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"room_id", booking.RoomID,
			"error", err,
		)
		return err
	}

	n.log.Debug("Confirmation event published",
		"event_type", eventType,
		"booking_id", booking.ID,
		"room_id", booking.RoomID,
	)
	return nil
}
