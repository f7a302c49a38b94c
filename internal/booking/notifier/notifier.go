package notifier

import (
	"context"
	"time"

	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// Notifier delivers booking and cancellation confirmations. Both calls may
// fail; the booking service surfaces that failure to its caller without
// rolling back the already-persisted mutation.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking model.Booking) error
	SendCancellationConfirmation(ctx context.Context, booking model.Booking) error
}

// Event types carried on the confirmations topic.
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// ConfirmationEvent is the payload published for each confirmation.
type ConfirmationEvent struct {
	Type    string        `json:"type"`
	Booking model.Booking `json:"booking"`
	SentAt  time.Time     `json:"sent_at"`
}

// LogNotifier writes confirmations to the service log. It is the fallback
// when no broker is configured and never fails.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendBookingConfirmation(_ context.Context, booking model.Booking) error {
	n.log.Info("Booking confirmation",
		"booking_id", booking.ID,
		"room_id", booking.RoomID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	return nil
}

func (n *LogNotifier) SendCancellationConfirmation(_ context.Context, booking model.Booking) error {
	n.log.Info("Cancellation confirmation",
		"booking_id", booking.ID,
		"room_id", booking.RoomID,
		"start_time", booking.StartTime,
	)
	return nil
}
