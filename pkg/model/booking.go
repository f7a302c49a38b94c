package model

import (
	"time"
)

// Booking is an immutable reservation of a single room over a half-open
// time interval [StartTime, EndTime). Instances are only created through
// NewBooking; cancellation removes a booking from its room instead of
// mutating it.
type Booking struct {
	ID        string    `json:"id" bson:"_id"`
	RoomID    string    `json:"room_id" bson:"room_id"`
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func NewBooking(id, roomID string, start, end time.Time) Booking {
	return Booking{
		ID:        id,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Overlaps reports whether the booking's interval intersects [start, end).
// Both intervals are half-open, so a booking ending exactly when another
// starts does not overlap.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Started reports whether the booking's start time has been reached at now.
func (b Booking) Started(now time.Time) bool {
	return !b.StartTime.After(now)
}
