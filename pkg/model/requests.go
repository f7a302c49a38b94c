package model

import "time"

// BookRoomRequest is the transport-level payload for creating a booking.
type BookRoomRequest struct {
	RoomID    string    `json:"room_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// CreateRoomRequest is the transport-level payload for registering a room.
// ID is optional; the service generates one when it is omitted.
type CreateRoomRequest struct {
	ID   string `json:"id" validate:"omitempty,max=64"`
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// AvailabilityQuery carries a parsed availability window.
type AvailabilityQuery struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}
