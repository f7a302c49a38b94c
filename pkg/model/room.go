package model

import (
	"errors"
	"time"
)

// ErrBookingNotFound is returned by GetBooking when the room holds no
// booking with the requested id.
var ErrBookingNotFound = errors.New("booking not found in room")

// Room is the aggregate owning all bookings placed against one room. It
// answers availability queries over its own booking set; it does not
// re-validate on AddBooking, so callers must hold the room's lock across
// the whole check-then-act sequence.
type Room struct {
	ID        string             `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Bookings  map[string]Booking `json:"bookings" bson:"bookings"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

func NewRoom(id, name string) *Room {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &Room{
		ID:        id,
		Name:      name,
		Bookings:  make(map[string]Booking),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAvailable reports whether no existing booking overlaps [start, end).
func (r *Room) IsAvailable(start, end time.Time) bool {
	for _, b := range r.Bookings {
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// AddBooking inserts the booking into the room's set. Availability must
// have been verified by the caller beforehand.
func (r *Room) AddBooking(b Booking) {
	if r.Bookings == nil {
		r.Bookings = make(map[string]Booking)
	}
	r.Bookings[b.ID] = b
}

func (r *Room) HasBooking(id string) bool {
	_, ok := r.Bookings[id]
	return ok
}

func (r *Room) GetBooking(id string) (Booking, error) {
	b, ok := r.Bookings[id]
	if !ok {
		return Booking{}, ErrBookingNotFound
	}
	return b, nil
}

// RemoveBooking deletes the booking with the given id. Removing an absent
// id is a no-op; callers guarantee existence.
func (r *Room) RemoveBooking(id string) {
	delete(r.Bookings, id)
}
