package model

import (
	"errors"
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 12, hour, min, 0, 0, time.UTC)
}

func TestRoom_IsAvailable(t *testing.T) {
	tests := []struct {
		name      string
		booked    [][2]time.Time
		start     time.Time
		end       time.Time
		available bool
	}{
		{
			name:      "empty room is available",
			start:     at(10, 0),
			end:       at(11, 0),
			available: true,
		},
		{
			name:      "identical interval conflicts",
			booked:    [][2]time.Time{{at(10, 0), at(11, 0)}},
			start:     at(10, 0),
			end:       at(11, 0),
			available: false,
		},
		{
			name:      "partial overlap at tail conflicts",
			booked:    [][2]time.Time{{at(14, 0), at(15, 0)}},
			start:     at(14, 30),
			end:       at(15, 30),
			available: false,
		},
		{
			name:      "containing interval conflicts",
			booked:    [][2]time.Time{{at(10, 0), at(11, 0)}},
			start:     at(9, 0),
			end:       at(12, 0),
			available: false,
		},
		{
			name:      "contained interval conflicts",
			booked:    [][2]time.Time{{at(9, 0), at(12, 0)}},
			start:     at(10, 0),
			end:       at(11, 0),
			available: false,
		},
		{
			name:      "adjacent after shared boundary is free",
			booked:    [][2]time.Time{{at(10, 0), at(11, 0)}},
			start:     at(11, 0),
			end:       at(12, 0),
			available: true,
		},
		{
			name:      "adjacent before shared boundary is free",
			booked:    [][2]time.Time{{at(11, 0), at(12, 0)}},
			start:     at(10, 0),
			end:       at(11, 0),
			available: true,
		},
		{
			name:      "disjoint interval is free",
			booked:    [][2]time.Time{{at(8, 0), at(9, 0)}},
			start:     at(15, 0),
			end:       at(16, 0),
			available: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := NewRoom("room1", "Room 1")
			for i, iv := range tt.booked {
				room.AddBooking(NewBooking(
					"b"+string(rune('0'+i)), room.ID, iv[0], iv[1],
				))
			}
			if got := room.IsAvailable(tt.start, tt.end); got != tt.available {
				t.Errorf("IsAvailable(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.available)
			}
		})
	}
}

func TestBooking_OverlapIsSymmetric(t *testing.T) {
	a := NewBooking("a", "room1", at(10, 0), at(12, 0))
	b := NewBooking("b", "room1", at(11, 0), at(13, 0))

	if !a.Overlaps(b.StartTime, b.EndTime) {
		t.Errorf("expected a to overlap b")
	}
	if !b.Overlaps(a.StartTime, a.EndTime) {
		t.Errorf("expected b to overlap a")
	}

	c := NewBooking("c", "room1", at(12, 0), at(13, 0))
	if a.Overlaps(c.StartTime, c.EndTime) || c.Overlaps(a.StartTime, a.EndTime) {
		t.Errorf("touching boundaries must not overlap in either direction")
	}
}

func TestRoom_BookingLifecycle(t *testing.T) {
	room := NewRoom("room1", "Room 1")
	booking := NewBooking("b1", room.ID, at(10, 0), at(11, 0))

	if room.HasBooking("b1") {
		t.Fatalf("fresh room should not contain b1")
	}

	room.AddBooking(booking)

	if !room.HasBooking("b1") {
		t.Fatalf("expected b1 after AddBooking")
	}

	got, err := room.GetBooking("b1")
	if err != nil {
		t.Fatalf("GetBooking returned error: %v", err)
	}
	if got.ID != "b1" || !got.StartTime.Equal(at(10, 0)) {
		t.Errorf("GetBooking returned wrong booking: %+v", got)
	}

	if _, err := room.GetBooking("missing"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}

	room.RemoveBooking("b1")
	if room.HasBooking("b1") {
		t.Errorf("expected b1 to be removed")
	}

	// Removing an unknown id stays a no-op.
	room.RemoveBooking("missing")
}

func TestRoom_AddBookingNilMap(t *testing.T) {
	// Rooms decoded from storage may arrive with a nil bookings map.
	room := &Room{ID: "room1"}
	room.AddBooking(NewBooking("b1", "room1", at(10, 0), at(11, 0)))

	if !room.HasBooking("b1") {
		t.Errorf("expected AddBooking to initialize the map")
	}
}
