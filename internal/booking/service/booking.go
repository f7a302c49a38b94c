package service

import (
	"context"
	"errors"
	"time"

	bookingerrors "roomly/internal/booking/errors"
	"roomly/internal/booking/notifier"
	"roomly/internal/booking/repository"
	"roomly/pkg/clock"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/locks"
	"roomly/pkg/model"

	"github.com/google/uuid"
)

// Precondition messages are part of the service contract; callers and
// tests match on them verbatim.
const (
	MsgInvalidBookingInput = "booking requires valid start/end times and a room id"
	MsgEndNotAfterStart    = "end time must be after start time"
	MsgStartInPast         = "start time cannot be in the past"
	MsgInvalidQueryInput   = "availability query requires valid start and end times"
	MsgMissingBookingID    = "cancellation requires a booking id"
	MsgCancelAfterStart    = "cannot cancel a booking that has already started or ended"
)

// BookingSystem orchestrates room reservations. It owns no state of its
// own; all invariants are enforced here, on top of the Clock, RoomStore
// and Notifier collaborators.
//
// BookRoom and CancelBooking report expected negative outcomes (unknown
// room, occupied slot, unknown booking) as (false, nil) rather than as
// errors. When a mutation has been persisted but the confirmation could
// not be delivered, they return (true, err) with a NOTIFICATION_FAILED
// AppError; the mutation is never rolled back.
type BookingSystem interface {
	BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error)
	CancelBooking(ctx context.Context, bookingID string) (bool, error)

	CreateRoom(ctx context.Context, id, name string) (*model.Room, error)
	GetRoom(ctx context.Context, id string) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
}

type bookingSystem struct {
	store    repository.RoomStore
	notifier notifier.Notifier
	clock    clock.Clock
	locks    *locks.KeyedMutex
	cfg      *config.Config
}

func NewBookingSystem(
	store repository.RoomStore,
	n notifier.Notifier,
	clk clock.Clock,
	cfg *config.Config,
) BookingSystem {
	return &bookingSystem{
		store:    store,
		notifier: n,
		clock:    clk,
		locks:    locks.NewKeyedMutex(),
		cfg:      cfg,
	}
}

func (s *bookingSystem) BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	if roomID == "" || start.IsZero() || end.IsZero() {
		return false, apperrors.InvalidInput(MsgInvalidBookingInput)
	}
	if !end.After(start) {
		return false, apperrors.InvalidInput(MsgEndNotAfterStart)
	}
	if start.Before(s.clock.Now()) {
		return false, apperrors.InvalidInput(MsgStartInPast)
	}

	booking, booked, err := s.commitBooking(ctx, roomID, start, end)
	if err != nil || !booked {
		return false, err
	}

	// The notifier runs outside the room lock so a slow or stuck
	// notification cannot stall other bookings for the room.
	if err := s.notifier.SendBookingConfirmation(ctx, booking); err != nil {
		s.cfg.Log.Error("Booking confirmed but notification failed",
			"booking_id", booking.ID,
			"room_id", roomID,
			"error", err,
		)
		return true, apperrors.NotificationFailure(err)
	}

	s.cfg.Log.Info("Room booked",
		"booking_id", booking.ID,
		"room_id", roomID,
		"start_time", start,
		"end_time", end,
	)
	return true, nil
}

// commitBooking runs the check-then-act sequence under the room's lock:
// load, availability check, mutate, persist. Two concurrent calls for the
// same room can never both observe the slot as free.
func (s *bookingSystem) commitBooking(ctx context.Context, roomID string, start, end time.Time) (model.Booking, bool, error) {
	s.locks.Lock(roomID)
	defer s.locks.Unlock(roomID)

	room, err := s.store.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrRoomNotFound) {
			// Absence of the room is "booking not possible", not a fault.
			return model.Booking{}, false, nil
		}
		return model.Booking{}, false, apperrors.Internal("Failed to load room", err)
	}

	if !room.IsAvailable(start, end) {
		return model.Booking{}, false, nil
	}

	booking := model.NewBooking(uuid.NewString(), roomID, start, end)
	room.AddBooking(booking)

	if err := s.store.Save(ctx, room); err != nil {
		return model.Booking{}, false, apperrors.Internal("Failed to persist booking", err)
	}

	return booking, true, nil
}

func (s *bookingSystem) GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperrors.InvalidInput(MsgInvalidQueryInput)
	}
	if !end.After(start) {
		return nil, apperrors.InvalidInput(MsgEndNotAfterStart)
	}

	rooms, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load rooms", err)
	}

	// Store enumeration order is preserved; no additional sorting.
	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsAvailable(start, end) {
			available = append(available, room)
		}
	}

	return available, nil
}

func (s *bookingSystem) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	if bookingID == "" {
		return false, apperrors.InvalidInput(MsgMissingBookingID)
	}

	// Booking ids are not indexed globally; scan rooms for the owner.
	rooms, err := s.store.FindAll(ctx)
	if err != nil {
		return false, apperrors.Internal("Failed to load rooms", err)
	}

	var roomID string
	for _, room := range rooms {
		if room.HasBooking(bookingID) {
			roomID = room.ID
			break
		}
	}
	if roomID == "" {
		return false, nil
	}

	booking, cancelled, err := s.commitCancellation(ctx, roomID, bookingID)
	if err != nil || !cancelled {
		return false, err
	}

	if err := s.notifier.SendCancellationConfirmation(ctx, booking); err != nil {
		s.cfg.Log.Error("Cancellation committed but notification failed",
			"booking_id", bookingID,
			"room_id", roomID,
			"error", err,
		)
		return true, apperrors.NotificationFailure(err)
	}

	s.cfg.Log.Info("Booking cancelled",
		"booking_id", bookingID,
		"room_id", roomID,
	)
	return true, nil
}

func (s *bookingSystem) commitCancellation(ctx context.Context, roomID, bookingID string) (model.Booking, bool, error) {
	s.locks.Lock(roomID)
	defer s.locks.Unlock(roomID)

	// Reload under the lock; the unlocked scan may have raced another
	// cancellation of the same booking.
	room, err := s.store.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrRoomNotFound) {
			return model.Booking{}, false, nil
		}
		return model.Booking{}, false, apperrors.Internal("Failed to load room", err)
	}

	booking, err := room.GetBooking(bookingID)
	if err != nil {
		return model.Booking{}, false, nil
	}

	if booking.Started(s.clock.Now()) {
		return model.Booking{}, false, apperrors.Conflict(MsgCancelAfterStart)
	}

	room.RemoveBooking(bookingID)

	if err := s.store.Save(ctx, room); err != nil {
		return model.Booking{}, false, apperrors.Internal("Failed to persist cancellation", err)
	}

	return booking, true, nil
}

func (s *bookingSystem) CreateRoom(ctx context.Context, id, name string) (*model.Room, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("room name cannot be empty")
	}
	if id == "" {
		id = uuid.NewString()
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if _, err := s.store.FindByID(ctx, id); err == nil {
		return nil, apperrors.Conflict("room already exists")
	} else if !errors.Is(err, bookingerrors.ErrRoomNotFound) {
		return nil, apperrors.Internal("Failed to check room existence", err)
	}

	room := model.NewRoom(id, name)
	if err := s.store.Save(ctx, room); err != nil {
		return nil, apperrors.Internal("Failed to persist room", err)
	}

	s.cfg.Log.Info("Room created", "room_id", id, "name", name)
	return room, nil
}

func (s *bookingSystem) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("room id cannot be empty")
	}

	room, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		return nil, apperrors.Internal("Failed to load room", err)
	}

	return room, nil
}

func (s *bookingSystem) ListRooms(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load rooms", err)
	}
	return rooms, nil
}
