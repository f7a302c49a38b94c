package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/internal/booking/validator"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type mockBookingSystem struct {
	bookRoomFunc   func(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	availableFunc  func(ctx context.Context, start, end time.Time) ([]*model.Room, error)
	cancelFunc     func(ctx context.Context, bookingID string) (bool, error)
	createRoomFunc func(ctx context.Context, id, name string) (*model.Room, error)
	getRoomFunc    func(ctx context.Context, id string) (*model.Room, error)
	listRoomsFunc  func(ctx context.Context) ([]*model.Room, error)
}

func (m *mockBookingSystem) BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	return m.bookRoomFunc(ctx, roomID, start, end)
}

func (m *mockBookingSystem) GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	return m.availableFunc(ctx, start, end)
}

func (m *mockBookingSystem) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	return m.cancelFunc(ctx, bookingID)
}

func (m *mockBookingSystem) CreateRoom(ctx context.Context, id, name string) (*model.Room, error) {
	return m.createRoomFunc(ctx, id, name)
}

func (m *mockBookingSystem) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	return m.getRoomFunc(ctx, id)
}

func (m *mockBookingSystem) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return m.listRoomsFunc(ctx)
}

func newTestRouter(svc *mockBookingSystem) *httprouter.Router {
	log := logger.Discard()
	h := NewBookingHandler(svc, validator.NewBookingValidator(log), log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *httprouter.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBookRoomEndpoint(t *testing.T) {
	validBody := `{"room_id":"room-1","start_time":"2026-03-10T14:00:00Z","end_time":"2026-03-10T15:00:00Z"}`

	t.Run("booked", func(t *testing.T) {
		svc := &mockBookingSystem{
			bookRoomFunc: func(_ context.Context, roomID string, start, end time.Time) (bool, error) {
				assert.Equal(t, "room-1", roomID)
				assert.Equal(t, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), start)
				return true, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/bookings", validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Data BookingResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Booked)
		assert.Empty(t, resp.Data.Warning)
	})

	t.Run("slot unavailable", func(t *testing.T) {
		svc := &mockBookingSystem{
			bookRoomFunc: func(context.Context, string, time.Time, time.Time) (bool, error) {
				return false, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/bookings", validBody)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), apperrors.CodeConflict)
	})

	t.Run("committed with failed confirmation", func(t *testing.T) {
		svc := &mockBookingSystem{
			bookRoomFunc: func(context.Context, string, time.Time, time.Time) (bool, error) {
				return true, apperrors.NotificationFailure(errors.New("broker unreachable"))
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/bookings", validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Data BookingResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Booked)
		assert.NotEmpty(t, resp.Data.Warning)
	})

	t.Run("invalid precondition from service", func(t *testing.T) {
		svc := &mockBookingSystem{
			bookRoomFunc: func(context.Context, string, time.Time, time.Time) (bool, error) {
				return false, apperrors.InvalidInput("start time cannot be in the past")
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/bookings", validBody)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "start time cannot be in the past")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &mockBookingSystem{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/bookings", `{"room_id":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing room id fails validation", func(t *testing.T) {
		svc := &mockBookingSystem{}
		body := `{"start_time":"2026-03-10T14:00:00Z","end_time":"2026-03-10T15:00:00Z"}`
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/bookings", body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "RoomID")
	})
}

func TestCancelBookingEndpoint(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		svc := &mockBookingSystem{
			cancelFunc: func(_ context.Context, id string) (bool, error) {
				assert.Equal(t, "b-1", id)
				return true, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, "/bookings/b-1", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := &mockBookingSystem{
			cancelFunc: func(context.Context, string) (bool, error) {
				return false, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, "/bookings/ghost", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("booking already started", func(t *testing.T) {
		svc := &mockBookingSystem{
			cancelFunc: func(context.Context, string) (bool, error) {
				return false, apperrors.Conflict("cannot cancel a booking that has already started or ended")
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, "/bookings/b-1", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already started")
	})

	t.Run("committed with failed confirmation", func(t *testing.T) {
		svc := &mockBookingSystem{
			cancelFunc: func(context.Context, string) (bool, error) {
				return true, apperrors.NotificationFailure(errors.New("broker unreachable"))
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, "/bookings/b-1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data BookingResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Cancelled)
		assert.NotEmpty(t, resp.Data.Warning)
	})
}

func TestAvailabilityEndpoint(t *testing.T) {
	t.Run("returns available rooms", func(t *testing.T) {
		svc := &mockBookingSystem{
			availableFunc: func(_ context.Context, start, end time.Time) ([]*model.Room, error) {
				assert.Equal(t, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), start)
				assert.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), end)
				return []*model.Room{model.NewRoom("room-1", "Atlas")}, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet,
			"/availability?start=2026-03-10T14:00:00Z&end=2026-03-10T15:00:00Z", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "room-1")
	})

	t.Run("missing window fails validation", func(t *testing.T) {
		svc := &mockBookingSystem{}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/availability?start=2026-03-10T14:00:00Z", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "EndTime")
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		svc := &mockBookingSystem{}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/availability?start=tomorrow&end=2026-03-10T15:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "RFC 3339")
	})
}

func TestRoomEndpoints(t *testing.T) {
	t.Run("create room", func(t *testing.T) {
		svc := &mockBookingSystem{
			createRoomFunc: func(_ context.Context, id, name string) (*model.Room, error) {
				assert.Equal(t, "room-1", id)
				assert.Equal(t, "Atlas", name)
				return model.NewRoom(id, name), nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/rooms", `{"id":"room-1","name":"Atlas"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "Atlas")
	})

	t.Run("create room without name", func(t *testing.T) {
		svc := &mockBookingSystem{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/rooms", `{"id":"room-1"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("get unknown room", func(t *testing.T) {
		svc := &mockBookingSystem{
			getRoomFunc: func(_ context.Context, id string) (*model.Room, error) {
				return nil, apperrors.NotFoundWithID("Room", id)
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/rooms/ghost", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), apperrors.CodeNotFound)
	})

	t.Run("list rooms", func(t *testing.T) {
		svc := &mockBookingSystem{
			listRoomsFunc: func(context.Context) ([]*model.Room, error) {
				return []*model.Room{
					model.NewRoom("room-1", "Atlas"),
					model.NewRoom("room-2", "Borealis"),
				}, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/rooms", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Borealis")
	})
}
