package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"roomly/internal/booking/service"
	"roomly/internal/booking/validator"
	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/logger"
	"roomly/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// BookingResult is the payload for booking and cancellation outcomes.
// Warning is set when the operation committed but its confirmation was
// not delivered.
type BookingResult struct {
	Booked    bool   `json:"booked,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

type BookingHandler struct {
	service   service.BookingSystem
	validator *validator.BookingValidator
	log       *logger.Logger
}

func NewBookingHandler(svc service.BookingSystem, v *validator.BookingValidator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:   svc,
		validator: v,
		log:       log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/rooms", h.CreateRoom)
	router.GET("/rooms", h.ListRooms)
	router.GET("/rooms/:id", h.GetRoom)
	router.GET("/availability", h.GetAvailability)
	router.POST("/bookings", h.BookRoom)
	router.DELETE("/bookings/:id", h.CancelBooking)
}

func (h *BookingHandler) CreateRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.validator.ValidateCreateRoom(&req); err != nil {
		httputil.WriteError(w, asValidationError(err))
		return
	}

	room, err := h.service.CreateRoom(r.Context(), req.ID, req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, room)
}

func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rooms)
}

func (h *BookingHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetRoom(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, room)
}

func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query, err := parseAvailabilityQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.validator.ValidateAvailability(query); err != nil {
		httputil.WriteError(w, asValidationError(err))
		return
	}

	rooms, err := h.service.GetAvailableRooms(r.Context(), query.StartTime, query.EndTime)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rooms)
}

func (h *BookingHandler) BookRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.validator.ValidateBookRoom(&req); err != nil {
		httputil.WriteError(w, asValidationError(err))
		return
	}

	booked, err := h.service.BookRoom(r.Context(), req.RoomID, req.StartTime, req.EndTime)
	switch {
	case err == nil && booked:
		httputil.WriteCreated(w, BookingResult{Booked: true})
	case err == nil:
		// Unknown room and occupied slot are indistinguishable on purpose.
		httputil.WriteJSON(w, http.StatusConflict, httputil.ErrorResponse{
			Error: "room is not available for the requested time window",
			Code:  apperrors.CodeConflict,
		})
	case isNotificationFailure(err):
		// The booking is committed; surface the delivery failure as a warning.
		httputil.WriteCreated(w, BookingResult{
			Booked:  true,
			Warning: err.(*apperrors.AppError).Message,
		})
	default:
		httputil.WriteError(w, err)
	}
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cancelled, err := h.service.CancelBooking(r.Context(), ps.ByName("id"))
	switch {
	case err == nil && cancelled:
		httputil.WriteNoContent(w)
	case err == nil:
		httputil.WriteError(w, apperrors.NotFoundWithID("Booking", ps.ByName("id")))
	case isNotificationFailure(err):
		httputil.WriteSuccess(w, BookingResult{
			Cancelled: true,
			Warning:   err.(*apperrors.AppError).Message,
		})
	default:
		httputil.WriteError(w, err)
	}
}

func parseAvailabilityQuery(r *http.Request) (*model.AvailabilityQuery, error) {
	values := r.URL.Query()
	query := &model.AvailabilityQuery{}

	for _, p := range []struct {
		name string
		dst  *time.Time
	}{
		{"start", &query.StartTime},
		{"end", &query.EndTime},
	} {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: must be RFC 3339", p.name))
		}
		*p.dst = t
	}

	return query, nil
}

func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]any, len(verrs))
		for _, ve := range verrs {
			details[ve.Field] = ve.Message
		}
		return apperrors.Validation("Invalid request", details)
	}
	return apperrors.InvalidInput(err.Error())
}

func isNotificationFailure(err error) bool {
	appErr, ok := err.(*apperrors.AppError)
	return ok && appErr.Code == apperrors.CodeNotificationFailed
}
