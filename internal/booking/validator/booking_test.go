package validator

import (
	"strings"
	"testing"
	"time"

	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func TestValidateBookRoom(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       model.BookRoomRequest
		wantError bool
		wantField string
	}{
		{
			name: "valid request",
			req: model.BookRoomRequest{
				RoomID:    "room-1",
				StartTime: start,
				EndTime:   start.Add(time.Hour),
			},
			wantError: false,
		},
		{
			name: "missing room id",
			req: model.BookRoomRequest{
				StartTime: start,
				EndTime:   start.Add(time.Hour),
			},
			wantError: true,
			wantField: "RoomID",
		},
		{
			name: "missing start time",
			req: model.BookRoomRequest{
				RoomID:  "room-1",
				EndTime: start.Add(time.Hour),
			},
			wantError: true,
			wantField: "StartTime",
		},
		{
			name: "end before start",
			req: model.BookRoomRequest{
				RoomID:    "room-1",
				StartTime: start,
				EndTime:   start.Add(-time.Hour),
			},
			wantError: true,
			wantField: "EndTime",
		},
		{
			name: "end equals start",
			req: model.BookRoomRequest{
				RoomID:    "room-1",
				StartTime: start,
				EndTime:   start,
			},
			wantError: true,
			wantField: "EndTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBookRoom(&tt.req)

			if tt.wantError && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
			if tt.wantField != "" && !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("expected error naming %s, got %q", tt.wantField, err.Error())
			}
		})
	}
}

func TestValidateCreateRoom(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name      string
		req       model.CreateRoomRequest
		wantError bool
	}{
		{name: "valid with id", req: model.CreateRoomRequest{ID: "room-1", Name: "Atlas"}},
		{name: "valid without id", req: model.CreateRoomRequest{Name: "Atlas"}},
		{name: "missing name", req: model.CreateRoomRequest{ID: "room-1"}, wantError: true},
		{name: "name too long", req: model.CreateRoomRequest{Name: strings.Repeat("x", 121)}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreateRoom(&tt.req)

			if tt.wantError && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
