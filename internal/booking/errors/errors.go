package errors

import "errors"

// ErrRoomNotFound is the repository-level sentinel for a missing room.
// The service maps it to a negative outcome, not an API error.
var ErrRoomNotFound = errors.New("room not found")
