package entity

import "errors"

var (
	// Event store errors
	ErrEventExists      = errors.New("event already exists")
	ErrUnknownEventType = errors.New("unknown event type")

	// Booking errors
	ErrBookingNotFound       = errors.New("booking not found")
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled in its current status")

	// Trip errors
	ErrTripNotFound = errors.New("trip not found")

	// Validation errors (client-facing, rejected before any event is built)
	ErrValidation = errors.New("validation failed")

	// General errors
	ErrCacheMiss = errors.New("cache miss")
)
