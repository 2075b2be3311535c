package repository

import (
	"context"

	"github.com/wanderbook/backend/internal/entity"
)

// EventStore is the append-only log of domain events, the system's source of
// truth. Nothing on this interface mutates or removes an event.
type EventStore interface {
	// Append persists one event. Duplicate event ids fail with
	// entity.ErrEventExists; storage faults are fatal to the calling command.
	Append(ctx context.Context, event *entity.Event) error

	// AppendBatch persists all events in one transaction, or none of them.
	AppendBatch(ctx context.Context, events []*entity.Event) error

	// GetByAggregate returns every event for one aggregate, in append order.
	GetByAggregate(ctx context.Context, aggregateID string) ([]*entity.Event, error)

	// GetAll scans the full log, optionally filtered by event type ("" = all).
	// Intended for diagnostics and tests, not hot-path queries.
	GetAll(ctx context.Context, eventType entity.EventType) ([]*entity.Event, error)

	CountEvents(ctx context.Context) (int64, error)
}

// BookingRepository holds the denormalized booking projection. The mutating
// methods are called only by command handlers.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error)
	GetByTripID(ctx context.Context, tripID string) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error
}

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	// CreateWithBookings projects a trip and its child bookings atomically.
	CreateWithBookings(ctx context.Context, trip *entity.Trip, bookings []*entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Trip, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Trip, error)
	UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error
}
