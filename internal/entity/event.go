package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeFlightBooked     EventType = "FlightBooked"
	EventTypeHotelBooked      EventType = "HotelBooked"
	EventTypeActivityBooked   EventType = "ActivityBooked"
	EventTypePackageBooked    EventType = "PackageBooked"
	EventTypeTripCreated      EventType = "TripCreated"
	EventTypeBookingCancelled EventType = "BookingCancelled"
)

// EventPayload is the closed set of event data variants. Every payload type
// lives in this package and reports its own discriminator.
type EventPayload interface {
	EventType() EventType
}

// Event is the immutable envelope persisted in the event store. Once appended
// it is never updated or deleted; the read model is derived from it.
type Event struct {
	EventID     string       `json:"event_id"`
	AggregateID string       `json:"aggregate_id"`
	Type        EventType    `json:"event_type"`
	Timestamp   time.Time    `json:"timestamp"`
	Version     int          `json:"version"`
	Payload     EventPayload `json:"data"`
}

type FlightBookedPayload struct {
	TripID      string  `json:"trip_id,omitempty"`
	UserID      int64   `json:"user_id,omitempty"`
	OfferID     string  `json:"offer_id"`
	Departure   string  `json:"departure"`
	Destination string  `json:"destination"`
	DepartDate  string  `json:"depart_date"`
	ReturnDate  string  `json:"return_date,omitempty"`
	Price       float64 `json:"price"`
	Adults      int     `json:"adults"`
}

func (FlightBookedPayload) EventType() EventType { return EventTypeFlightBooked }

type HotelBookedPayload struct {
	TripID    string  `json:"trip_id,omitempty"`
	UserID    int64   `json:"user_id,omitempty"`
	HotelName string  `json:"hotel_name"`
	HotelCity string  `json:"hotel_city"`
	CheckIn   string  `json:"check_in"`
	CheckOut  string  `json:"check_out"`
	Price     float64 `json:"price"`
	Adults    int     `json:"adults"`
}

func (HotelBookedPayload) EventType() EventType { return EventTypeHotelBooked }

type ActivityBookedPayload struct {
	TripID       string  `json:"trip_id,omitempty"`
	UserID       int64   `json:"user_id,omitempty"`
	ActivityName string  `json:"activity_name"`
	ActivityDate string  `json:"activity_date"`
	Duration     string  `json:"duration,omitempty"`
	Price        float64 `json:"price"`
}

func (ActivityBookedPayload) EventType() EventType { return EventTypeActivityBooked }

type PackageBookedPayload struct {
	TripID      string  `json:"trip_id"`
	UserID      int64   `json:"user_id,omitempty"`
	OfferID     string  `json:"offer_id"`
	Departure   string  `json:"departure"`
	Destination string  `json:"destination"`
	DepartDate  string  `json:"depart_date"`
	ReturnDate  string  `json:"return_date,omitempty"`
	HotelName   string  `json:"hotel_name"`
	HotelCity   string  `json:"hotel_city"`
	Price       float64 `json:"price"`
	Adults      int     `json:"adults"`
}

func (PackageBookedPayload) EventType() EventType { return EventTypePackageBooked }

type TripCreatedPayload struct {
	TripID      string  `json:"trip_id"`
	UserID      int64   `json:"user_id,omitempty"`
	Name        string  `json:"name"`
	Destination string  `json:"destination,omitempty"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	TotalPrice  float64 `json:"total_price"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
}

func (TripCreatedPayload) EventType() EventType { return EventTypeTripCreated }

type BookingCancelledPayload struct {
	BookingID    string   `json:"booking_id"`
	Reason       string   `json:"reason,omitempty"`
	RefundAmount *float64 `json:"refund_amount,omitempty"`
}

func (BookingCancelledPayload) EventType() EventType { return EventTypeBookingCancelled }

// NewEvent builds an envelope for a payload. The aggregate id is the booking
// or trip id the event concerns; a fresh event id is assigned here and never
// reused.
func NewEvent(aggregateID string, payload EventPayload) *Event {
	return &Event{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		Type:        payload.EventType(),
		Timestamp:   time.Now().UTC(),
		Version:     1,
		Payload:     payload,
	}
}

// EncodePayload serializes the typed payload for storage.
func (e *Event) EncodePayload() ([]byte, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", e.Type, err)
	}
	return data, nil
}

// DecodePayload turns a persisted payload back into its typed variant. This is
// the single place the discriminator is matched; an event type missing from
// this switch surfaces as ErrUnknownEventType, not silent data loss.
func DecodePayload(eventType EventType, data []byte) (EventPayload, error) {
	var (
		payload EventPayload
		err     error
	)

	switch eventType {
	case EventTypeFlightBooked:
		var p FlightBookedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case EventTypeHotelBooked:
		var p HotelBookedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case EventTypeActivityBooked:
		var p ActivityBookedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case EventTypePackageBooked:
		var p PackageBookedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case EventTypeTripCreated:
		var p TripCreatedPayload
		err = json.Unmarshal(data, &p)
		payload = p
	case EventTypeBookingCancelled:
		var p BookingCancelledPayload
		err = json.Unmarshal(data, &p)
		payload = p
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", eventType, err)
	}
	return payload, nil
}
