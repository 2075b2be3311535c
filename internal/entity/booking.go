package entity

import (
	"time"
)

type BookingType string

const (
	BookingTypeFlight   BookingType = "FLIGHT"
	BookingTypeHotel    BookingType = "HOTEL"
	BookingTypePackage  BookingType = "PACKAGE"
	BookingTypeActivity BookingType = "ACTIVITY"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "REQUESTED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusFailed    BookingStatus = "FAILED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusHeld      BookingStatus = "HELD"
)

// Booking is one denormalized row of the read model. It is written only by
// command handlers, always after the producing event has been appended;
// EventID traces the row back to exactly one event. Only the fields relevant
// to BookingType are populated.
type Booking struct {
	ID           string        `json:"id" db:"id"`
	TripID       string        `json:"trip_id,omitempty" db:"trip_id"`
	UserID       int64         `json:"user_id,omitempty" db:"user_id"`
	BookingType  BookingType   `json:"booking_type" db:"booking_type"`
	Price        float64       `json:"price" db:"price"`
	Currency     string        `json:"currency" db:"currency"`
	Status       BookingStatus `json:"status" db:"status"`
	ProviderName string        `json:"provider_name,omitempty" db:"provider_name"`
	ProviderID   string        `json:"provider_id,omitempty" db:"provider_id"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	EventID      string        `json:"event_id" db:"event_id"`

	// Flight fields
	OfferID     string `json:"offer_id,omitempty" db:"offer_id"`
	Departure   string `json:"departure,omitempty" db:"departure"`
	Destination string `json:"destination,omitempty" db:"destination"`
	DepartDate  string `json:"depart_date,omitempty" db:"depart_date"`
	ReturnDate  string `json:"return_date,omitempty" db:"return_date"`
	Airline     string `json:"airline,omitempty" db:"airline"`
	Adults      int    `json:"adults,omitempty" db:"adults"`

	// Hotel fields
	HotelName string `json:"hotel_name,omitempty" db:"hotel_name"`
	HotelCity string `json:"hotel_city,omitempty" db:"hotel_city"`
	CheckIn   string `json:"check_in,omitempty" db:"check_in"`
	CheckOut  string `json:"check_out,omitempty" db:"check_out"`
	Guests    int    `json:"guests,omitempty" db:"guests"`

	// Activity fields
	ActivityName     string `json:"activity_name,omitempty" db:"activity_name"`
	ActivityDate     string `json:"activity_date,omitempty" db:"activity_date"`
	ActivityDuration string `json:"activity_duration,omitempty" db:"activity_duration"`
}

// Cancellable reports whether the booking may transition to CANCELLED.
func (b *Booking) Cancellable() bool {
	switch b.Status {
	case BookingStatusRequested, BookingStatusConfirmed, BookingStatusHeld:
		return true
	default:
		return false
	}
}
