package service

import (
	"context"
	"time"

	"github.com/wanderbook/backend/internal/entity"
)

const dateLayout = "2006-01-02"

// BookFlightRequest carries the intent to book one flight offer.
type BookFlightRequest struct {
	OfferID     string  `json:"offer_id" binding:"required"`
	Departure   string  `json:"departure" binding:"required,min=2"`
	Destination string  `json:"destination" binding:"required,min=2"`
	DepartDate  string  `json:"depart_date" binding:"required"`
	ReturnDate  string  `json:"return_date"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Adults      int     `json:"adults" binding:"omitempty,min=1,max=9"`
	UserID      int64   `json:"user_id"`
}

type BookHotelRequest struct {
	HotelName string  `json:"hotel_name" binding:"required,min=2"`
	HotelCity string  `json:"hotel_city" binding:"required,min=2"`
	CheckIn   string  `json:"check_in" binding:"required"`
	CheckOut  string  `json:"check_out" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Adults    int     `json:"adults" binding:"omitempty,min=1,max=9"`
	UserID    int64   `json:"user_id"`
}

type BookActivityRequest struct {
	ActivityName string  `json:"activity_name" binding:"required"`
	ActivityDate string  `json:"activity_date" binding:"required"`
	Duration     string  `json:"duration"`
	Price        float64 `json:"price" binding:"omitempty,min=0"`
	UserID       int64   `json:"user_id"`
}

// BookPackageRequest books a flight plus a hotel (plus an optional activity)
// under one trip. Constituent prices are carried separately so the trip total
// can be derived as their sum.
type BookPackageRequest struct {
	OfferID     string  `json:"offer_id" binding:"required"`
	Departure   string  `json:"departure" binding:"required,min=2"`
	Destination string  `json:"destination" binding:"required,min=2"`
	DepartDate  string  `json:"depart_date" binding:"required"`
	ReturnDate  string  `json:"return_date"`
	FlightPrice float64 `json:"flight_price" binding:"required,gt=0"`

	HotelName  string  `json:"hotel_name" binding:"required,min=2"`
	HotelCity  string  `json:"hotel_city" binding:"required,min=2"`
	HotelPrice float64 `json:"hotel_price" binding:"required,gt=0"`

	ActivityName  string  `json:"activity_name"`
	ActivityDate  string  `json:"activity_date"`
	ActivityPrice float64 `json:"activity_price"`

	Adults int   `json:"adults" binding:"omitempty,min=1,max=9"`
	UserID int64 `json:"user_id"`
}

type CancelBookingRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Reason    string `json:"reason"`
	UserID    int64  `json:"user_id"`
}

// BookingConfirmation is the command result returned to the caller. EventID
// always references an event that is durable by the time the caller sees it.
type BookingConfirmation struct {
	BookingID string               `json:"booking_id"`
	TripID    string               `json:"trip_id,omitempty"`
	EventID   string               `json:"event_id"`
	Status    entity.BookingStatus `json:"status"`
	Price     float64              `json:"price"`
	CreatedAt time.Time            `json:"created_at"`
}

// BookingCommands is the write side of the ledger. Every operation turns one
// validated intent into durable event(s) first, then updates the read model,
// then reports the outcome.
type BookingCommands interface {
	BookFlight(ctx context.Context, req *BookFlightRequest) (*BookingConfirmation, error)
	BookHotel(ctx context.Context, req *BookHotelRequest) (*BookingConfirmation, error)
	BookActivity(ctx context.Context, req *BookActivityRequest) (*BookingConfirmation, error)
	BookPackage(ctx context.Context, req *BookPackageRequest) (*BookingConfirmation, error)
	CancelBooking(ctx context.Context, req *CancelBookingRequest) (*BookingConfirmation, error)
}

type SearchFlightsRequest struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      int
	Budget      *float64
	MaxStops    *int
}

type SearchHotelsRequest struct {
	CityCode string
	CheckIn  string
	CheckOut string
}

type SearchPackagesRequest struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      int
	Budget      *float64
}

// FlightQueries is the read side for offers and bookings. Implementations
// never append events and never write to the read model.
type FlightQueries interface {
	SearchFlights(ctx context.Context, req *SearchFlightsRequest) ([]entity.FlightOffer, error)
	SearchHotels(ctx context.Context, req *SearchHotelsRequest) ([]entity.HotelOffer, error)
	SearchPackages(ctx context.Context, req *SearchPackagesRequest) ([]entity.PackageOffer, error)
	GetOfferDetails(ctx context.Context, offerID string) (*entity.OfferDetails, error)
	GetUserBookings(ctx context.Context, userID int64) ([]*entity.Booking, error)
}

// TripQueries is the read side for trips.
type TripQueries interface {
	GetUserTrips(ctx context.Context, userID int64) ([]*entity.Trip, error)
	GetTripDetails(ctx context.Context, tripID string, userID int64) (*entity.TripDetails, error)
}

// EventNotifier publishes booking confirmations to interested consumers.
// Publishing is best-effort; command handlers log failures and move on.
type EventNotifier interface {
	Notify(ctx context.Context, confirmation *BookingConfirmation) error
}
