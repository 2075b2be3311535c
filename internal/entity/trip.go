package entity

import (
	"time"
)

// Trip groups the bookings produced by one package purchase. A standalone
// flight or hotel booking has no trip. TotalPrice equals the sum of the
// constituent booking prices at creation time; it is not re-verified later.
type Trip struct {
	ID          string        `json:"id" db:"id"`
	UserID      int64         `json:"user_id" db:"user_id"`
	Name        string        `json:"name" db:"name"`
	Destination string        `json:"destination,omitempty" db:"destination"`
	StartDate   string        `json:"start_date,omitempty" db:"start_date"`
	EndDate     string        `json:"end_date,omitempty" db:"end_date"`
	TotalPrice  float64       `json:"total_price" db:"total_price"`
	Currency    string        `json:"currency" db:"currency"`
	Status      BookingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// TripDetails is a trip joined with its child bookings, used by the read side.
type TripDetails struct {
	Trip
	Bookings []*Booking `json:"bookings"`
}
