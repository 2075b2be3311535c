package entity

// Offer records returned by the external aggregator. The gateway owns their
// retrieval; query handlers only filter and sort them.

type FlightOffer struct {
	ID          string  `json:"id"`
	Departure   string  `json:"departure"`
	Destination string  `json:"destination"`
	DepartDate  string  `json:"depart_date"`
	ReturnDate  string  `json:"return_date,omitempty"`
	Airline     string  `json:"airline"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	Stops       int     `json:"stops"`
	Score       float64 `json:"score"`
}

type HotelOffer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating"`
}

type OfferDetails struct {
	ID              string `json:"id"`
	Baggage         string `json:"baggage"`
	RefundPolicy    string `json:"refund_policy"`
	Notes           string `json:"notes,omitempty"`
	HotelSuggestion string `json:"hotel_suggestion,omitempty"`
}

// PackageOffer pairs a flight with a hotel for combined search results.
type PackageOffer struct {
	Flight     FlightOffer `json:"flight"`
	Hotel      HotelOffer  `json:"hotel"`
	TotalPrice float64     `json:"total_price"`
}
