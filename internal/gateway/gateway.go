package gateway

import (
	"context"

	"github.com/wanderbook/backend/internal/entity"
)

// SearchFlightsParams carries the aggregator-facing search input. MaxStops
// is a server-side filter: offers with more stops never leave the gateway.
type SearchFlightsParams struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      int
	MaxStops    *int
}

type SearchHotelsParams struct {
	CityCode string
	CheckIn  string
	CheckOut string
}

// TravelGateway is the external offer-search collaborator. Implementations
// resolve city names to location codes and run the actual search; query
// handlers only validate, filter and sort on top of it.
type TravelGateway interface {
	SearchFlights(ctx context.Context, params SearchFlightsParams) ([]entity.FlightOffer, error)
	SearchHotels(ctx context.Context, params SearchHotelsParams) ([]entity.HotelOffer, error)
	GetOfferDetails(ctx context.Context, offerID string) (*entity.OfferDetails, error)
}
